package render

import "github.com/r-owen/toika-loom-client/internal/pattern"

type cacheKey struct {
	pattern   uint64
	width     int
	blockSize int
}

// gradientCache holds the warp gradients of the visible ends. Warp shading
// only depends on the pattern and the horizontal geometry, so it survives
// pick changes and jumps.
type gradientCache struct {
	key   cacheKey
	warps []Gradient
	valid bool
}

func (c *gradientCache) warpGradients(p *pattern.Pattern, l Layout) []Gradient {
	key := cacheKey{pattern: p.ID(), width: l.Width, blockSize: l.BlockSize}
	if c.valid && c.key == key && len(c.warps) >= l.EndsShown {
		return c.warps
	}
	warps := make([]Gradient, l.EndsShown)
	for end := range warps {
		left := l.ColumnLeft(end)
		warps[end] = ThreadGradient(Horizontal,
			float64(left+ThreadDisplayGap), float64(left+l.BlockSize-2*ThreadDisplayGap),
			p.WarpColor(end))
	}
	c.key = key
	c.warps = warps
	c.valid = true
	return warps
}

// built reports whether gradients are cached, for tests.
func (c *gradientCache) built() bool {
	return c.valid
}
