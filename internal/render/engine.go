package render

import (
	"image"

	"github.com/r-owen/toika-loom-client/internal/pattern"
)

// Engine draws patterns. It owns the warp gradient cache, so one Engine
// should be used per display.
type Engine struct {
	cache gradientCache
}

func NewEngine() *Engine {
	return &Engine{}
}

// Invalidate drops cached gradients. Call it when the pattern is replaced.
func (e *Engine) Invalidate() {
	e.cache = gradientCache{}
}

// Draw paints p on s. A nil or empty pattern only clears the surface.
func (e *Engine) Draw(s Surface, p *pattern.Pattern, jump pattern.JumpTarget) {
	width, height := s.Size()
	s.SetAlpha(1)
	s.Clear()
	if p.Empty() || width <= 0 || height <= 0 {
		return
	}
	l := ComputeLayout(width, height, p, jump)
	warps := e.cache.warpGradients(p, l)
	b := l.BlockSize

	for off := 0; off < l.PicksShown; off++ {
		index := l.StartPick + off - 1
		if index < 0 || index >= p.NumPicks() {
			continue
		}
		if index > l.MaxColored {
			s.SetAlpha(FadedAlpha)
		} else {
			s.SetAlpha(1)
		}
		top := l.RowTop(off)
		pick := p.Picks[index]
		weft := ThreadGradient(Vertical,
			float64(top+ThreadDisplayGap), float64(top+b-2*ThreadDisplayGap),
			p.ColorTable[pick.Color])
		for end := 0; end < l.EndsShown; end++ {
			left := l.ColumnLeft(end)
			if p.IsWarpUp(pick, end) {
				s.FillRect(image.Rect(left+ThreadDisplayGap, top, left+b-ThreadDisplayGap, top+b), warps[end])
			} else {
				s.FillRect(image.Rect(left, top+ThreadDisplayGap, left+b, top+b-ThreadDisplayGap), weft)
			}
		}
	}

	s.SetAlpha(1)
	if l.Jump {
		jumpOff, _ := l.Offset(l.Center)
		s.StrokeRect(rowRect(l, jumpOff), JumpDash)
		if off, ok := l.Offset(p.PickNumber); ok {
			s.StrokeRect(rowRect(l, off), nil)
		}
		return
	}
	off, _ := l.Offset(p.PickNumber)
	s.StrokeRect(rowRect(l, off), nil)
}

func rowRect(l Layout, off int) image.Rectangle {
	top := l.RowTop(off)
	return image.Rect(0, top, l.Width, top+l.BlockSize)
}
