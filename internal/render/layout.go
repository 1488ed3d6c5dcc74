package render

import (
	"math"

	"github.com/r-owen/toika-loom-client/internal/pattern"
)

// Layout is the geometry of one draw.
type Layout struct {
	Width      int
	Height     int
	BlockSize  int
	EndsShown  int
	PicksShown int
	YOffset    int
	// Center is the 1-based pick the rows are centered on.
	Center    int
	StartPick int
	// MaxColored is the highest 0-based pick index drawn at full strength.
	MaxColored int
	Jump       bool
}

// BlockSize is the odd edge length in pixels of one interlacement cell.
func BlockSize(width, height, ends, picks int) int {
	byWidth := max(int(math.Round(float64(width)/float64(ends))), MinBlockSize)
	byHeight := max(int(math.Round(float64(height)/float64(picks))), MinBlockSize)
	size := min(byWidth, byHeight, MaxBlockSize)
	if size%2 == 0 {
		size--
	}
	return size
}

// ComputeLayout sizes and positions the visible window of p on a width x
// height surface. p must not be empty.
func ComputeLayout(width, height int, p *pattern.Pattern, jump pattern.JumpTarget) Layout {
	ends, picks := p.Ends(), p.NumPicks()
	b := BlockSize(width, height, ends, picks)
	shown := min(picks, ceilDiv(height, b))
	if shown%2 == 0 {
		shown++
	}
	center := p.CenterPick(jump)
	maxColored := center - 1
	if jump.Pending() {
		maxColored--
	}
	return Layout{
		Width:      width,
		Height:     height,
		BlockSize:  b,
		EndsShown:  min(ends, width/b),
		PicksShown: shown,
		YOffset:    floorDiv(height-b*shown, 2),
		Center:     center,
		StartPick:  center - (shown-1)/2,
		MaxColored: maxColored,
		Jump:       jump.Pending(),
	}
}

// RowTop is the top pixel row of the window row at offset (0 = bottom).
func (l Layout) RowTop(offset int) int {
	return l.Height - (l.YOffset + l.BlockSize*(offset+1))
}

// ColumnLeft is the left pixel column of warp end (0 = rightmost).
func (l Layout) ColumnLeft(end int) int {
	return l.Width - l.BlockSize*(end+1)
}

// Offset returns the window row holding a 1-based pick and whether it is
// within the window.
func (l Layout) Offset(pick int) (int, bool) {
	off := pick - l.StartPick
	return off, off >= 0 && off < l.PicksShown
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
