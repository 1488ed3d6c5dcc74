// Package render draws a window of the loaded pattern onto a raster surface:
// rows centered on the current (or jump) pick, not-yet-woven rows faded, and
// outlines around the current and jump rows.
package render

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	MinBlockSize     = 11
	MaxBlockSize     = 41
	ThreadDisplayGap = 1
	FadedAlpha       = 0.3
)

// JumpDash is the stroke pattern around a pending jump row.
var JumpDash = []int{1, 3}

// Surface is anything the engine can paint on.
type Surface interface {
	Size() (width, height int)
	Clear()
	SetAlpha(alpha float64)
	FillRect(r image.Rectangle, g Gradient)
	// StrokeRect outlines r. A nil or empty dash draws a solid line.
	StrokeRect(r image.Rectangle, dash []int)
}

// Axis is the direction a gradient runs along.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// Stop is one colour stop, Offset in [0, 1].
type Stop struct {
	Offset float64
	Color  colorful.Color
}

// Gradient is a linear gradient running along Axis from From to To in
// surface coordinates. Points outside that span take the end colours.
type Gradient struct {
	Axis  Axis
	From  float64
	To    float64
	Stops []Stop
}

var (
	highlight = colorful.Color{R: 1, G: 1, B: 1}
	shadow    = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
)

// ThreadGradient shades a thread of colour c across [from, to]: white at the
// leading edge, flat colour through the middle, gray at the trailing edge.
func ThreadGradient(axis Axis, from, to float64, c colorful.Color) Gradient {
	return Gradient{
		Axis: axis,
		From: from,
		To:   to,
		Stops: []Stop{
			{Offset: 0, Color: highlight},
			{Offset: 0.2, Color: c},
			{Offset: 0.8, Color: c},
			{Offset: 1, Color: shadow},
		},
	}
}

// At samples the gradient at surface point (x, y).
func (g Gradient) At(x, y float64) colorful.Color {
	if len(g.Stops) == 0 {
		return colorful.Color{}
	}
	pos := x
	if g.Axis == Vertical {
		pos = y
	}
	var t float64
	if span := g.To - g.From; span != 0 {
		t = (pos - g.From) / span
	}
	first, last := g.Stops[0], g.Stops[len(g.Stops)-1]
	if t <= first.Offset {
		return first.Color
	}
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(g.Stops); i++ {
		hi := g.Stops[i]
		if t > hi.Offset {
			continue
		}
		lo := g.Stops[i-1]
		if hi.Offset == lo.Offset {
			return hi.Color
		}
		return lo.Color.BlendRgb(hi.Color, (t-lo.Offset)/(hi.Offset-lo.Offset))
	}
	return last.Color
}
