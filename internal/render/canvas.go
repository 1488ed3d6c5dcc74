package render

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Canvas is an in-memory raster Surface. Fills are blended source-over at
// the current alpha; strokes are one pixel wide along the inside edge of the
// rectangle.
type Canvas struct {
	Background colorful.Color
	Stroke     colorful.Color

	width  int
	height int
	alpha  float64
	pix    []colorful.Color
}

func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		Background: colorful.Color{R: 1, G: 1, B: 1},
		alpha:      1,
	}
	c.Resize(width, height)
	return c
}

// Resize changes the canvas size and clears it.
func (c *Canvas) Resize(width, height int) {
	c.width = max(width, 0)
	c.height = max(height, 0)
	c.pix = make([]colorful.Color, c.width*c.height)
	c.Clear()
}

func (c *Canvas) Size() (int, int) { return c.width, c.height }

func (c *Canvas) Clear() {
	for i := range c.pix {
		c.pix[i] = c.Background
	}
}

func (c *Canvas) SetAlpha(alpha float64) {
	c.alpha = min(max(alpha, 0), 1)
}

func (c *Canvas) FillRect(r image.Rectangle, g Gradient) {
	r = r.Intersect(c.bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.blend(x, y, g.At(float64(x)+0.5, float64(y)+0.5))
		}
	}
}

func (c *Canvas) StrokeRect(r image.Rectangle, dash []int) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	pattern := newDasher(dash)
	for _, pt := range perimeter(r) {
		if pattern.next() && pt.In(c.bounds()) {
			c.blend(pt.X, pt.Y, c.Stroke)
		}
	}
}

// At returns the pixel at (x, y); points outside the canvas read as the
// background.
func (c *Canvas) At(x, y int) colorful.Color {
	if !(image.Point{X: x, Y: y}).In(c.bounds()) {
		return c.Background
	}
	return c.pix[y*c.width+x]
}

// Image converts the canvas to an RGBA image, e.g. for PNG export.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(c.bounds())
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			r, g, b := c.pix[y*c.width+x].Clamped().RGB255()
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 0xff})
		}
	}
	return img
}

func (c *Canvas) bounds() image.Rectangle {
	return image.Rect(0, 0, c.width, c.height)
}

func (c *Canvas) blend(x, y int, src colorful.Color) {
	i := y*c.width + x
	if c.alpha >= 1 {
		c.pix[i] = src
		return
	}
	c.pix[i] = c.pix[i].BlendRgb(src, c.alpha)
}

// perimeter lists the edge pixels of r clockwise from the top-left corner,
// each pixel once.
func perimeter(r image.Rectangle) []image.Point {
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1
	var pts []image.Point
	for x := x0; x <= x1; x++ {
		pts = append(pts, image.Pt(x, y0))
	}
	for y := y0 + 1; y <= y1; y++ {
		pts = append(pts, image.Pt(x1, y))
	}
	if y1 > y0 {
		for x := x1 - 1; x >= x0; x-- {
			pts = append(pts, image.Pt(x, y1))
		}
	}
	if x1 > x0 {
		for y := y1 - 1; y > y0; y-- {
			pts = append(pts, image.Pt(x0, y))
		}
	}
	return pts
}

// dasher walks an on/off dash pattern one pixel at a time.
type dasher struct {
	dash  []int
	total int
	pos   int
}

func newDasher(dash []int) *dasher {
	d := &dasher{}
	for _, n := range dash {
		if n > 0 {
			d.dash = append(d.dash, n)
			d.total += n
		}
	}
	return d
}

// next reports whether the current pixel is drawn and advances.
func (d *dasher) next() bool {
	if d.total == 0 {
		return true
	}
	pos := d.pos % d.total
	d.pos++
	for i, n := range d.dash {
		if pos < n {
			return i%2 == 0
		}
		pos -= n
	}
	return true
}
