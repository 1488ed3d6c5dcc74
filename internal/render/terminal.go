package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

const halfBlock = "▀"

// Cell is one terminal character: the upper half is drawn in the foreground
// colour of a half-block glyph, the lower half in its background.
type Cell struct {
	Top    colorful.Color
	Bottom colorful.Color
}

// TerminalSize returns the pixel size that fills cols x rows terminal cells
// at scale pixels per cell column.
func TerminalSize(cols, rows, scale int) (int, int) {
	scale = max(scale, 1)
	return cols * scale, rows * 2 * scale
}

// Cells downsamples the canvas into half-block cells. Each cell covers scale
// pixel columns and 2*scale pixel rows.
func (c *Canvas) Cells(scale int) [][]Cell {
	scale = max(scale, 1)
	cols := ceilDiv(c.width, scale)
	rows := ceilDiv(c.height, 2*scale)
	out := make([][]Cell, rows)
	for row := range out {
		out[row] = make([]Cell, cols)
		for col := range out[row] {
			x := col * scale
			y := row * 2 * scale
			out[row][col] = Cell{
				Top:    c.average(x, y, scale, scale),
				Bottom: c.average(x, y+scale, scale, scale),
			}
		}
	}
	return out
}

func (c *Canvas) average(x0, y0, w, h int) colorful.Color {
	var r, g, b float64
	n := 0
	for y := y0; y < y0+h && y < c.height; y++ {
		for x := x0; x < x0+w && x < c.width; x++ {
			p := c.pix[y*c.width+x]
			r += p.R
			g += p.G
			b += p.B
			n++
		}
	}
	if n == 0 {
		return c.Background
	}
	return colorful.Color{R: r / float64(n), G: g / float64(n), B: b / float64(n)}
}

// Lines renders the canvas as styled terminal lines. Runs of identical cells
// share one style.
func (c *Canvas) Lines(scale int) []string {
	cells := c.Cells(scale)
	lines := make([]string, len(cells))
	for i, row := range cells {
		var sb strings.Builder
		for start := 0; start < len(row); {
			top, bottom := row[start].Top.Clamped().Hex(), row[start].Bottom.Clamped().Hex()
			end := start + 1
			for end < len(row) && row[end].Top.Clamped().Hex() == top && row[end].Bottom.Clamped().Hex() == bottom {
				end++
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom))
			sb.WriteString(style.Render(strings.Repeat(halfBlock, end-start)))
			start = end
		}
		lines[i] = sb.String()
	}
	return lines
}
