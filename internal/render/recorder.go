package render

import "image"

type OpKind int

const (
	OpClear OpKind = iota
	OpAlpha
	OpFill
	OpStroke
)

// Op is one recorded surface call.
type Op struct {
	Kind     OpKind
	Rect     image.Rectangle
	Alpha    float64
	Gradient Gradient
	Dash     []int
}

// Recorder is a Surface that remembers every call instead of drawing.
type Recorder struct {
	Width  int
	Height int
	Ops    []Op
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) Size() (int, int) { return r.Width, r.Height }

func (r *Recorder) Clear() {
	r.Ops = append(r.Ops, Op{Kind: OpClear})
}

func (r *Recorder) SetAlpha(alpha float64) {
	r.Ops = append(r.Ops, Op{Kind: OpAlpha, Alpha: alpha})
}

func (r *Recorder) FillRect(rect image.Rectangle, g Gradient) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Rect: rect, Gradient: g})
}

func (r *Recorder) StrokeRect(rect image.Rectangle, dash []int) {
	r.Ops = append(r.Ops, Op{Kind: OpStroke, Rect: rect, Dash: append([]int(nil), dash...)})
}

// Reset forgets recorded calls.
func (r *Recorder) Reset() {
	r.Ops = nil
}

// Fills returns the recorded fills with the alpha in effect for each.
func (r *Recorder) Fills() ([]Op, []float64) {
	var fills []Op
	var alphas []float64
	alpha := 1.0
	for _, op := range r.Ops {
		switch op.Kind {
		case OpAlpha:
			alpha = op.Alpha
		case OpFill:
			fills = append(fills, op)
			alphas = append(alphas, alpha)
		}
	}
	return fills, alphas
}

// Strokes returns the recorded outline calls.
func (r *Recorder) Strokes() []Op {
	var strokes []Op
	for _, op := range r.Ops {
		if op.Kind == OpStroke {
			strokes = append(strokes, op)
		}
	}
	return strokes
}
