package render

import (
	"github.com/lucasb-eyer/go-colorful"
)

// OpKind identifies a recorded draw call
type OpKind uint8

const (
	OpClear OpKind = iota
	OpCircle
	OpLine
	OpText
)

// Op is one recorded draw call
type Op struct {
	Kind      OpKind
	X, Y      float64
	X1, Y1    float64
	R         float64
	Size      float64
	Text      string
	Color     colorful.Color
	Filled    bool
	LineWidth float64
}

// RecordingCanvas records draw calls of the current frame without rasterizing
// Used headless and in tests
type RecordingCanvas struct {
	width, height float64

	ops      []Op
	last     []Op
	presents int
}

// NewRecordingCanvas creates a recording canvas of the given pixel size
func NewRecordingCanvas(width, height float64) *RecordingCanvas {
	return &RecordingCanvas{width: width, height: height}
}

func (r *RecordingCanvas) Size() (float64, float64) { return r.width, r.height }

func (r *RecordingCanvas) Clear(bg colorful.Color) {
	r.ops = r.ops[:0]
	r.ops = append(r.ops, Op{Kind: OpClear, Color: bg})
}

func (r *RecordingCanvas) Circle(x, y, rad float64, c colorful.Color, filled bool, lineWidth float64) {
	r.ops = append(r.ops, Op{Kind: OpCircle, X: x, Y: y, R: rad, Color: c, Filled: filled, LineWidth: lineWidth})
}

func (r *RecordingCanvas) Line(x0, y0, x1, y1 float64, c colorful.Color, lineWidth float64) {
	r.ops = append(r.ops, Op{Kind: OpLine, X: x0, Y: y0, X1: x1, Y1: y1, Color: c, LineWidth: lineWidth})
}

func (r *RecordingCanvas) Text(s string, x, y, size float64, c colorful.Color, bold bool) {
	for _, l := range SplitText(s, y, size) {
		r.ops = append(r.ops, Op{Kind: OpText, X: x, Y: l.Y, Size: size, Text: l.Text, Color: c, Filled: bold})
	}
}

// Present freezes the current ops as the last presented frame
func (r *RecordingCanvas) Present() error {
	r.last = append(r.last[:0], r.ops...)
	r.presents++
	return nil
}

// Frame returns the ops of the last presented frame
func (r *RecordingCanvas) Frame() []Op {
	return r.last
}

// Presents returns how many frames were presented
func (r *RecordingCanvas) Presents() int {
	return r.presents
}

// Count returns how many ops of kind the last frame holds
func (r *RecordingCanvas) Count(kind OpKind) int {
	n := 0
	for _, op := range r.last {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns the text lines of the last frame
func (r *RecordingCanvas) Texts() []string {
	var out []string
	for _, op := range r.last {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}
