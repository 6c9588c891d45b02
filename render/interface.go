package render

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/dotmotion/constant"
)

// Canvas is the drawing primitive set the stimulus needs
// Coordinates are in canvas pixels with the origin at the top-left
type Canvas interface {
	// Size returns the drawable area in pixels
	Size() (width, height float64)

	// Clear fills the whole canvas with bg
	Clear(bg colorful.Color)

	// Circle draws a circle centered at (x, y), filled or stroked
	Circle(x, y, r float64, c colorful.Color, filled bool, lineWidth float64)

	// Line draws a straight segment
	Line(x0, y0, x1, y1 float64, c colorful.Color, lineWidth float64)

	// Text draws s horizontally centered on x with its first baseline at y
	// Lines separated by '\n' advance by LineSpacing*size
	Text(s string, x, y, size float64, c colorful.Color, bold bool)

	// Present makes the frame visible
	Present() error
}

// TextLine is one line of a multi-line text primitive, placed
type TextLine struct {
	Text string
	Y    float64
}

// SplitText places each line of s below y
func SplitText(s string, y, size float64) []TextLine {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "\n")
	lines := make([]TextLine, len(parts))
	for i, p := range parts {
		lines[i] = TextLine{Text: p, Y: y + float64(i)*constant.LineSpacing*size}
	}
	return lines
}
