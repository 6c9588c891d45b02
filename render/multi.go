package render

import (
	"errors"

	"github.com/lucasb-eyer/go-colorful"
)

// MultiCanvas fans every draw call out to several canvases
// Size is taken from the first canvas
type MultiCanvas []Canvas

func (m MultiCanvas) Size() (float64, float64) {
	if len(m) == 0 {
		return 0, 0
	}
	return m[0].Size()
}

func (m MultiCanvas) Clear(bg colorful.Color) {
	for _, c := range m {
		c.Clear(bg)
	}
}

func (m MultiCanvas) Circle(x, y, r float64, col colorful.Color, filled bool, lineWidth float64) {
	for _, c := range m {
		c.Circle(x, y, r, col, filled, lineWidth)
	}
}

func (m MultiCanvas) Line(x0, y0, x1, y1 float64, col colorful.Color, lineWidth float64) {
	for _, c := range m {
		c.Line(x0, y0, x1, y1, col, lineWidth)
	}
}

func (m MultiCanvas) Text(s string, x, y, size float64, col colorful.Color, bold bool) {
	for _, c := range m {
		c.Text(s, x, y, size, col, bold)
	}
}

// Present presents every canvas and joins their errors
func (m MultiCanvas) Present() error {
	var errs []error
	for _, c := range m {
		if err := c.Present(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
