// Package term draws the stimulus onto a tcell screen.
// Virtual pixels are mapped onto character cells of TermCellWidth×TermCellHeight.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/dotmotion/constant"
	"github.com/lixenwraith/dotmotion/render"
)

const (
	dotRune  = '•'
	fillRune = '█'
)

// Canvas implements render.Canvas on a tcell.Screen
type Canvas struct {
	screen tcell.Screen
	bg     tcell.Color
}

// NewCanvas wraps an initialized screen
func NewCanvas(screen tcell.Screen) *Canvas {
	return &Canvas{screen: screen, bg: tcell.ColorBlack}
}

// Screen returns the underlying screen
func (c *Canvas) Screen() tcell.Screen {
	return c.screen
}

// Size returns the screen size in virtual pixels
func (c *Canvas) Size() (float64, float64) {
	cols, rows := c.screen.Size()
	return float64(cols) * constant.TermCellWidth, float64(rows) * constant.TermCellHeight
}

func (c *Canvas) Clear(bg colorful.Color) {
	c.bg = toTcell(bg)
	c.screen.Fill(' ', tcell.StyleDefault.Background(c.bg))
}

// Circle marks the cells covered by the circle
// Circles smaller than a cell mark only the cell holding the center
func (c *Canvas) Circle(x, y, r float64, col colorful.Color, filled bool, lineWidth float64) {
	style := c.style(col, false)
	if r < constant.TermCellWidth {
		cx, cy := cell(x, y)
		ch := dotRune
		if r >= constant.TermCellWidth/2 {
			ch = fillRune
		}
		c.set(cx, cy, ch, style)
		return
	}

	x0, y0 := cell(x-r, y-r)
	x1, y1 := cell(x+r, y+r)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			px, py := center(cx, cy)
			d := math.Hypot(px-x, py-y)
			if d > r {
				continue
			}
			if !filled && d < r-math.Max(lineWidth, constant.TermCellWidth) {
				continue
			}
			c.set(cx, cy, fillRune, style)
		}
	}
}

// Line samples the segment at half-cell resolution
func (c *Canvas) Line(x0, y0, x1, y1 float64, col colorful.Color, lineWidth float64) {
	style := c.style(col, false)
	ch := lineRune(x0, y0, x1, y1)

	length := math.Hypot(x1-x0, y1-y0)
	steps := int(math.Ceil(length/(constant.TermCellWidth/2))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		cx, cy := cell(x0+(x1-x0)*t, y0+(y1-y0)*t)
		c.set(cx, cy, ch, style)
	}
}

// Text writes each line centered on x
func (c *Canvas) Text(s string, x, y, size float64, col colorful.Color, bold bool) {
	style := c.style(col, bold)
	for _, l := range render.SplitText(s, y, size) {
		runes := []rune(l.Text)
		cx, cy := cell(x, l.Y)
		start := cx - len(runes)/2
		for i, r := range runes {
			c.set(start+i, cy, r, style)
		}
	}
}

// Present flushes the frame to the terminal
func (c *Canvas) Present() error {
	c.screen.Show()
	return nil
}

func (c *Canvas) style(col colorful.Color, bold bool) tcell.Style {
	return tcell.StyleDefault.Foreground(toTcell(col)).Background(c.bg).Bold(bold)
}

func (c *Canvas) set(x, y int, ch rune, style tcell.Style) {
	cols, rows := c.screen.Size()
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return
	}
	c.screen.SetContent(x, y, ch, nil, style)
}

func cell(x, y float64) (int, int) {
	return int(math.Floor(x / constant.TermCellWidth)), int(math.Floor(y / constant.TermCellHeight))
}

func center(cx, cy int) (float64, float64) {
	return (float64(cx) + 0.5) * constant.TermCellWidth, (float64(cy) + 0.5) * constant.TermCellHeight
}

func lineRune(x0, y0, x1, y1 float64) rune {
	dx, dy := math.Abs(x1-x0), math.Abs(y1-y0)
	switch {
	case dy < dx/4:
		return '─'
	case dx < dy/4:
		return '│'
	case (x1-x0)*(y1-y0) > 0:
		return '╲'
	default:
		return '╱'
	}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
