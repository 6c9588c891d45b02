// Package raster draws the stimulus into an off-screen image with gogpu/gg.
// Presented frames can be dumped as numbered PNG files for offline inspection.
package raster

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/lixenwraith/dotmotion/render"
)

type faceKey struct {
	size float64
	bold bool
}

// Canvas implements render.Canvas on a gg.Context
type Canvas struct {
	dc *gg.Context

	regular *text.FontSource
	bold    *text.FontSource
	faces   map[faceKey]text.Face

	dumpDir  string
	presents int
}

// NewCanvas creates a raster canvas of width×height pixels
// Every presented frame is written to dumpDir when it is non-empty
func NewCanvas(width, height int, dumpDir string) (*Canvas, error) {
	regular, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: load regular font: %w", err)
	}
	bold, err := text.NewFontSource(gobold.TTF)
	if err != nil {
		regular.Close()
		return nil, fmt.Errorf("raster: load bold font: %w", err)
	}

	if dumpDir != "" {
		if err := os.MkdirAll(dumpDir, 0755); err != nil {
			regular.Close()
			bold.Close()
			return nil, fmt.Errorf("raster: create frame dir: %w", err)
		}
	}

	return &Canvas{
		dc:      gg.NewContext(width, height),
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]text.Face),
		dumpDir: dumpDir,
	}, nil
}

func (c *Canvas) Size() (float64, float64) {
	return float64(c.dc.Width()), float64(c.dc.Height())
}

func (c *Canvas) Clear(bg colorful.Color) {
	c.dc.ClearWithColor(toRGBA(bg))
}

func (c *Canvas) Circle(x, y, r float64, col colorful.Color, filled bool, lineWidth float64) {
	c.dc.SetColor(col.Clamped())
	c.dc.DrawCircle(x, y, r)
	if filled {
		c.check(c.dc.Fill())
		return
	}
	c.dc.SetLineWidth(lineWidth)
	c.check(c.dc.Stroke())
}

func (c *Canvas) Line(x0, y0, x1, y1 float64, col colorful.Color, lineWidth float64) {
	c.dc.SetColor(col.Clamped())
	c.dc.SetLineWidth(lineWidth)
	c.dc.DrawLine(x0, y0, x1, y1)
	c.check(c.dc.Stroke())
}

// Text anchors each line's bottom-center at (x, line y)
func (c *Canvas) Text(s string, x, y, size float64, col colorful.Color, bold bool) {
	lines := render.SplitText(s, y, size)
	if len(lines) == 0 {
		return
	}
	c.dc.SetFont(c.face(size, bold))
	c.dc.SetColor(col.Clamped())
	for _, l := range lines {
		c.dc.DrawStringAnchored(l.Text, x, l.Y, 0.5, 1)
	}
}

// Present counts the frame and dumps it when a frame dir is set
func (c *Canvas) Present() error {
	c.presents++
	if c.dumpDir == "" {
		return nil
	}
	path := filepath.Join(c.dumpDir, fmt.Sprintf("frame_%05d.png", c.presents))
	if err := c.dc.SavePNG(path); err != nil {
		return fmt.Errorf("raster: save %s: %w", path, err)
	}
	return nil
}

// Presents returns how many frames were presented
func (c *Canvas) Presents() int {
	return c.presents
}

// Image returns the current pixels
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// Close releases the drawing context and font sources
func (c *Canvas) Close() error {
	c.regular.Close()
	c.bold.Close()
	return c.dc.Close()
}

func (c *Canvas) face(size float64, bold bool) text.Face {
	k := faceKey{size: size, bold: bold}
	if f, ok := c.faces[k]; ok {
		return f
	}
	src := c.regular
	if bold {
		src = c.bold
	}
	f := src.Face(size)
	c.faces[k] = f
	return f
}

func (c *Canvas) check(err error) {
	if err != nil {
		log.Printf("raster: draw failed: %v", err)
	}
}

func toRGBA(col colorful.Color) gg.RGBA {
	col = col.Clamped()
	return gg.RGB(col.R, col.G, col.B)
}
