package raster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/dotmotion/config"
	"github.com/lixenwraith/dotmotion/dots"
	"github.com/lixenwraith/dotmotion/render"
	"github.com/lixenwraith/dotmotion/vmath"
)

func newCanvas(t *testing.T, dir string) *Canvas {
	t.Helper()
	c, err := NewCanvas(320, 240, dir)
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCanvas_FilledCircle(t *testing.T) {
	c := newCanvas(t, "")
	c.Clear(config.MustColor("#000000"))
	c.Circle(100, 100, 10, config.MustColor("#ff0000"), true, 1)

	img := c.Image()
	r, g, b, _ := img.At(100, 100).RGBA()
	if r>>8 < 200 || g>>8 > 50 || b>>8 > 50 {
		t.Errorf("expected red at circle center, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = img.At(10, 10).RGBA()
	if r|g|b != 0 {
		t.Errorf("expected black background, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestCanvas_DumpsFrames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	c := newCanvas(t, dir)
	cfg := config.Default()
	p := render.NewPainter(&cfg)

	field, err := dots.Generate(&cfg, vmath.NewFastRand(1))
	if err != nil {
		t.Fatal(err)
	}
	view, _ := field.Frame(0)

	scenes := []*render.Scene{
		{Keys: cfg.ResponseKeys},
		{Keys: cfg.ResponseKeys, ShowFixation: true, Dots: &view, Feedback: "Wrong\n(-1)"},
	}
	for _, s := range scenes {
		if err := p.Draw(c, s); err != nil {
			t.Fatalf("Draw: %v", err)
		}
	}

	if c.Presents() != 2 {
		t.Errorf("expected 2 presents, got %d", c.Presents())
	}
	for _, name := range []string{"frame_00001.png", "frame_00002.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing dumped frame %s: %v", name, err)
		}
	}
}
