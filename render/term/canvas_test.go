package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dotmotion/config"
	"github.com/lixenwraith/dotmotion/constant"
	"github.com/lixenwraith/dotmotion/render"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func TestCanvas_SizeInVirtualPixels(t *testing.T) {
	c := NewCanvas(newSimScreen(t, 80, 24))
	w, h := c.Size()
	if w != 80*constant.TermCellWidth || h != 24*constant.TermCellHeight {
		t.Errorf("size = %vx%v", w, h)
	}
}

func TestCanvas_DotAndText(t *testing.T) {
	screen := newSimScreen(t, 80, 24)
	c := NewCanvas(screen)
	white := config.MustColor("#ffffff")

	c.Clear(config.MustColor("#000000"))
	c.Circle(100, 40, 2, white, true, 1)
	c.Text("Hi", 400, 160, 16, white, true)
	if err := c.Present(); err != nil {
		t.Fatal(err)
	}

	// (100, 40) falls in cell (12, 2)
	if r, _, _, _ := screen.GetContent(12, 2); r != dotRune {
		t.Errorf("expected dot rune at (12,2), got %q", r)
	}

	// Two-rune text centered on column 50, row 10
	r0, _, style, _ := screen.GetContent(49, 10)
	r1, _, _, _ := screen.GetContent(50, 10)
	if r0 != 'H' || r1 != 'i' {
		t.Errorf("expected \"Hi\" at row 10, got %q%q", r0, r1)
	}
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrBold == 0 {
		t.Error("expected bold text")
	}
}

func TestCanvas_ClipsOffscreen(t *testing.T) {
	c := NewCanvas(newSimScreen(t, 10, 5))
	white := config.MustColor("#ffffff")
	// Must not panic
	c.Line(-100, -100, 1000, 1000, white, 5)
	c.Circle(-50, 30, 40, white, false, 2)
	c.Text("far away", 5000, 5000, 16, white, false)
}

func TestCanvas_DrivesPainter(t *testing.T) {
	screen := newSimScreen(t, 100, 40)
	cfg := config.Default()
	p := render.NewPainter(&cfg)

	scene := &render.Scene{Keys: cfg.ResponseKeys, ShowFixation: true, Feedback: "Correct\n(+1)", FeedbackPositive: true}
	if err := p.Draw(NewCanvas(screen), scene); err != nil {
		t.Fatal(err)
	}

	// Fixation sits on the center cell
	if r, _, _, _ := screen.GetContent(50, 20); r == ' ' {
		t.Error("expected fixation marker at the center cell")
	}
}
