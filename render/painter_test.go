package render

import (
	"testing"

	"github.com/lixenwraith/dotmotion/config"
	"github.com/lixenwraith/dotmotion/dots"
	"github.com/lixenwraith/dotmotion/vmath"
)

func newTestPainter(t *testing.T) (*Painter, config.TrialConfig) {
	t.Helper()
	cfg := config.Default()
	cfg.ApertureOffset = [2]float64{10, -5}
	cfg.DotSizePx = 3
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	return NewPainter(&cfg), cfg
}

func TestPainter_MappingOnly(t *testing.T) {
	p, cfg := newTestPainter(t)
	c := NewRecordingCanvas(800, 600)

	if err := p.Draw(c, &Scene{Keys: cfg.ResponseKeys}); err != nil {
		t.Fatal(err)
	}

	// Two arrows with one head each: 2 shafts + 4 head strokes
	if got := c.Count(OpLine); got != 6 {
		t.Errorf("expected 6 mapping lines, got %d", got)
	}
	if got := c.Count(OpCircle); got != 0 {
		t.Errorf("no fixation or dots expected before FIXATE, got %d circles", got)
	}
	texts := c.Texts()
	if len(texts) != 2 || texts[0] != "F" || texts[1] != "J" {
		t.Errorf("expected upper-cased key labels, got %v", texts)
	}
	if c.Presents() != 1 {
		t.Errorf("expected one present, got %d", c.Presents())
	}
}

func TestPainter_FixationDotsAndFeedback(t *testing.T) {
	p, cfg := newTestPainter(t)
	c := NewRecordingCanvas(800, 600)

	field, err := dots.Generate(&cfg, vmath.NewFastRand(4))
	if err != nil {
		t.Fatal(err)
	}
	view, _ := field.Frame(0)

	scene := &Scene{
		Keys:         cfg.ResponseKeys,
		ShowFixation: true,
		Dots:         &view,
		Feedback:     "Too early!\n(-1)",
		DisplayScore: true,
		Score:        -2,
	}
	if err := p.Draw(c, scene); err != nil {
		t.Fatal(err)
	}

	// Fixation ring + inner dot + one circle per dot
	if got, want := c.Count(OpCircle), 2+field.DotsPerChannel(); got != want {
		t.Errorf("expected %d circles, got %d", want, got)
	}

	// Dots are offset from the canvas center by the aperture offset
	var dotOps []Op
	for _, op := range c.Frame() {
		if op.Kind == OpCircle && op.R == cfg.DotSizePx {
			dotOps = append(dotOps, op)
		}
	}
	if len(dotOps) != field.DotsPerChannel() {
		t.Fatalf("expected %d dot circles, got %d", field.DotsPerChannel(), len(dotOps))
	}
	px := field.Pixel(0, 0)
	if dotOps[0].X != 400+10+px.X || dotOps[0].Y != 300-5+px.Y {
		t.Errorf("dot 0 drawn at (%v, %v), want (%v, %v)", dotOps[0].X, dotOps[0].Y, 410+px.X, 295+px.Y)
	}

	texts := c.Texts()
	want := []string{"F", "J", "Score: -2 points", "Too early!", "(-1)"}
	if len(texts) != len(want) {
		t.Fatalf("texts = %v, want %v", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("text %d = %q, want %q", i, texts[i], want[i])
		}
	}
}

func TestSplitText(t *testing.T) {
	lines := SplitText("a\nb\nc", 100, 10)
	if len(lines) != 3 || lines[2].Y != 140 || lines[1].Text != "b" {
		t.Errorf("unexpected lines %+v", lines)
	}
	if SplitText("", 0, 10) != nil {
		t.Error("empty text must produce no lines")
	}
}

func TestMultiCanvas(t *testing.T) {
	p, cfg := newTestPainter(t)
	a := NewRecordingCanvas(800, 600)
	b := NewRecordingCanvas(400, 300)
	m := MultiCanvas{a, b}

	if w, h := m.Size(); w != 800 || h != 600 {
		t.Errorf("size = %vx%v, want the first canvas", w, h)
	}
	if err := p.Draw(m, &Scene{Keys: cfg.ResponseKeys, ShowFixation: true}); err != nil {
		t.Fatal(err)
	}
	if a.Presents() != 1 || b.Presents() != 1 {
		t.Error("every canvas must be presented")
	}
	if len(a.Frame()) != len(b.Frame()) {
		t.Error("every canvas must receive the same calls")
	}
}
