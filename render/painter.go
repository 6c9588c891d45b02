package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/dotmotion/config"
	"github.com/lixenwraith/dotmotion/constant"
	"github.com/lixenwraith/dotmotion/dots"
	"github.com/lixenwraith/dotmotion/vmath"
)

// Scene is the per-tick snapshot the painter draws
// Built by the trial loop after the state transition of the tick
type Scene struct {
	Keys         []string
	Score        int
	DisplayScore bool

	ShowFixation bool
	Dots         *dots.FrameView // nil when no dots are shown this tick

	Feedback         string
	FeedbackPositive bool
	Instruction      string
}

// Painter draws the RDM stimulus layout onto a Canvas
type Painter struct {
	palette  [2]colorful.Color
	fixation colorful.Color
	dotSize  float64
	offset   vmath.Vec2

	bg, label, instruction, positive, negative, bar colorful.Color
}

// NewPainter creates a painter for a validated trial config
func NewPainter(cfg *config.TrialConfig) *Painter {
	return &Painter{
		palette:     cfg.Palette(),
		fixation:    config.MustColor(cfg.FixationColor),
		dotSize:     cfg.DotSizePx,
		offset:      vmath.Vec2{X: cfg.ApertureOffset[0], Y: cfg.ApertureOffset[1]},
		bg:          config.MustColor(constant.ColorBackground),
		label:       config.MustColor(constant.ColorLabel),
		instruction: config.MustColor(constant.ColorInstruction),
		positive:    config.MustColor(constant.ColorPositive),
		negative:    config.MustColor(constant.ColorNegative),
		bar:         config.MustColor(constant.ColorFixationBar),
	}
}

// Center returns the canvas center
func Center(c Canvas) (cx, cy float64) {
	w, h := c.Size()
	return w / 2, h / 2
}

// Draw renders one frame and presents it
func (p *Painter) Draw(c Canvas, s *Scene) error {
	cx, cy := Center(c)
	c.Clear(p.bg)

	p.drawMapping(c, s, cx, cy)

	if s.ShowFixation {
		p.drawFixation(c, cx, cy)

		if s.Dots != nil {
			ax, ay := cx+p.offset.X, cy+p.offset.Y
			for i, pos := range s.Dots.Pixels {
				c.Circle(ax+pos.X, ay+pos.Y, p.dotSize, p.palette[s.Dots.Labels[i]&1], true, 1)
			}
		}

		fb := p.negative
		if s.FeedbackPositive {
			fb = p.positive
		}
		c.Text(s.Feedback, cx, cy+constant.FeedbackOffsetY, constant.FeedbackFontSize, fb, true)
		if s.Instruction != "" {
			c.Text(s.Instruction, cx, cy-constant.InstructionY*cy, constant.InstructionFontSize, p.instruction, false)
		}
	}

	return c.Present()
}

// drawMapping shows the left/right key arrows and labels, and the score
func (p *Painter) drawMapping(c Canvas, s *Scene, cx, cy float64) {
	ay := cy + constant.MappingArrowY*cy
	ly := cy + constant.MappingLabelY*cy
	lx := cx - constant.MappingArrowX*cx
	rx := cx + constant.MappingArrowX*cx

	p.drawArrow(c, lx-constant.MappingArrowHalfLen, ay, lx+constant.MappingArrowHalfLen, ay, true, false)
	p.drawArrow(c, rx-constant.MappingArrowHalfLen, ay, rx+constant.MappingArrowHalfLen, ay, false, true)

	if len(s.Keys) == 2 {
		c.Text(strings.ToUpper(s.Keys[0]), lx, ly, constant.LabelFontSize, p.label, true)
		c.Text(strings.ToUpper(s.Keys[1]), rx, ly, constant.LabelFontSize, p.label, true)
	}

	if s.DisplayScore {
		col := p.positive
		if s.Score < 0 {
			col = p.negative
		}
		c.Text(fmt.Sprintf("Score: %d points", s.Score), cx-constant.ScoreX*cx, ly+constant.LabelFontSize, constant.LabelFontSize, col, true)
	}
}

// drawArrow draws a segment with optional arrowheads at either end
func (p *Painter) drawArrow(c Canvas, x0, y0, x1, y1 float64, atStart, atEnd bool) {
	c.Line(x0, y0, x1, y1, p.label, constant.MappingLineWidth)

	length := math.Hypot(x1-x0, y1-y0)
	if length == 0 {
		return
	}
	// Unit direction and normal
	ux, uy := (x1-x0)/length, (y1-y0)/length
	nx, ny := -uy, ux
	aw, al := constant.MappingArrowWidth, constant.MappingArrowHead

	head := func(tx, ty, back float64) {
		bx, by := tx+back*ux*al, ty+back*uy*al
		c.Line(bx+nx*aw, by+ny*aw, tx, ty, p.label, constant.MappingLineWidth)
		c.Line(bx-nx*aw, by-ny*aw, tx, ty, p.label, constant.MappingLineWidth)
	}
	if atStart {
		head(x0, y0, 1)
	}
	if atEnd {
		head(x1, y1, -1)
	}
}

// drawFixation draws the ring-and-cross fixation marker
func (p *Painter) drawFixation(c Canvas, x, y float64) {
	c.Circle(x, y, constant.FixationOuterRadius, p.fixation, true, 1)
	c.Line(x-constant.FixationArm, y, x+constant.FixationArm, y, p.bar, constant.FixationLineWidth)
	c.Line(x, y-constant.FixationArm, x, y+constant.FixationArm, p.bar, constant.FixationLineWidth)
	c.Circle(x, y, constant.FixationInnerRadius, p.fixation, true, 1)
}
