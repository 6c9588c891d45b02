package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/lixenwraith/dotmotion/config"
	"github.com/lixenwraith/dotmotion/engine"
	"github.com/lixenwraith/dotmotion/input"
	"github.com/lixenwraith/dotmotion/render"
	"github.com/lixenwraith/dotmotion/trial"
	"github.com/lixenwraith/dotmotion/vmath"
)

// Summary totals a finished session
type Summary struct {
	Completed int
	Aborted   int
	Reissued  int
	Score     int
}

// Runner plays a trial plan in order, one trial at a time
type Runner struct {
	Plan        []config.TrialConfig
	MaxReissues int
	Score       int

	// Canvas returns the canvas for the next trial and a release func
	Canvas func() (render.Canvas, func(), error)
	// Frames returns the frame source for a trial; nil uses the real-time ticker
	Frames func(cfg *config.TrialConfig) engine.FrameSource
	// Bind routes input to the running trial; called with nil between trials
	Bind    func(input.Target)
	Sounder trial.Sounder
	Out     io.Writer

	// Reseed draws seeds for re-issued trials
	Reseed *vmath.FastRand
}

// Run plays the plan until it is exhausted or ctx is cancelled
// Interrupted trials are re-issued with a fresh seed, at most MaxReissues times each
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	sum := Summary{Score: r.Score}
	enc := json.NewEncoder(r.Out)

	type pending struct {
		cfg      config.TrialConfig
		reissues int
	}
	queue := make([]pending, len(r.Plan))
	for i, c := range r.Plan {
		queue[i] = pending{cfg: c}
	}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		p := queue[0]
		queue = queue[1:]

		cfg := p.cfg.Clone()
		cfg.Score = sum.Score

		rec, err := r.runOne(ctx, cfg)
		if rec != nil {
			if encErr := enc.Encode(rec); encErr != nil {
				return sum, fmt.Errorf("write record: %w", encErr)
			}
			sum.Score += rec.ScoreDelta
			log.Printf("trial %s: coh=%.2f dir=%d miss=%v %q score=%d",
				rec.TrialID, rec.MotCoh, rec.MotDir, rec.MissTrial, rec.MissTrialMsg, sum.Score)
		}
		if err != nil {
			return sum, err
		}

		if !rec.Aborted {
			sum.Completed++
			continue
		}
		sum.Aborted++
		if p.reissues < r.MaxReissues {
			p.reissues++
			if r.Reseed != nil {
				p.cfg.Seed = r.Reseed.Next()
			}
			queue = append(queue, p)
			sum.Reissued++
		}
	}
	return sum, nil
}

func (r *Runner) runOne(ctx context.Context, cfg config.TrialConfig) (*trial.Record, error) {
	canvas, release, err := r.Canvas()
	if err != nil {
		return nil, fmt.Errorf("canvas: %w", err)
	}
	defer release()

	opts := []trial.Option{trial.WithCanvas(canvas)}
	if r.Frames != nil {
		opts = append(opts, trial.WithFrameSource(r.Frames(&cfg)))
	}
	if r.Sounder != nil {
		opts = append(opts, trial.WithSounder(r.Sounder))
	}

	l, err := trial.New(cfg, opts...)
	if err != nil {
		return nil, err
	}

	if r.Bind != nil {
		r.Bind(l)
		defer r.Bind(nil)
	}
	return l.Run(ctx)
}
