// Package trial sequences one random-dot-motion trial.
//
// A Loop owns the trial: it samples the onset delay, generates the dot field,
// and then, once per display frame, steps the phase Machine, draws the scene and
// appends telemetry. The finished Record is handed to the completion sink once.
package trial

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lixenwraith/dotmotion/config"
	"github.com/lixenwraith/dotmotion/constant"
	"github.com/lixenwraith/dotmotion/dots"
	"github.com/lixenwraith/dotmotion/engine"
	"github.com/lixenwraith/dotmotion/onset"
	"github.com/lixenwraith/dotmotion/render"
	"github.com/lixenwraith/dotmotion/response"
	"github.com/lixenwraith/dotmotion/vmath"
)

// ErrFrameSourceClosed is returned by Run when the frame source ends before the trial
var ErrFrameSourceClosed = errors.New("trial: frame source closed")

// CompletionFunc receives the finished record
type CompletionFunc func(*Record)

// Sounder plays feedback tones
type Sounder interface {
	PlayCorrect()
	PlayError()
}

type interrupt struct {
	kind InterruptKind
	at   time.Time
}

// Option configures a Loop
type Option func(*Loop)

// WithCanvas draws onto c instead of a headless recording canvas
func WithCanvas(c render.Canvas) Option {
	return func(l *Loop) { l.canvas = c }
}

// WithFrameSource drives Run from src instead of a real-time frame ticker
func WithFrameSource(src engine.FrameSource) Option {
	return func(l *Loop) { l.frames = src }
}

// WithTimeProvider sets the clock used for interruptions and the default ticker
func WithTimeProvider(tp engine.TimeProvider) Option {
	return func(l *Loop) { l.tp = tp }
}

// WithCompletion sets the record sink
func WithCompletion(fn CompletionFunc) Option {
	return func(l *Loop) { l.complete = fn }
}

// WithSounder plays a tone when feedback is shown
func WithSounder(s Sounder) Option {
	return func(l *Loop) { l.sound = s }
}

// Loop runs a single trial
type Loop struct {
	cfg config.TrialConfig

	field     *dots.Field
	collector *response.Collector
	machine   *Machine
	recorder  *Recorder
	painter   *render.Painter

	canvas   render.Canvas
	frames   engine.FrameSource
	tp       engine.TimeProvider
	complete CompletionFunc
	sound    Sounder

	interrupts chan interrupt

	ctx       Context
	started   bool
	finished  bool
	running   bool
	exhausted bool

	record      *Record
	deliverOnce sync.Once
}

// New validates cfg and precomputes the trial: onset delay, then dot field,
// both drawn from one stream seeded by cfg.Seed
func New(cfg config.TrialConfig, opts ...Option) (*Loop, error) {
	cfg = cfg.Clone()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("trial: %w", err)
	}

	rng := vmath.NewFastRand(cfg.Seed)
	sampler, err := onset.New(cfg.OnsetDelay)
	if err != nil {
		return nil, fmt.Errorf("trial: %w", err)
	}
	delay, err := sampler.Draw(rng)
	if err != nil {
		return nil, fmt.Errorf("trial: %w", err)
	}
	field, err := dots.Generate(&cfg, rng)
	if err != nil {
		return nil, fmt.Errorf("trial: %w", err)
	}

	l := &Loop{
		cfg:        cfg,
		field:      field,
		interrupts: make(chan interrupt, constant.InterruptQueueSize),
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.tp == nil {
		l.tp = engine.NewMonotonicTimeProvider()
	}
	if l.canvas == nil {
		l.canvas = render.NewRecordingCanvas(constant.DefaultCanvasWidth, constant.DefaultCanvasHeight)
	}

	l.collector = response.NewCollector(l.cfg.ResponseKeys, l.cfg.Demo)
	l.machine = NewMachine(&l.cfg, l.collector, delay)
	l.recorder = NewRecorder(&l.cfg, delay)
	l.painter = render.NewPainter(&l.cfg)
	l.machine.OnPhase(l.onPhase)

	return l, nil
}

// Field returns the precomputed dot field
func (l *Loop) Field() *dots.Field { return l.field }

// Phase returns the current phase; zero before the first tick
func (l *Loop) Phase() Phase { return l.ctx.Phase }

// Context returns a copy of the timing state
func (l *Loop) Context() Context { return l.ctx }

// Onset returns the stimulus onset relative to trial start, once shown
func (l *Loop) Onset() (time.Duration, bool) { return l.machine.Onset() }

// OnsetDelay returns the sampled onset delay
func (l *Loop) OnsetDelay() time.Duration { return l.machine.OnsetDelay() }

// Exhausted reports whether the dot field ran out while dots were due
func (l *Loop) Exhausted() bool { return l.exhausted }

// Record returns the finished record, nil while running
func (l *Loop) Record() *Record { return l.record }

// Offer passes a key event to the response collector; safe for concurrent use
func (l *Loop) Offer(key string, at time.Time) bool {
	return l.collector.Offer(key, at)
}

// Interrupt queues an interruption for the running loop; safe for concurrent use
// Returns false if the queue is full
func (l *Loop) Interrupt(kind InterruptKind, at time.Time) bool {
	select {
	case l.interrupts <- interrupt{kind: kind, at: at}:
		return true
	default:
		return false
	}
}

// Tick performs one frame at now and reports whether the trial has finished
// Must be called from a single goroutine
func (l *Loop) Tick(now time.Time) bool {
	if l.finished {
		return true
	}
	if !l.started {
		l.begin(now)
	}
	l.ctx.Now = now
	l.ctx.Ticks++

	l.machine.Step(&l.ctx)
	l.draw()

	if l.machine.Done() {
		l.finish()
		return true
	}
	return false
}

// Abort ends the trial as an interrupted miss; idempotent
// Must be called from the goroutine driving Tick
func (l *Loop) Abort(kind InterruptKind, at time.Time) bool {
	if l.finished {
		return false
	}
	if !l.started {
		l.begin(at)
	}
	if at.Before(l.ctx.Now) {
		at = l.ctx.Now
	}
	l.ctx.Now = at
	l.recorder.Interrupt(kind, l.ctx.Since(at))
	if !l.machine.Abort(&l.ctx, kind) {
		return false
	}
	log.Printf("trial %s: aborted (%s) in %s", l.recorder.rec.TrialID, kind, l.ctx.Phase)
	l.finish()
	return true
}

// Run drives Tick from the frame source until the trial finishes, an interruption
// arrives or ctx is cancelled. The frame source is stopped before the record
// is delivered.
func (l *Loop) Run(ctx context.Context) (*Record, error) {
	if l.finished {
		return l.record, nil
	}
	src := l.frames
	if src == nil {
		ft := engine.NewFrameTicker(l.tp, l.cfg.FrameInterval())
		ft.Start()
		src = ft
		l.frames = ft
	}

	l.running = true
	defer func() {
		src.Stop()
		l.running = false
		l.deliver()
	}()

	frames := src.Frames()
	for {
		select {
		case <-ctx.Done():
			l.Abort(InterruptCancelled, l.tp.Now())
			return l.record, ctx.Err()

		case it := <-l.interrupts:
			l.Abort(it.kind, it.at)
			return l.record, nil

		case now, ok := <-frames:
			if !ok {
				l.Abort(InterruptCancelled, l.tp.Now())
				return l.record, ErrFrameSourceClosed
			}
			if l.Tick(now) {
				return l.record, nil
			}
		}
	}
}

func (l *Loop) begin(now time.Time) {
	l.started = true
	l.ctx = Context{Start: now, Now: now}
	l.collector.Arm(now)
	l.machine.Begin(&l.ctx)
}

func (l *Loop) onPhase(p Phase, at time.Time) {
	l.recorder.Enter(p, l.ctx.Since(at))
	if p == PhaseFeedback && l.sound != nil {
		if l.machine.Outcome().Correct() {
			l.sound.PlayCorrect()
		} else {
			l.sound.PlayError()
		}
	}
}

// draw renders the post-transition snapshot and records dot telemetry
func (l *Loop) draw() {
	fb := l.machine.Feedback()
	scene := render.Scene{
		Keys:             l.cfg.ResponseKeys,
		Score:            l.cfg.Score,
		DisplayScore:     l.cfg.DisplayScore,
		ShowFixation:     l.ctx.Phase >= PhaseFixate,
		Feedback:         fb.Text,
		FeedbackPositive: fb.Positive,
	}
	if l.cfg.Demo {
		scene.Instruction = l.machine.Instruction()
	}

	if l.ctx.Phase.ShowsDots() {
		if view, ok := l.field.Frame(l.ctx.FramePtr); ok {
			scene.Dots = &view
			onsetAt, _ := l.machine.Onset()
			l.recorder.Row(l.ctx.Elapsed()-onsetAt, l.ctx.Phase, view)
			l.ctx.FramePtr++
		} else if !l.exhausted {
			l.exhausted = true
			log.Printf("trial %s: dot field exhausted after %d frames", l.recorder.rec.TrialID, l.field.TotalFrames())
		}
	}

	if err := l.painter.Draw(l.canvas, &scene); err != nil {
		log.Printf("trial %s: draw: %v", l.recorder.rec.TrialID, err)
	}
}

func (l *Loop) finish() {
	l.finished = true
	l.collector.Disarm()

	var dropped uint64
	if d, ok := l.frames.(interface{ Dropped() uint64 }); ok {
		dropped = d.Dropped()
	}
	cx, cy := render.Center(l.canvas)
	l.record = l.recorder.Finalize(l.machine.Outcome(), l.ctx.FramePtr, [2]float64{cx, cy}, dropped)

	if !l.running {
		l.deliver()
	}
}

func (l *Loop) deliver() {
	if l.record == nil || l.complete == nil {
		return
	}
	l.deliverOnce.Do(func() { l.complete(l.record) })
}
