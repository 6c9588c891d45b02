package trial

import (
	"strings"
	"time"

	"github.com/lixenwraith/dotmotion/config"
	"github.com/lixenwraith/dotmotion/constant"
	"github.com/lixenwraith/dotmotion/response"
)

// InterruptKind names an external event that ends a trial early
type InterruptKind string

const (
	InterruptExitFullScreen InterruptKind = "exitFullScreen"
	InterruptResize         InterruptKind = "resize"
	InterruptFocusLost      InterruptKind = "focusLost"
	InterruptCancelled      InterruptKind = "cancelled"
)

// Outcome is the response-related result of a trial so far
type Outcome struct {
	ChoiceKey *string
	Choice    *int
	Accuracy  *bool
	RT        *time.Duration // relative to stimulus onset

	Miss    bool
	reasons strings.Builder
	Aborted bool
}

// MissReasons returns the accumulated reason string, each reason followed by a space
func (o *Outcome) MissReasons() string {
	return o.reasons.String()
}

// Correct reports a clean, accurate response
func (o *Outcome) Correct() bool {
	return !o.Miss && !o.Aborted && o.Accuracy != nil && *o.Accuracy
}

func (o *Outcome) miss(reason string) {
	o.Miss = true
	o.reasons.WriteString(reason)
	o.reasons.WriteByte(' ')
}

// clearResponse drops the response fields for a demo repeat; reasons are kept
func (o *Outcome) clearResponse() {
	o.ChoiceKey, o.Choice, o.Accuracy, o.RT = nil, nil, nil, nil
	o.Miss = false
}

// PhaseHook observes every phase entry
type PhaseHook func(p Phase, at time.Time)

// Machine runs the trial phase transitions, one step per tick
type Machine struct {
	cfg       *config.TrialConfig
	collector *response.Collector

	onsetDelay time.Duration
	threshold  time.Duration
	deadline   time.Duration
	fbDur      time.Duration
	errTimeout time.Duration

	outcome     Outcome
	feedback    Feedback
	instruction string

	onsetAt  time.Duration // stimulus onset relative to trial start
	onsetSet bool
	repeat   bool // demo loop-back waiting in FIXATE
	done     bool

	hook PhaseHook
}

// NewMachine creates a machine for a validated config and a sampled onset delay
func NewMachine(cfg *config.TrialConfig, collector *response.Collector, onsetDelay time.Duration) *Machine {
	return &Machine{
		cfg:        cfg,
		collector:  collector,
		onsetDelay: onsetDelay,
		threshold:  cfg.TooEarlyThreshold(),
		deadline:   cfg.RTDeadline(),
		fbDur:      cfg.FeedbackDuration(),
		errTimeout: cfg.ErrorTimeout(),
	}
}

// OnPhase installs a hook called on every phase entry
func (m *Machine) OnPhase(h PhaseHook) {
	m.hook = h
}

// Begin enters MAPPING at the first tick
func (m *Machine) Begin(ctx *Context) {
	m.advance(ctx, PhaseMapping)
}

// Step evaluates the transition rule of the current phase once
func (m *Machine) Step(ctx *Context) {
	if m.done {
		return
	}
	m.feedback.expire(ctx.Now)
	if m.cfg.Demo {
		m.updateInstruction(ctx)
	}

	switch ctx.Phase {
	case PhaseMapping:
		if ctx.PhaseElapsed() > constant.MappingDuration {
			m.advance(ctx, PhaseFixate)
		}

	case PhaseFixate:
		if !m.repeat {
			m.advance(ctx, PhaseDelay)
		} else if ctx.PhaseElapsed() > m.fbDur {
			m.resetForRepeat(ctx)
			m.advance(ctx, PhaseDelay)
		}

	case PhaseDelay:
		if r, ok := m.collector.Take(); ok {
			// Any press before the stimulus is premature
			m.recordResponse(r)
			m.outcome.miss(ReasonTooEarly)
			m.feedback.set(TextTooEarly, false)
			if m.cfg.Demo {
				m.loopBack(ctx)
			} else {
				m.feedback.clearAfter(ctx.Now, m.fbDur)
				m.advance(ctx, PhaseFeedback)
			}
		} else if ctx.PhaseElapsed() > m.onsetDelay {
			m.onsetAt = ctx.Elapsed()
			m.onsetSet = true
			m.advance(ctx, PhaseStimOn)
		}

	case PhaseStimOn:
		m.advance(ctx, PhaseResponseWait)

	case PhaseResponseWait:
		if r, ok := m.collector.Take(); ok {
			rt := m.recordResponse(r)
			if rt < m.threshold {
				m.outcome.miss(ReasonTooEarly)
				m.feedback.set(TextTooEarly, false)
				m.feedback.clearAfter(ctx.Now, m.fbDur)
				if m.cfg.Demo {
					m.loopBack(ctx)
				} else {
					m.advance(ctx, PhaseFeedback)
				}
				return
			}

			acc := r.Choice == int(m.cfg.MotionDirection)
			m.outcome.Accuracy = &acc
			if acc {
				m.feedback.set(TextCorrect, true)
			} else {
				m.feedback.set(TextWrong, false)
			}
			if m.cfg.Demo && !acc {
				m.loopBack(ctx)
			} else {
				m.advance(ctx, PhaseFeedback)
			}
		} else if ctx.PhaseElapsed() > m.deadline {
			m.outcome.miss(ReasonRTTimeout)
			m.feedback.set(TextTooSlow, false)
			if m.cfg.Demo {
				m.loopBack(ctx)
			} else {
				m.advance(ctx, PhaseFeedback)
			}
		}

	case PhaseFeedback:
		hold := m.fbDur
		if !m.outcome.Correct() {
			hold += m.errTimeout
		}
		if ctx.PhaseElapsed() > hold {
			m.feedback.reset()
			m.advance(ctx, PhaseFinish)
		}

	case PhaseFinish:
		if !m.cfg.Demo {
			m.feedback.reset()
			m.done = true
		} else if ctx.PhaseElapsed() > constant.DemoFinishDelay {
			m.done = true
		}
	}
}

// Abort ends the trial immediately as a miss; returns false if already done
func (m *Machine) Abort(ctx *Context, kind InterruptKind) bool {
	if m.done {
		return false
	}
	m.outcome.miss(string(kind))
	m.outcome.Aborted = true
	m.feedback.reset()
	m.instruction = ""
	if ctx.Phase != PhaseFinish {
		m.advance(ctx, PhaseFinish)
	}
	m.done = true
	return true
}

// Done reports whether the trial has finished
func (m *Machine) Done() bool { return m.done }

// Outcome returns the response outcome
func (m *Machine) Outcome() *Outcome { return &m.outcome }

// Feedback returns the current feedback text
func (m *Machine) Feedback() Feedback { return m.feedback }

// Instruction returns the demo overlay text
func (m *Machine) Instruction() string { return m.instruction }

// OnsetDelay returns the sampled onset delay
func (m *Machine) OnsetDelay() time.Duration { return m.onsetDelay }

// Onset returns the stimulus onset relative to trial start, once shown
func (m *Machine) Onset() (time.Duration, bool) { return m.onsetAt, m.onsetSet }

func (m *Machine) advance(ctx *Context, p Phase) {
	ctx.enter(p)
	if m.hook != nil {
		m.hook(p, ctx.Now)
	}
}

// recordResponse stores key, choice and RT; returns the RT relative to onset
// Before onset the reference is trial start
func (m *Machine) recordResponse(r response.Response) time.Duration {
	key, choice := r.Key, r.Choice
	rt := r.RawRT - m.onsetAt
	m.outcome.ChoiceKey = &key
	m.outcome.Choice = &choice
	m.outcome.RT = &rt
	return rt
}

func (m *Machine) loopBack(ctx *Context) {
	m.repeat = true
	m.advance(ctx, PhaseFixate)
}

// resetForRepeat restores the pre-stimulus state for a demo repeat
func (m *Machine) resetForRepeat(ctx *Context) {
	m.repeat = false
	m.outcome.clearResponse()
	m.feedback.reset()
	m.onsetAt, m.onsetSet = 0, false
	ctx.FramePtr = 0
	m.collector.Rearm()
}

// updateInstruction picks the demo overlay for the phase about to be evaluated
func (m *Machine) updateInstruction(ctx *Context) {
	switch {
	case ctx.Phase < PhaseStimOn:
		m.instruction = TextFixateHint
	case ctx.Phase == PhaseStimOn:
		m.instruction = ""
	case ctx.Phase == PhaseResponseWait && ctx.PhaseElapsed() > constant.DemoInstructionDelay,
		ctx.Phase == PhaseFeedback:
		m.instruction = answerHint(m.cfg)
	case ctx.Phase == PhaseFinish:
		m.instruction = ""
	}
}
