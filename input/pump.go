// Package input translates terminal events into trial responses and interruptions.
package input

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/dotmotion/engine"
	"github.com/lixenwraith/dotmotion/trial"
)

// Target receives translated events; implemented by trial.Loop
type Target interface {
	Offer(key string, at time.Time) bool
	Interrupt(kind trial.InterruptKind, at time.Time) bool
}

// Pump polls a tcell screen and forwards events to the current target
type Pump struct {
	screen tcell.Screen
	clock  engine.TimeProvider

	mu     sync.Mutex
	target Target
	onQuit func()
	width  int
	height int

	stopCh  chan struct{}
	doneCh  chan struct{}
	running atomic.Bool

	keys       atomic.Uint64
	interrupts atomic.Uint64
}

// NewPump creates a pump for an initialized screen
func NewPump(screen tcell.Screen) *Pump {
	w, h := screen.Size()
	return &Pump{
		screen: screen,
		clock:  engine.NewMonotonicTimeProvider(),
		width:  w,
		height: h,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// SetTarget switches event delivery to t; nil drops events
func (p *Pump) SetTarget(t Target) {
	p.mu.Lock()
	p.target = t
	p.mu.Unlock()
}

// SetTimeProvider sets the clock that stamps events tcell leaves untimed
func (p *Pump) SetTimeProvider(tp engine.TimeProvider) {
	p.mu.Lock()
	p.clock = tp
	p.mu.Unlock()
}

// OnQuit sets the handler for Escape and Ctrl-C
func (p *Pump) OnQuit(fn func()) {
	p.mu.Lock()
	p.onQuit = fn
	p.mu.Unlock()
}

// Start launches the polling goroutine
func (p *Pump) Start() {
	if !p.running.CompareAndSwap(false, true) {
		return
	}
	go p.pollLoop()
}

// Stop ends polling and waits for the goroutine to exit
func (p *Pump) Stop() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.stopCh)
	// Synthetic event unblocks PollEvent
	p.screen.PostEvent(tcell.NewEventInterrupt(nil))
	<-p.doneCh
}

// Stats returns forwarded key and interruption counts
func (p *Pump) Stats() (keys, interrupts uint64) {
	return p.keys.Load(), p.interrupts.Load()
}

func (p *Pump) pollLoop() {
	defer close(p.doneCh)

	defer func() {
		if r := recover(); r != nil {
			p.screen.Fini()
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mINPUT POLL CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		select {
		case <-p.stopCh:
			return
		default:
		}

		ev := p.screen.PollEvent()
		if ev == nil {
			return
		}
		p.Handle(ev)
	}
}

// Handle translates a single event
func (p *Pump) Handle(ev tcell.Event) {
	p.mu.Lock()
	target, onQuit, clock := p.target, p.onQuit, p.clock
	p.mu.Unlock()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			if onQuit != nil {
				onQuit()
			}
			return
		}
		if target != nil && target.Offer(KeyName(ev), ev.When()) {
			p.keys.Add(1)
		}

	case *tcell.EventResize:
		w, h := ev.Size()
		p.mu.Lock()
		changed := w != p.width || h != p.height
		p.width, p.height = w, h
		p.mu.Unlock()
		// tcell reports the initial size as a resize too
		if changed {
			p.interrupt(target, trial.InterruptResize, ev.When())
		}

	case *tcell.EventFocus:
		// Focus events from the tcell parser carry no timestamp
		if !ev.Focused {
			p.interrupt(target, trial.InterruptFocusLost, clock.Now())
		}
	}
}

func (p *Pump) interrupt(target Target, kind trial.InterruptKind, at time.Time) {
	if target != nil && target.Interrupt(kind, at) {
		p.interrupts.Add(1)
	}
}

// KeyName returns the lower-case name used for response key matching
func KeyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		if ev.Rune() == ' ' {
			return "space"
		}
		return strings.ToLower(string(ev.Rune()))
	}
	if name, ok := tcell.KeyNames[ev.Key()]; ok {
		return strings.ToLower(name)
	}
	return fmt.Sprintf("key%d", ev.Key())
}
