package engine

import (
	"sync"
	"time"
)

// FrameSource delivers one timestamp per display refresh
// Stop cancels delivery; no frame is delivered after Stop returns
type FrameSource interface {
	Frames() <-chan time.Time
	Stop()
}

// ManualFrames is a FrameSource driven by the caller, for tests and offline rendering
type ManualFrames struct {
	mu      sync.Mutex
	ch      chan time.Time
	stopped bool
}

// NewManualFrames creates a manual source buffering up to depth frames
func NewManualFrames(depth int) *ManualFrames {
	return &ManualFrames{ch: make(chan time.Time, depth)}
}

func (m *ManualFrames) Frames() <-chan time.Time {
	return m.ch
}

// Emit queues a frame; returns false if stopped or the buffer is full
func (m *ManualFrames) Emit(t time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return false
	}
	select {
	case m.ch <- t:
		return true
	default:
		return false
	}
}

// Stop discards queued frames and rejects further Emit calls
func (m *ManualFrames) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopped {
		return
	}
	m.stopped = true
	for {
		select {
		case <-m.ch:
		default:
			return
		}
	}
}

// Stopped reports whether Stop has been called
func (m *ManualFrames) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}
