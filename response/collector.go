// Package response turns raw key events into typed trial responses.
//
// The Collector is a single-slot handoff: an input goroutine Offers key events,
// the trial loop Takes at most one pending response at the start of a tick.
// A response that arrives between ticks waits in the slot for the next tick.
package response

import (
	"strings"
	"sync"
	"time"
)

// Response is one accepted key press
type Response struct {
	Key    string        // normalized key name
	At     time.Time     // event timestamp
	RawRT  time.Duration // relative to Arm origin (loop start)
	Choice int           // position of Key in the configured response keys
}

// RawRTMs returns the raw reaction time in milliseconds
func (r Response) RawRTMs() float64 {
	return float64(r.RawRT) / float64(time.Millisecond)
}

// Collector accepts one response per arming
type Collector struct {
	mu sync.Mutex

	keys    []string
	persist bool // demo mode: may be re-armed after rejected responses

	origin  time.Time
	armed   bool
	pending *Response

	accepted int
	ignored  int
}

// NewCollector creates a collector listening for keys
// persist allows Rearm; single-shot collectors disarm permanently after one response
func NewCollector(keys []string, persist bool) *Collector {
	norm := make([]string, len(keys))
	for i, k := range keys {
		norm[i] = NormalizeKey(k)
	}
	return &Collector{keys: norm, persist: persist}
}

// Arm starts listening; raw RTs are measured from origin
func (c *Collector) Arm(origin time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.origin = origin
	c.armed = true
	c.pending = nil
}

// Rearm clears any pending response and listens again
// Only persistent (demo) collectors re-arm; returns false otherwise
func (c *Collector) Rearm() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.persist || c.origin.IsZero() {
		return false
	}
	c.armed = true
	c.pending = nil
	return true
}

// Disarm stops listening and drops any pending response
func (c *Collector) Disarm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.armed = false
	c.pending = nil
}

// Offer submits a key event; safe for concurrent use
// Returns true if the key was accepted into the pending slot
func (c *Collector) Offer(key string, at time.Time) bool {
	key = NormalizeKey(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.armed || !c.valid(key) {
		c.ignored++
		return false
	}

	c.pending = &Response{
		Key:    key,
		At:     at,
		RawRT:  at.Sub(c.origin),
		Choice: ChoiceIndex(c.keys, key),
	}
	// One response per arming
	c.armed = false
	c.accepted++
	return true
}

// Take removes and returns the pending response, if any
func (c *Collector) Take() (Response, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return Response{}, false
	}
	r := *c.pending
	c.pending = nil
	return r, true
}

// Armed reports whether the collector is listening
func (c *Collector) Armed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.armed
}

// Stats returns accepted and ignored event counts
func (c *Collector) Stats() (accepted, ignored int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accepted, c.ignored
}

func (c *Collector) valid(key string) bool {
	for _, k := range c.keys {
		if k == key {
			return true
		}
	}
	return false
}

// NormalizeKey lowercases and trims a key name so matching is case-insensitive
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// ChoiceIndex returns the position of key in keys, case-insensitive
// Unknown keys map to 0 rather than being dropped
func ChoiceIndex(keys []string, key string) int {
	key = NormalizeKey(key)
	for i, k := range keys {
		if NormalizeKey(k) == key {
			return i
		}
	}
	return 0
}
