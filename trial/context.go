package trial

import "time"

// Context is the per-trial timing state handed to every tick
// Owned by the loop goroutine
type Context struct {
	Start      time.Time // first tick
	Now        time.Time // current tick
	PhaseStart time.Time // entry into the current phase
	Phase      Phase

	// FramePtr indexes the next dot-field frame to draw
	FramePtr int
	Ticks    uint64
}

// Elapsed returns time since the first tick
func (c *Context) Elapsed() time.Duration {
	return c.Now.Sub(c.Start)
}

// PhaseElapsed returns time since the current phase was entered
func (c *Context) PhaseElapsed() time.Duration {
	return c.Now.Sub(c.PhaseStart)
}

// Since returns t relative to the first tick
func (c *Context) Since(t time.Time) time.Duration {
	return t.Sub(c.Start)
}

func (c *Context) enter(p Phase) {
	c.Phase = p
	c.PhaseStart = c.Now
}
