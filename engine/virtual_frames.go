package engine

import (
	"sync"
	"time"
)

// VirtualFrames emits evenly spaced synthetic timestamps as fast as they are consumed
// Used for offline rendering where wall-clock pacing is irrelevant
type VirtualFrames struct {
	ch       chan time.Time
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu   sync.Mutex
	sent uint64
}

// NewVirtualFrames starts emitting at start, advancing by interval per frame
func NewVirtualFrames(start time.Time, interval time.Duration) *VirtualFrames {
	v := &VirtualFrames{
		ch:       make(chan time.Time),
		stopChan: make(chan struct{}),
	}
	v.wg.Add(1)
	go v.loop(start, interval)
	return v
}

func (v *VirtualFrames) loop(t time.Time, interval time.Duration) {
	defer v.wg.Done()
	for {
		select {
		case v.ch <- t:
			v.mu.Lock()
			v.sent++
			v.mu.Unlock()
			t = t.Add(interval)
		case <-v.stopChan:
			return
		}
	}
}

func (v *VirtualFrames) Frames() <-chan time.Time {
	return v.ch
}

// Stop ends emission and waits for the producer to exit
func (v *VirtualFrames) Stop() {
	v.stopOnce.Do(func() {
		close(v.stopChan)
	})
	v.wg.Wait()
}

// Ticks returns the number of frames delivered
func (v *VirtualFrames) Ticks() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sent
}
