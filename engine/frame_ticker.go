package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/dotmotion/constant"
)

// FrameTicker emits frame timestamps on a fixed refresh interval
// Deadlines advance by whole intervals to avoid drift; when the ticker falls
// more than two intervals behind it resynchronizes instead of bursting.
// A frame the consumer has not picked up is dropped, never queued.
type FrameTicker struct {
	timeProvider TimeProvider
	interval     time.Duration

	frames chan time.Time

	// Tick configuration
	nextDeadline time.Time
	mu           sync.Mutex

	// Counters for telemetry
	tickCount atomic.Uint64
	dropped   atomic.Uint64

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewFrameTicker creates a ticker; call Start to begin emitting
func NewFrameTicker(tp TimeProvider, interval time.Duration) *FrameTicker {
	if tp == nil {
		tp = NewMonotonicTimeProvider()
	}
	return &FrameTicker{
		timeProvider: tp,
		interval:     interval,
		frames:       make(chan time.Time, constant.FrameQueueSize),
		stopChan:     make(chan struct{}),
	}
}

// Start begins the ticker loop; subsequent calls are no-ops
func (ft *FrameTicker) Start() {
	if ft.running.CompareAndSwap(false, true) {
		ft.wg.Add(1)
		go ft.loop()
	}
}

// Stop halts the loop and waits for it to exit
// The frame channel is closed once the loop has exited
func (ft *FrameTicker) Stop() {
	ft.stopOnce.Do(func() {
		close(ft.stopChan)
		// Claim the never-started ticker so a late Start cannot launch the loop
		if ft.running.CompareAndSwap(false, true) {
			close(ft.frames)
			return
		}
		ft.wg.Wait()
	})
}

// Frames returns the frame timestamp channel
func (ft *FrameTicker) Frames() <-chan time.Time {
	return ft.frames
}

// Interval returns the nominal refresh interval
func (ft *FrameTicker) Interval() time.Duration {
	return ft.interval
}

// Ticks returns the number of deadlines reached
func (ft *FrameTicker) Ticks() uint64 {
	return ft.tickCount.Load()
}

// Dropped returns the number of frames the consumer missed
func (ft *FrameTicker) Dropped() uint64 {
	return ft.dropped.Load()
}

func (ft *FrameTicker) loop() {
	defer ft.wg.Done()
	defer close(ft.frames)

	ft.mu.Lock()
	ft.nextDeadline = ft.timeProvider.Now()
	ft.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-ft.stopChan:
			return
		default:
		}

		now := ft.timeProvider.Now()

		ft.mu.Lock()
		deadline := ft.nextDeadline
		ft.mu.Unlock()

		if !now.Before(deadline) {
			select {
			case ft.frames <- now:
			default:
				ft.dropped.Add(1)
			}
			ft.tickCount.Add(1)

			ft.mu.Lock()
			ft.nextDeadline = ft.nextDeadline.Add(ft.interval)
			if now.Sub(ft.nextDeadline) > 2*ft.interval {
				ft.nextDeadline = now.Add(ft.interval)
			}
			deadline = ft.nextDeadline
			ft.mu.Unlock()
		}

		sleep := deadline.Sub(ft.timeProvider.Now())
		if sleep <= 0 {
			continue
		}
		timer.Reset(sleep)
		select {
		case <-timer.C:
		case <-ft.stopChan:
			return
		}
	}
}
