package constant

import "time"

// Trial Phase Timing
const (
	// MappingDuration is how long the response-key mapping is shown before fixation
	MappingDuration = 500 * time.Millisecond

	// DemoInstructionDelay delays the demo answer hint after the stimulus appears
	DemoInstructionDelay = 750 * time.Millisecond

	// DemoFinishDelay keeps the final demo screen up before the trial ends
	DemoFinishDelay = 1500 * time.Millisecond

	// DefaultTooEarlyThreshold rejects responses faster than this after onset
	// Tunable per trial; 100ms is the conventional floor for choice RT
	DefaultTooEarlyThreshold = 100 * time.Millisecond
)

// Dot Field Generation
const (
	// NBank is the number of interleaved dot banks; coherent dots move relative
	// to their position NBank frames earlier
	NBank = 3

	// MaxWrapAttempts caps reinjection retries for a single coherent dot
	// before it is resampled uniformly in the aperture
	MaxWrapAttempts = 64

	// MaxOnsetAttempts caps rejection sampling of the onset delay
	MaxOnsetAttempts = 10000
)

// Frame Loop
const (
	// InterruptQueueSize buffers interruption notices from the input goroutine
	InterruptQueueSize = 4

	// FrameQueueSize is the frame ticker channel depth; frames are dropped, not queued
	FrameQueueSize = 1
)

// Score deltas applied by the harness
const (
	ScoreCorrect = 1
	ScorePenalty = -1
)
