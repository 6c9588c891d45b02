package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond
)

// Feedback tones
const (
	ToneCorrectHz = 880.0
	ToneErrorHz   = 220.0
	ToneDuration  = 120 * time.Millisecond
	ToneVolume    = 0.3
)
