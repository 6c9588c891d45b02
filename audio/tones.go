package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/dotmotion/constant"
)

const sampleRate = beep.SampleRate(constant.AudioSampleRate)

// Tone is one feedback sound
type Tone uint8

const (
	ToneCorrect Tone = iota
	ToneError
)

func (t Tone) String() string {
	if t == ToneCorrect {
		return "correct"
	}
	return "error"
}

// NewToneStreamer builds a finite streamer for tone
// Correct is a rising octave pair, error a single low tone
func NewToneStreamer(t Tone, volume float64) (beep.Streamer, error) {
	var s beep.Streamer
	switch t {
	case ToneCorrect:
		lo, err := sine(constant.ToneCorrectHz, constant.ToneDuration/2)
		if err != nil {
			return nil, err
		}
		hi, err := sine(constant.ToneCorrectHz*2, constant.ToneDuration/2)
		if err != nil {
			return nil, err
		}
		s = beep.Seq(lo, hi)
	case ToneError:
		low, err := sine(constant.ToneErrorHz, constant.ToneDuration)
		if err != nil {
			return nil, err
		}
		s = low
	default:
		return nil, fmt.Errorf("audio: unknown tone %d", t)
	}
	return newVolume(s, volume), nil
}

func sine(hz float64, d time.Duration) (beep.Streamer, error) {
	tone, err := generators.SineTone(sampleRate, hz)
	if err != nil {
		return nil, fmt.Errorf("audio: sine %.0fHz: %w", hz, err)
	}
	return beep.Take(sampleRate.N(d), tone), nil
}

// newVolume scales linear volume; math.Log2(0) is -Inf so 0 is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
