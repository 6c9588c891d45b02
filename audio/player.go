// Package audio plays short feedback tones through the system speaker.
// Every operation is a no-op until Initialize succeeds, so trials run
// unchanged on machines without an audio device.
package audio

import (
	"log"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/dotmotion/constant"
)

// Player mixes feedback tones onto the speaker
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	played      [2]int
}

// NewPlayer creates an uninitialized player
func NewPlayer() *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: constant.ToneVolume,
	}
}

// Initialize opens the speaker; safe to call twice
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(constant.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// PlayCorrect plays the correct-answer tone
func (p *Player) PlayCorrect() { p.play(ToneCorrect) }

// PlayError plays the error tone
func (p *Player) PlayError() { p.play(ToneError) }

// Played returns how many times tone was started
func (p *Player) Played(t Tone) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[t]
}

// Close silences the mixer
// beep has no speaker shutdown; clearing the mixer leaves no artifacts
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

func (p *Player) play(t Tone) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, err := NewToneStreamer(t, p.volume)
	if err != nil {
		log.Printf("audio: %v", err)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.played[t]++
}
