package audio

import (
	"testing"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/dotmotion/constant"
)

// drain counts the samples a finite streamer produces
func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 1000; i++ {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
	t.Fatal("streamer did not terminate")
	return 0
}

func TestToneStreamer_Length(t *testing.T) {
	want := sampleRate.N(constant.ToneDuration)
	for _, tone := range []Tone{ToneCorrect, ToneError} {
		s, err := NewToneStreamer(tone, 0.5)
		if err != nil {
			t.Fatalf("%s: %v", tone, err)
		}
		got := drain(t, s)
		// Correct is two halves, each rounded separately
		if got < want-1 || got > want+1 {
			t.Errorf("%s tone has %d samples, want ~%d", tone, got, want)
		}
	}
}

func TestToneStreamer_Silent(t *testing.T) {
	s, err := NewToneStreamer(ToneError, 0)
	if err != nil {
		t.Fatal(err)
	}
	buf := make([][2]float64, 256)
	n, _ := s.Stream(buf)
	for i := 0; i < n; i++ {
		if buf[i][0] != 0 || buf[i][1] != 0 {
			t.Fatalf("sample %d not silent: %v", i, buf[i])
		}
	}
}

func TestToneStreamer_UnknownTone(t *testing.T) {
	if _, err := NewToneStreamer(Tone(9), 1); err == nil {
		t.Error("expected error for unknown tone")
	}
}

// TestPlayerGracefulDegradation verifies playback is a no-op without a speaker
func TestPlayerGracefulDegradation(t *testing.T) {
	p := NewPlayer()
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("player panicked without initialization: %v", r)
		}
	}()

	p.PlayCorrect()
	p.PlayError()
	p.Close()

	if p.Played(ToneCorrect) != 0 || p.Played(ToneError) != 0 {
		t.Error("uninitialized player must not count tones")
	}
}

// TestPlayerInitialization tolerates machines without audio devices
func TestPlayerInitialization(t *testing.T) {
	p := NewPlayer()
	if err := p.Initialize(); err != nil {
		t.Logf("speaker init failed (expected without an audio device): %v", err)
		return
	}
	if err := p.Initialize(); err != nil {
		t.Errorf("second Initialize must be a no-op, got %v", err)
	}
	p.PlayCorrect()
	if p.Played(ToneCorrect) != 1 {
		t.Errorf("played = %d", p.Played(ToneCorrect))
	}
	p.Close()
}
