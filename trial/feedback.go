package trial

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/dotmotion/config"
)

// Feedback texts
const (
	TextTooEarly = "Too early!\n(-1)"
	TextCorrect  = "Correct\n(+1)"
	TextWrong    = "Wrong\n(-1)"
	TextTooSlow  = "Too slow!\n(-1)"

	TextFixateHint = "Look at the red fixation cross\n and wait for the dots to appear."
)

// Miss reasons, accumulated space-separated in the record
const (
	ReasonTooEarly  = "too_early"
	ReasonRTTimeout = "RT_timeout"
)

// Feedback is the text shown under the fixation marker
type Feedback struct {
	Text     string
	Positive bool
	clearAt  time.Time // zero when the text stays until replaced
}

func (f *Feedback) set(text string, positive bool) {
	f.Text = text
	f.Positive = positive
	f.clearAt = time.Time{}
}

func (f *Feedback) clearAfter(now time.Time, d time.Duration) {
	f.clearAt = now.Add(d)
}

func (f *Feedback) expire(now time.Time) {
	if !f.clearAt.IsZero() && !now.Before(f.clearAt) {
		f.Text = ""
		f.clearAt = time.Time{}
	}
}

func (f *Feedback) reset() {
	*f = Feedback{}
}

// answerHint is the demo instruction naming the correct key
func answerHint(cfg *config.TrialConfig) string {
	key := strings.ToUpper(cfg.ResponseKeys[int(cfg.MotionDirection)])
	side := strings.ToUpper(cfg.MotionDirection.String())
	return fmt.Sprintf("In this example, the majority of dots move %s\n[Press %s]", side, key)
}
