// Package onset draws the stimulus-onset delay of a trial.
package onset

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/dotmotion/config"
	"github.com/lixenwraith/dotmotion/constant"
	"github.com/lixenwraith/dotmotion/vmath"
)

// ErrExhausted is returned when rejection sampling hits its attempt cap
var ErrExhausted = errors.New("onset: rejection sampling exhausted")

// Sampler draws delays from an exponential(mu) shifted by lower and
// truncated at upper, or returns a constant when configured with one value
type Sampler struct {
	mu, lower, upper float64 // ms
	maxAttempts      int
}

// New builds a sampler from a config onset_delay slice: [constant] or [mu, lower, upper]
func New(delays []float64) (*Sampler, error) {
	if err := config.ValidateOnsetDelay(delays); err != nil {
		return nil, err
	}
	if len(delays) == 1 {
		return &Sampler{lower: delays[0], upper: delays[0], maxAttempts: constant.MaxOnsetAttempts}, nil
	}
	return &Sampler{
		mu:          delays[0],
		lower:       delays[1],
		upper:       delays[2],
		maxAttempts: constant.MaxOnsetAttempts,
	}, nil
}

// Bounds returns the [lower, upper] range in ms
func (s *Sampler) Bounds() (lower, upper float64) {
	return s.lower, s.upper
}

// Constant reports whether the sampler always returns the same delay
func (s *Sampler) Constant() bool {
	return s.lower == s.upper
}

// DrawMs returns one delay in milliseconds
func (s *Sampler) DrawMs(rng vmath.Rand) (float64, error) {
	if s.Constant() {
		return s.lower, nil
	}
	for i := 0; i < s.maxAttempts; i++ {
		// 1-U keeps the log argument in (0, 1]
		v := s.lower - s.mu*math.Log(1-rng.Float64())
		if v <= s.upper {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w after %d attempts (mu=%v, range=[%v, %v])", ErrExhausted, s.maxAttempts, s.mu, s.lower, s.upper)
}

// Draw returns one delay as a duration
func (s *Sampler) Draw(rng vmath.Rand) (time.Duration, error) {
	ms, err := s.DrawMs(rng)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms * float64(time.Millisecond)), nil
}

// Mean returns the theoretical mean in ms of the truncated distribution
func (s *Sampler) Mean() float64 {
	if s.Constant() {
		return s.lower
	}
	w := s.upper - s.lower
	return s.lower + s.mu - w/math.Expm1(w/s.mu)
}
