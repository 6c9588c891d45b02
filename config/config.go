// Package config holds the typed trial configuration and session files.
// A TrialConfig is validated once before a trial is built; no call site
// inspects raw parameter maps.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/lixenwraith/dotmotion/constant"
)

// Direction is the coherent motion direction and doubles as the index of the
// correct key in ResponseKeys
type Direction int

const (
	DirectionLeft  Direction = 0
	DirectionRight Direction = 1
)

// Degrees returns the motion angle: right is 0°, left is 180°
func (d Direction) Degrees() float64 {
	if d == DirectionRight {
		return 0
	}
	return 180
}

func (d Direction) String() string {
	if d == DirectionRight {
		return "right"
	}
	return "left"
}

// TrialConfig is the immutable per-trial configuration
type TrialConfig struct {
	Coherence       float64   `toml:"coherence"`
	MotionDirection Direction `toml:"motion_direction"`

	DotDensity     float64 `toml:"dot_density"`     // dots/deg^2/s
	DotSpeed       float64 `toml:"dot_speed"`       // deg/s
	ApertureRadius float64 `toml:"aperture_radius"` // deg
	MaxDurationSec float64 `toml:"max_duration_sec"`

	PixelsPerDegree float64    `toml:"pixels_per_degree"`
	FramesPerSecond float64    `toml:"frames_per_second"`
	DotSizePx       float64    `toml:"dot_size_px"`
	ApertureOffset  [2]float64 `toml:"aperture_offset"` // px from canvas center

	ColorMajorityFraction float64   `toml:"color_majority_fraction"`
	MajorityLabel         int       `toml:"majority_label"`
	DotColors             [2]string `toml:"dot_colors"`
	FixationColor         string    `toml:"fixation_color"`

	ResponseKeys []string  `toml:"response_keys"`
	OnsetDelay   []float64 `toml:"onset_delay"` // ms: [constant] or [mu, lower, upper]

	TooEarlyThresholdMs int `toml:"too_early_threshold_ms"`
	RTDeadlineMs        int `toml:"rt_deadline_ms"`
	FeedbackDurationMs  int `toml:"feedback_duration_ms"`
	ErrorTimeoutMs      int `toml:"error_timeout_ms"`

	Demo         bool   `toml:"demo"`
	Score        int    `toml:"score"`
	DisplayScore bool   `toml:"display_score"`
	Seed         uint64 `toml:"seed"`
}

// Default returns the stock RDM trial
func Default() TrialConfig {
	return TrialConfig{
		Coherence:             0,
		MotionDirection:       DirectionLeft,
		DotDensity:            16,
		DotSpeed:              5,
		ApertureRadius:        2.5,
		PixelsPerDegree:       30,
		FramesPerSecond:       60,
		DotSizePx:             2,
		ColorMajorityFraction: 1,
		MajorityLabel:         0,
		DotColors:             [2]string{"#ffffff", "#ffffff"},
		FixationColor:         "#ff0000",
		ResponseKeys:          []string{"f", "j"},
		OnsetDelay:            []float64{400, 400, 800},
		TooEarlyThresholdMs:   int(constant.DefaultTooEarlyThreshold / time.Millisecond),
		RTDeadlineMs:          3000,
		FeedbackDurationMs:    750,
		ErrorTimeoutMs:        1750,
	}
}

// ConfigError reports a single invalid field
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func fieldErr(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks every field and returns all violations joined
// Programmer errors are reported, never coerced
func (c *TrialConfig) Validate() error {
	var errs []error

	if math.IsNaN(c.Coherence) || c.Coherence < 0 || c.Coherence > 1 {
		errs = append(errs, fieldErr("coherence", "%v not in [0,1]", c.Coherence))
	}
	if c.MotionDirection != DirectionLeft && c.MotionDirection != DirectionRight {
		errs = append(errs, fieldErr("motion_direction", "%d is neither 0 (left) nor 1 (right)", c.MotionDirection))
	}
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"dot_density", c.DotDensity},
		{"dot_speed", c.DotSpeed},
		{"max_duration_sec", c.MaxDurationSec},
	}
	for _, f := range nonNegative {
		if !finite(f.v) || f.v < 0 {
			errs = append(errs, fieldErr(f.name, "must be finite and non-negative, got %v", f.v))
		}
	}
	positive := []struct {
		name string
		v    float64
	}{
		{"aperture_radius", c.ApertureRadius},
		{"pixels_per_degree", c.PixelsPerDegree},
		{"frames_per_second", c.FramesPerSecond},
		{"dot_size_px", c.DotSizePx},
	}
	for _, f := range positive {
		if !finite(f.v) || f.v <= 0 {
			errs = append(errs, fieldErr(f.name, "must be finite and positive, got %v", f.v))
		}
	}
	if math.IsNaN(c.ColorMajorityFraction) || c.ColorMajorityFraction < 0 || c.ColorMajorityFraction > 1 {
		errs = append(errs, fieldErr("color_majority_fraction", "%v not in [0,1]", c.ColorMajorityFraction))
	}
	if c.MajorityLabel != 0 && c.MajorityLabel != 1 {
		errs = append(errs, fieldErr("majority_label", "%d is neither 0 nor 1", c.MajorityLabel))
	}
	for i, hex := range c.DotColors {
		if _, err := ParseColor(hex); err != nil {
			errs = append(errs, fieldErr(fmt.Sprintf("dot_colors[%d]", i), "%v", err))
		}
	}
	if _, err := ParseColor(c.FixationColor); err != nil {
		errs = append(errs, fieldErr("fixation_color", "%v", err))
	}

	errs = append(errs, validateKeys(c.ResponseKeys)...)
	if err := ValidateOnsetDelay(c.OnsetDelay); err != nil {
		errs = append(errs, err)
	}

	timing := []struct {
		name string
		v    int
	}{
		{"too_early_threshold_ms", c.TooEarlyThresholdMs},
		{"rt_deadline_ms", c.RTDeadlineMs},
		{"feedback_duration_ms", c.FeedbackDurationMs},
		{"error_timeout_ms", c.ErrorTimeoutMs},
	}
	for _, tv := range timing {
		if tv.v < 0 {
			errs = append(errs, fieldErr(tv.name, "negative: %d", tv.v))
		}
	}

	return errors.Join(errs...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateKeys(keys []string) []error {
	if len(keys) != 2 {
		return []error{fieldErr("response_keys", "need exactly 2 keys, got %d", len(keys))}
	}
	var errs []error
	for i, k := range keys {
		if strings.TrimSpace(k) == "" {
			errs = append(errs, fieldErr(fmt.Sprintf("response_keys[%d]", i), "empty key"))
		}
	}
	if strings.EqualFold(keys[0], keys[1]) {
		errs = append(errs, fieldErr("response_keys", "keys must differ, both are %q", keys[0]))
	}
	return errs
}

// ValidateOnsetDelay checks a [constant] or [mu, lower, upper] triple in ms
func ValidateOnsetDelay(d []float64) error {
	switch len(d) {
	case 1:
		if !finite(d[0]) || d[0] < 0 {
			return fieldErr("onset_delay", "negative constant delay %v", d[0])
		}
		return nil
	case 3:
		mu, lo, hi := d[0], d[1], d[2]
		if !finite(mu) || !finite(lo) || !finite(hi) {
			return fieldErr("onset_delay", "values must be finite, got [%v, %v, %v]", mu, lo, hi)
		}
		if lo < 0 || hi < 0 {
			return fieldErr("onset_delay", "bounds must be non-negative, got [%v, %v]", lo, hi)
		}
		if lo > hi {
			return fieldErr("onset_delay", "lower bound %v exceeds upper bound %v", lo, hi)
		}
		if mu <= 0 && lo < hi {
			return fieldErr("onset_delay", "mean %v must be positive for a non-degenerate range", mu)
		}
		return nil
	default:
		return fieldErr("onset_delay", "need 1 or 3 values, got %d", len(d))
	}
}

// StimulusDuration returns MaxDurationSec, falling back to the RT deadline
// since the stimulus never outlives the response window
func (c *TrialConfig) StimulusDuration() float64 {
	if c.MaxDurationSec > 0 {
		return c.MaxDurationSec
	}
	return float64(c.RTDeadlineMs) / 1000
}

func (c *TrialConfig) TooEarlyThreshold() time.Duration {
	return time.Duration(c.TooEarlyThresholdMs) * time.Millisecond
}

func (c *TrialConfig) RTDeadline() time.Duration {
	return time.Duration(c.RTDeadlineMs) * time.Millisecond
}

func (c *TrialConfig) FeedbackDuration() time.Duration {
	return time.Duration(c.FeedbackDurationMs) * time.Millisecond
}

func (c *TrialConfig) ErrorTimeout() time.Duration {
	return time.Duration(c.ErrorTimeoutMs) * time.Millisecond
}

// FrameInterval is the nominal refresh period
func (c *TrialConfig) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.FramesPerSecond)
}

// Clone returns a copy that shares no slices with c
func (c TrialConfig) Clone() TrialConfig {
	c.ResponseKeys = append([]string(nil), c.ResponseKeys...)
	c.OnsetDelay = append([]float64(nil), c.OnsetDelay...)
	return c
}
