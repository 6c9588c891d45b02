package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/dotmotion/vmath"
)

// Session describes a block of trials run by the harness
// The base Trial is varied over Coherences x Directions
type Session struct {
	Trials      int         `toml:"trials"`
	Coherences  []float64   `toml:"coherences"`
	Directions  []Direction `toml:"directions"`
	MaxReissues int         `toml:"max_reissues"`
	DemoFirst   bool        `toml:"demo_first"`
	Output      string      `toml:"output"`
	FramesDir   string      `toml:"frames_dir"`
	Sound       bool        `toml:"sound"`

	Trial TrialConfig `toml:"trial"`
}

// DefaultSession returns a short mixed-coherence block
func DefaultSession() Session {
	return Session{
		Trials:      8,
		Coherences:  []float64{0.05, 0.1, 0.2, 0.4},
		Directions:  []Direction{DirectionLeft, DirectionRight},
		MaxReissues: 3,
		Output:      "rdm_records.jsonl",
		Trial:       Default(),
	}
}

// LoadSession decodes a TOML session file over the defaults
// Unknown keys are rejected so typos fail fast
func LoadSession(path string) (Session, error) {
	s := DefaultSession()
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return Session{}, fmt.Errorf("failed to load session %s: %w", path, err)
	}
	if err := rejectUndecoded(md); err != nil {
		return Session{}, fmt.Errorf("session %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Session{}, fmt.Errorf("session %s: %w", path, err)
	}
	return s, nil
}

// DecodeSession decodes a TOML document over the defaults without touching disk
// Unknown keys are rejected as in LoadSession
func DecodeSession(doc string) (Session, error) {
	s := DefaultSession()
	md, err := toml.Decode(doc, &s)
	if err != nil {
		return Session{}, fmt.Errorf("failed to decode session: %w", err)
	}
	if err := rejectUndecoded(md); err != nil {
		return Session{}, err
	}
	if err := s.Validate(); err != nil {
		return Session{}, err
	}
	return s, nil
}

func rejectUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
}

// Validate checks the block layout and the base trial
func (s *Session) Validate() error {
	var errs []error
	if s.Trials < 0 {
		errs = append(errs, fieldErr("trials", "negative: %d", s.Trials))
	}
	if len(s.Coherences) == 0 {
		errs = append(errs, fieldErr("coherences", "empty"))
	}
	for i, c := range s.Coherences {
		if c < 0 || c > 1 {
			errs = append(errs, fieldErr(fmt.Sprintf("coherences[%d]", i), "%v not in [0,1]", c))
		}
	}
	if len(s.Directions) == 0 {
		errs = append(errs, fieldErr("directions", "empty"))
	}
	for i, d := range s.Directions {
		if d != DirectionLeft && d != DirectionRight {
			errs = append(errs, fieldErr(fmt.Sprintf("directions[%d]", i), "%d is neither 0 nor 1", d))
		}
	}
	if s.MaxReissues < 0 {
		errs = append(errs, fieldErr("max_reissues", "negative: %d", s.MaxReissues))
	}
	if err := s.Trial.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Plan expands the block into Trials configs, balanced over the condition grid
// and shuffled with rng; each trial gets its own seed drawn from rng
func (s *Session) Plan(rng *vmath.FastRand) []TrialConfig {
	conds := make([]TrialConfig, 0, len(s.Coherences)*len(s.Directions))
	for _, coh := range s.Coherences {
		for _, dir := range s.Directions {
			tc := s.Trial.Clone()
			tc.Coherence = coh
			tc.MotionDirection = dir
			tc.Demo = false
			conds = append(conds, tc)
		}
	}

	plan := make([]TrialConfig, 0, s.Trials+1)
	for i := 0; i < s.Trials; i++ {
		plan = append(plan, conds[i%len(conds)].Clone())
	}
	rng.Shuffle(len(plan), func(i, j int) { plan[i], plan[j] = plan[j], plan[i] })

	if s.DemoFirst {
		demo := s.Trial.Clone()
		demo.Demo = true
		demo.Coherence = 1
		plan = append([]TrialConfig{demo}, plan...)
	}

	for i := range plan {
		plan[i].Seed = rng.Next()
	}
	return plan
}
