package trial

import (
	"github.com/google/uuid"
)

// PhaseEntry is one phase transition, in ms since trial start
type PhaseEntry struct {
	Phase Phase   `json:"phase"`
	T     float64 `json:"t"`
}

// Record is the write-once result of one trial
// JSON names are the downstream analysis contract
type Record struct {
	TrialID uuid.UUID `json:"TrialID"`

	MotCoh float64 `json:"MotCoh"`
	MotDir int     `json:"MotDir"`

	ChoiceKey *string  `json:"ChoiceKey"`
	Choice    *int     `json:"Choice"`
	Accuracy  *bool    `json:"Accuracy"`
	RT        *float64 `json:"RT"` // ms from stimulus onset

	// Per drawn frame
	DotCohFlag [][]bool    `json:"DotCohFlag"`
	DotX       [][]float64 `json:"DotX"`
	DotY       [][]float64 `json:"DotY"`
	DotCol     [][]int     `json:"DotCol"`
	TrialTime  []float64   `json:"TrialTime"` // ms from stimulus onset
	State      []Phase     `json:"State"`

	NFrames int     `json:"nFrames"`
	FPS     float64 `json:"FPS"`
	PPD     float64 `json:"PPD"`

	MissTrial    bool   `json:"missTrial"`
	MissTrialMsg string `json:"missTrialMsg"`

	RDMLocation        [2]float64 `json:"RDM_location"`
	OnsetDelay         float64    `json:"onsetDelay"` // ms
	FullScreenExitTime []float64  `json:"fullScreenExitTime"`
	WinResizeTime      []float64  `json:"winResizeTime"`
	CanvCenter         [2]float64 `json:"canvCenter"`

	Seed          uint64       `json:"Seed"`
	Demo          bool         `json:"Demo"`
	PhaseLog      []PhaseEntry `json:"PhaseLog"`
	DroppedFrames uint64       `json:"DroppedFrames"`
	Aborted       bool         `json:"Aborted"`
	ScoreDelta    int          `json:"ScoreDelta"`
}

// Phases returns the phase entry sequence
func (r *Record) Phases() []Phase {
	out := make([]Phase, len(r.PhaseLog))
	for i, e := range r.PhaseLog {
		out[i] = e.Phase
	}
	return out
}
