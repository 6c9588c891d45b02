package trial

// Phase is the trial state; values are the stable codes written to records
type Phase uint8

const (
	PhaseMapping Phase = iota + 1
	PhaseFixate
	PhaseDelay
	PhaseStimOn
	PhaseResponseWait
	PhaseFeedback
	PhaseFinish
)

var phaseNames = [...]string{
	PhaseMapping:      "MAPPING",
	PhaseFixate:       "FIXATE",
	PhaseDelay:        "DELAY",
	PhaseStimOn:       "STIM_ON",
	PhaseResponseWait: "RESPONSE_WAIT",
	PhaseFeedback:     "FEEDBACK",
	PhaseFinish:       "FINISH",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) && phaseNames[p] != "" {
		return phaseNames[p]
	}
	return "UNKNOWN"
}

// ShowsDots reports whether the dot field is drawn in this phase
func (p Phase) ShowsDots() bool {
	return p == PhaseStimOn || p == PhaseResponseWait
}
