package trial

import "testing"

func TestPhase_String(t *testing.T) {
	tests := []struct {
		p    Phase
		want string
	}{
		{PhaseMapping, "MAPPING"},
		{PhaseStimOn, "STIM_ON"},
		{PhaseFinish, "FINISH"},
		{Phase(0), "UNKNOWN"},
		{Phase(9), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.p, got, tt.want)
		}
	}
	if PhaseMapping != 1 || PhaseFinish != 7 {
		t.Error("phase codes are part of the record contract")
	}
}

func TestPhase_ShowsDots(t *testing.T) {
	for p := PhaseMapping; p <= PhaseFinish; p++ {
		want := p == PhaseStimOn || p == PhaseResponseWait
		if p.ShowsDots() != want {
			t.Errorf("%s.ShowsDots() = %v", p, !want)
		}
	}
}
