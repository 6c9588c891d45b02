package input

import "github.com/lixenwraith/dotmotion/config"

func trialConfig() config.TrialConfig {
	cfg := config.Default()
	cfg.OnsetDelay = []float64{300}
	return cfg
}
