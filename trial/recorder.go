package trial

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/dotmotion/config"
	"github.com/lixenwraith/dotmotion/constant"
	"github.com/lixenwraith/dotmotion/dots"
)

// Recorder accumulates per-frame telemetry and assembles the Record
type Recorder struct {
	rec *Record
}

// NewRecorder starts a record for cfg
func NewRecorder(cfg *config.TrialConfig, onsetDelay time.Duration) *Recorder {
	return &Recorder{rec: &Record{
		TrialID:            uuid.New(),
		MotCoh:             cfg.Coherence,
		MotDir:             int(cfg.MotionDirection),
		DotCohFlag:         make([][]bool, 0),
		DotX:               make([][]float64, 0),
		DotY:               make([][]float64, 0),
		DotCol:             make([][]int, 0),
		TrialTime:          make([]float64, 0),
		State:              make([]Phase, 0),
		FPS:                cfg.FramesPerSecond,
		PPD:                cfg.PixelsPerDegree,
		RDMLocation:        cfg.ApertureOffset,
		OnsetDelay:         ms(onsetDelay),
		FullScreenExitTime: make([]float64, 0),
		WinResizeTime:      make([]float64, 0),
		Seed:               cfg.Seed,
		Demo:               cfg.Demo,
		PhaseLog:           make([]PhaseEntry, 0, 8),
	}}
}

// Enter logs a phase entry at t since trial start
func (r *Recorder) Enter(p Phase, t time.Duration) {
	r.rec.PhaseLog = append(r.rec.PhaseLog, PhaseEntry{Phase: p, T: ms(t)})
}

// Row appends the telemetry of one drawn frame; t is relative to stimulus onset
// Frame data is copied out of the shared field
func (r *Recorder) Row(t time.Duration, p Phase, v dots.FrameView) {
	n := len(v.Pixels)
	xs := make([]float64, n)
	ys := make([]float64, n)
	cols := make([]int, n)
	for i, px := range v.Pixels {
		xs[i], ys[i] = px.X, px.Y
		cols[i] = int(v.Labels[i])
	}

	r.rec.TrialTime = append(r.rec.TrialTime, ms(t))
	r.rec.State = append(r.rec.State, p)
	r.rec.DotCohFlag = append(r.rec.DotCohFlag, append([]bool(nil), v.Coherent...))
	r.rec.DotX = append(r.rec.DotX, xs)
	r.rec.DotY = append(r.rec.DotY, ys)
	r.rec.DotCol = append(r.rec.DotCol, cols)
}

// Interrupt logs an interruption timestamp under its record field
func (r *Recorder) Interrupt(kind InterruptKind, t time.Duration) {
	switch kind {
	case InterruptResize:
		r.rec.WinResizeTime = append(r.rec.WinResizeTime, ms(t))
	case InterruptExitFullScreen, InterruptFocusLost:
		r.rec.FullScreenExitTime = append(r.rec.FullScreenExitTime, ms(t))
	}
}

// Rows returns the number of telemetry rows so far
func (r *Recorder) Rows() int {
	return len(r.rec.TrialTime)
}

// Finalize fills the outcome fields and returns the record
func (r *Recorder) Finalize(o *Outcome, framePtr int, canvCenter [2]float64, dropped uint64) *Record {
	rec := r.rec
	rec.ChoiceKey = o.ChoiceKey
	rec.Choice = o.Choice
	rec.Accuracy = o.Accuracy
	if o.RT != nil {
		rt := ms(*o.RT)
		rec.RT = &rt
	}
	rec.MissTrial = o.Miss
	rec.MissTrialMsg = o.MissReasons()
	rec.Aborted = o.Aborted
	rec.NFrames = framePtr
	rec.CanvCenter = canvCenter
	rec.DroppedFrames = dropped

	switch {
	case o.Aborted:
		rec.ScoreDelta = 0
	case o.Correct():
		rec.ScoreDelta = constant.ScoreCorrect
	default:
		rec.ScoreDelta = constant.ScorePenalty
	}
	return rec
}

// ms converts to milliseconds rounded to microsecond precision
func ms(d time.Duration) float64 {
	return math.Round(float64(d)/float64(time.Microsecond)) / 1000
}
