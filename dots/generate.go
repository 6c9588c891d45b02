package dots

import (
	"fmt"
	"math"

	"github.com/lixenwraith/dotmotion/config"
	"github.com/lixenwraith/dotmotion/constant"
	"github.com/lixenwraith/dotmotion/vmath"
)

// Counts returns the derived dot and frame counts for a trial
// dotsPerChannel = round(density*pi*r^2/fps), totalFrames = round(duration*fps)
func Counts(density, radius, durationSec, fps float64) (dotsPerChannel, totalFrames int) {
	dotsPerChannel = int(math.Round(density * math.Pi * radius * radius / fps))
	totalFrames = int(math.Round(durationSec * fps))
	return dotsPerChannel, totalFrames
}

// Generate precomputes every frame of a trial's dot field
// The result depends only on cfg and the state of rng
func Generate(cfg *config.TrialConfig, rng vmath.Rand) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("dots: %w", err)
	}

	nDots, nFrames := Counts(cfg.DotDensity, cfg.ApertureRadius, cfg.StimulusDuration(), cfg.FramesPerSecond)
	n := nDots * nFrames
	f := &Field{
		dotsPerChannel: nDots,
		totalFrames:    nFrames,
		nbank:          constant.NBank,
		radius:         cfg.ApertureRadius,
		ppd:            cfg.PixelsPerDegree,
		deg:            make([]vmath.Vec2, n),
		px:             make([]vmath.Vec2, n),
		coherent:       make([]bool, n),
		reinjected:     make([]bool, n),
		labels:         make([]Label, n),
	}

	// Seed the first nbank frames uniformly in the aperture
	for fr := 0; fr < min(f.nbank, nFrames); fr++ {
		for d := 0; d < nDots; d++ {
			f.deg[f.idx(fr, d)] = vmath.UniformInDisk(rng, f.radius)
		}
	}

	// Coherent flags for every frame, including the seeded ones
	for i := range f.coherent {
		f.coherent[i] = rng.Float64() < cfg.Coherence
	}

	// Coherent dots jump relative to nbank frames back, so the step spans nbank frames
	dir := vmath.DegToRad(cfg.MotionDirection.Degrees())
	f.step = vmath.PolToCart(dir, float64(f.nbank)*cfg.DotSpeed/cfg.FramesPerSecond)

	for fr := f.nbank; fr < nFrames; fr++ {
		for d := 0; d < nDots; d++ {
			i := f.idx(fr, d)
			if !f.coherent[i] {
				// Noise dots carry no positional memory
				f.deg[i] = vmath.UniformInDisk(rng, f.radius)
				continue
			}
			p := f.deg[f.idx(fr-f.nbank, d)].Add(f.step)
			if !vmath.InDisk(p, f.radius) {
				p = f.reinject(rng, dir)
				f.reinjected[i] = true
			}
			f.deg[i] = p
		}
	}

	for i, p := range f.deg {
		f.px[i] = p.Scale(f.ppd)
	}

	// Color labels are drawn per (frame, dot), independent of motion and identity
	majority := Label(cfg.MajorityLabel)
	minority := 1 - majority
	for i := range f.labels {
		if rng.Float64() < cfg.ColorMajorityFraction {
			f.labels[i] = majority
		} else {
			f.labels[i] = minority
		}
	}

	return f, nil
}

// reinject places a coherent dot that left the aperture back on the trailing
// edge. asin(2U-1) makes entry points uniform along the cross-section
// perpendicular to motion; the random partial step avoids an aligned curtain
// of dots at the edge. Retried until inside, bounded by MaxWrapAttempts.
func (f *Field) reinject(rng vmath.Rand, dir float64) vmath.Vec2 {
	f.reinjections++
	for attempt := 0; attempt < constant.MaxWrapAttempts; attempt++ {
		ang := math.Asin(2*rng.Float64()-1) + dir + math.Pi
		p := vmath.PolToCart(ang, f.radius).Add(f.step.Scale(rng.Float64()))
		if vmath.InDisk(p, f.radius) {
			return p
		}
	}
	f.resampled++
	return vmath.UniformInDisk(rng, f.radius)
}
