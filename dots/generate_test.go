package dots

import (
	"math"
	"testing"

	"github.com/lixenwraith/dotmotion/config"
	"github.com/lixenwraith/dotmotion/vmath"
)

func denseConfig(coherence float64) config.TrialConfig {
	c := config.Default()
	c.Coherence = coherence
	c.DotDensity = 100
	c.ApertureRadius = 5
	c.MotionDirection = config.DirectionRight
	return c
}

func mustGenerate(t *testing.T, c config.TrialConfig, seed uint64) *Field {
	t.Helper()
	f, err := Generate(&c, vmath.NewFastRand(seed))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return f
}

func TestCounts(t *testing.T) {
	tests := []struct {
		density, radius, dur, fps float64
		dots, frames              int
	}{
		{16, 2.5, 3, 60, 5, 180},
		{100, 5, 3, 60, 131, 180},
		{16, 2.5, 2, 144, 2, 288},
		{0, 2.5, 1, 60, 0, 60},
	}
	for _, tt := range tests {
		d, f := Counts(tt.density, tt.radius, tt.dur, tt.fps)
		if d != tt.dots || f != tt.frames {
			t.Errorf("Counts(%v, %v, %v, %v) = %d, %d; want %d, %d",
				tt.density, tt.radius, tt.dur, tt.fps, d, f, tt.dots, tt.frames)
		}
		d2, f2 := Counts(tt.density, tt.radius, tt.dur, tt.fps)
		if d2 != d || f2 != f {
			t.Error("Counts is not a pure function")
		}
	}
}

func TestGenerate_InsideAperture(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*config.TrialConfig)
	}{
		{"default", func(c *config.TrialConfig) {}},
		{"full coherence", func(c *config.TrialConfig) { c.Coherence = 1 }},
		{"half coherence left", func(c *config.TrialConfig) {
			c.Coherence = 0.5
			c.MotionDirection = config.DirectionLeft
		}},
		{"fast dots", func(c *config.TrialConfig) { c.Coherence = 1; c.DotSpeed = 40 }},
		// Step of 3*600/60 = 30deg exceeds the 10deg diameter
		{"step larger than diameter", func(c *config.TrialConfig) { c.Coherence = 1; c.DotSpeed = 600 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := denseConfig(0.3)
			tt.mut(&c)
			f := mustGenerate(t, c, 5)
			for fr := 0; fr < f.TotalFrames(); fr++ {
				for d := 0; d < f.DotsPerChannel(); d++ {
					if r := f.Degrees(fr, d).Len(); r > f.Radius() {
						t.Fatalf("frame %d dot %d at radius %v > %v", fr, d, r, f.Radius())
					}
				}
			}
		})
	}
}

func TestGenerate_WrapFallbackResamples(t *testing.T) {
	c := denseConfig(1)
	// Step of 3*1e6/60 = 5e4deg; a partial step almost never lands inside
	c.DotSpeed = 1e6
	f := mustGenerate(t, c, 11)

	if f.Resampled() == 0 {
		t.Fatal("expected capped reinjection to fall back to uniform resampling")
	}
	if f.Resampled() > f.Reinjections() {
		t.Errorf("resampled %d exceeds reinjections %d", f.Resampled(), f.Reinjections())
	}
	for fr := 0; fr < f.TotalFrames(); fr++ {
		for d := 0; d < f.DotsPerChannel(); d++ {
			if r := f.Degrees(fr, d).Len(); r > f.Radius() {
				t.Fatalf("frame %d dot %d at radius %v > %v", fr, d, r, f.Radius())
			}
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	c := denseConfig(0.5)
	a := mustGenerate(t, c, 99)
	b := mustGenerate(t, c, 99)
	other := mustGenerate(t, c, 100)

	differs := false
	for fr := 0; fr < a.TotalFrames(); fr++ {
		for d := 0; d < a.DotsPerChannel(); d++ {
			if a.Degrees(fr, d) != b.Degrees(fr, d) || a.Coherent(fr, d) != b.Coherent(fr, d) || a.Label(fr, d) != b.Label(fr, d) {
				t.Fatalf("same seed diverged at frame %d dot %d", fr, d)
			}
			if a.Degrees(fr, d) != other.Degrees(fr, d) {
				differs = true
			}
		}
	}
	if !differs {
		t.Error("different seeds produced identical fields")
	}
}

func TestGenerate_FullCoherenceMovesByStep(t *testing.T) {
	c := denseConfig(1)
	f := mustGenerate(t, c, 17)

	step := f.Step()
	wantLen := float64(f.NBank()) * c.DotSpeed / c.FramesPerSecond
	if math.Abs(step.Len()-wantLen) > 1e-12 || math.Abs(step.Y) > 1e-12 || step.X <= 0 {
		t.Fatalf("unexpected rightward step %+v", step)
	}

	checked := 0
	for fr := f.NBank(); fr < f.TotalFrames(); fr++ {
		for d := 0; d < f.DotsPerChannel(); d++ {
			if !f.Coherent(fr, d) {
				t.Fatalf("coherence 1 produced a noise dot at frame %d", fr)
			}
			if f.Reinjected(fr, d) {
				continue
			}
			prev := f.Degrees(fr-f.NBank(), d)
			cur := f.Degrees(fr, d)
			if math.Abs(cur.X-prev.X-step.X) > 1e-9 || math.Abs(cur.Y-prev.Y-step.Y) > 1e-9 {
				t.Fatalf("frame %d dot %d displaced by (%v, %v), want %+v",
					fr, d, cur.X-prev.X, cur.Y-prev.Y, step)
			}
			checked++
		}
	}
	if checked == 0 || f.Reinjections() == 0 {
		t.Errorf("expected both steps and reinjections, got %d steps, %d reinjections", checked, f.Reinjections())
	}
}

func TestGenerate_ZeroCoherenceHasNoMemory(t *testing.T) {
	f := mustGenerate(t, denseConfig(0), 23)

	var xs, ys []float64
	for fr := f.NBank(); fr < f.TotalFrames(); fr++ {
		for d := 0; d < f.DotsPerChannel(); d++ {
			if f.Coherent(fr, d) {
				t.Fatal("coherence 0 produced a coherent dot")
			}
			xs = append(xs, f.Degrees(fr-f.NBank(), d).X)
			ys = append(ys, f.Degrees(fr, d).X)
		}
	}
	if r := pearson(xs, ys); math.Abs(r) > 0.03 {
		t.Errorf("positions correlated across banks: r=%.4f", r)
	}
}

func TestGenerate_CoherentFraction(t *testing.T) {
	f := mustGenerate(t, denseConfig(0.4), 31)
	total, coh := 0, 0
	for fr := 0; fr < f.TotalFrames(); fr++ {
		for d := 0; d < f.DotsPerChannel(); d++ {
			total++
			if f.Coherent(fr, d) {
				coh++
			}
		}
	}
	if frac := float64(coh) / float64(total); math.Abs(frac-0.4) > 0.02 {
		t.Errorf("coherent fraction %.3f, want ~0.4", frac)
	}
}

func TestGenerate_ColorIndependentOfMotion(t *testing.T) {
	c := denseConfig(0.5)
	c.ColorMajorityFraction = 0.7
	c.MajorityLabel = 1
	f := mustGenerate(t, c, 41)

	var cohN, cohMaj, noiseN, noiseMaj int
	for fr := 0; fr < f.TotalFrames(); fr++ {
		for d := 0; d < f.DotsPerChannel(); d++ {
			maj := f.Label(fr, d) == 1
			if f.Coherent(fr, d) {
				cohN++
				if maj {
					cohMaj++
				}
			} else {
				noiseN++
				if maj {
					noiseMaj++
				}
			}
		}
	}
	fc := float64(cohMaj) / float64(cohN)
	fn := float64(noiseMaj) / float64(noiseN)
	if math.Abs(fc-0.7) > 0.02 || math.Abs(fn-0.7) > 0.02 {
		t.Errorf("majority fraction coherent=%.3f noise=%.3f, want ~0.7 for both", fc, fn)
	}
}

func TestGenerate_PixelScaling(t *testing.T) {
	c := denseConfig(0.5)
	f := mustGenerate(t, c, 3)
	for fr := 0; fr < f.TotalFrames(); fr += 17 {
		for d := 0; d < f.DotsPerChannel(); d++ {
			deg, px := f.Degrees(fr, d), f.Pixel(fr, d)
			if px.X != deg.X*c.PixelsPerDegree || px.Y != deg.Y*c.PixelsPerDegree {
				t.Fatalf("pixel %+v is not degrees %+v scaled by %v", px, deg, c.PixelsPerDegree)
			}
		}
	}
}

func TestField_FrameBounds(t *testing.T) {
	f := mustGenerate(t, denseConfig(0.5), 8)

	view, ok := f.Frame(f.TotalFrames() - 1)
	if !ok || len(view.Pixels) != f.DotsPerChannel() || len(view.Labels) != f.DotsPerChannel() {
		t.Fatalf("last frame view invalid: ok=%v len=%d", ok, len(view.Pixels))
	}
	if _, ok := f.Frame(f.TotalFrames()); ok {
		t.Error("frame past the end must not be readable")
	}
	if _, ok := f.Frame(-1); ok {
		t.Error("negative frame must not be readable")
	}
}

func TestGenerate_InvalidConfig(t *testing.T) {
	c := config.Default()
	c.DotDensity = -1
	if _, err := Generate(&c, vmath.NewFastRand(1)); err == nil {
		t.Error("expected error for negative density")
	}
}

func pearson(a, b []float64) float64 {
	n := float64(len(a))
	var ma, mb float64
	for i := range a {
		ma += a[i]
		mb += b[i]
	}
	ma /= n
	mb /= n
	var cov, va, vb float64
	for i := range a {
		cov += (a[i] - ma) * (b[i] - mb)
		va += (a[i] - ma) * (a[i] - ma)
		vb += (b[i] - mb) * (b[i] - mb)
	}
	return cov / math.Sqrt(va*vb)
}
