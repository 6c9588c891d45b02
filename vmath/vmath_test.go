package vmath

import (
	"math"
	"testing"
)

func TestFastRand_Deterministic(t *testing.T) {
	a := NewFastRand(42)
	b := NewFastRand(42)
	for i := 0; i < 1000; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("streams diverged at draw %d", i)
		}
	}
}

func TestFastRand_Range(t *testing.T) {
	r := NewFastRand(0)
	var sum float64
	const n = 100000
	for i := 0; i < n; i++ {
		v := r.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64 out of range: %v", v)
		}
		sum += v
	}
	if mean := sum / n; math.Abs(mean-0.5) > 0.01 {
		t.Errorf("expected mean near 0.5, got %.4f", mean)
	}
}

func TestFastRand_SeedsDiffer(t *testing.T) {
	a := NewFastRand(1)
	b := NewFastRand(2)
	if a.Float64() == b.Float64() {
		t.Error("adjacent seeds produced the same first draw")
	}
}

func TestUniformInDisk_Density(t *testing.T) {
	r := NewFastRand(7)
	const radius = 2.5
	const n = 200000
	inner := 0
	for i := 0; i < n; i++ {
		p := UniformInDisk(r, radius)
		if !InDisk(p, radius) {
			t.Fatalf("sample outside disk: %+v", p)
		}
		if p.Len() <= radius/math.Sqrt2 {
			inner++
		}
	}
	// Half the area lies within radius/sqrt(2)
	frac := float64(inner) / n
	if math.Abs(frac-0.5) > 0.01 {
		t.Errorf("expected half the samples in inner disk, got %.4f", frac)
	}
}

func TestPolToCart(t *testing.T) {
	tests := []struct {
		theta, r float64
		want     Vec2
	}{
		{0, 1, Vec2{1, 0}},
		{math.Pi, 2, Vec2{-2, 0}},
		{math.Pi / 2, 3, Vec2{0, 3}},
	}
	for _, tt := range tests {
		got := PolToCart(tt.theta, tt.r)
		if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
			t.Errorf("PolToCart(%v, %v) = %+v, want %+v", tt.theta, tt.r, got, tt.want)
		}
	}
}
