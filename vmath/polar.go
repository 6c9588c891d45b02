package vmath

import "math"

// Vec2 is a 2D point or displacement in float space
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the distance from the origin
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// PolToCart converts polar (theta radians, r) to Cartesian
func PolToCart(theta, r float64) Vec2 {
	return Vec2{X: r * math.Cos(theta), Y: r * math.Sin(theta)}
}

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// UniformInDisk samples a point with uniform areal density inside a disk of radius
// r = radius*sqrt(U) is required; r = radius*U would crowd the center
func UniformInDisk(rng Rand, radius float64) Vec2 {
	theta := 2 * math.Pi * rng.Float64()
	return PolToCart(theta, radius*math.Sqrt(rng.Float64()))
}

// InDisk reports whether p lies within radius of the origin
func InDisk(p Vec2, radius float64) bool {
	return p.Len() <= radius
}
