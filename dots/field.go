// Package dots precomputes random-dot-motion kinematics for a whole trial.
//
// A Field is a frame×dot arena filled once by Generate and shared read-only
// afterwards. Positions are kept in both degree space (aperture-relative, used
// for bounds checks and analysis) and pixel space (used for drawing and telemetry).
package dots

import (
	"github.com/lixenwraith/dotmotion/vmath"
)

// Label is a dot color label; the majority/minority mapping comes from config
type Label uint8

// Field is the immutable output of Generate
type Field struct {
	dotsPerChannel int
	totalFrames    int
	nbank          int

	radius float64 // deg
	ppd    float64
	step   vmath.Vec2 // coherent displacement per bank cycle, deg

	// Row-major [frame*dotsPerChannel + dot]
	deg        []vmath.Vec2
	px         []vmath.Vec2
	coherent   []bool
	reinjected []bool
	labels     []Label

	reinjections int
	resampled    int
}

// FrameView is a read-only window onto one frame of the arena
// Slices alias the arena and must not be modified
type FrameView struct {
	Index    int
	Pixels   []vmath.Vec2
	Coherent []bool
	Labels   []Label
}

func (f *Field) DotsPerChannel() int { return f.dotsPerChannel }

func (f *Field) TotalFrames() int { return f.totalFrames }

func (f *Field) NBank() int { return f.nbank }

func (f *Field) Radius() float64 { return f.radius }

func (f *Field) PixelsPerDegree() float64 { return f.ppd }

// Step returns the coherent displacement vector in degrees
func (f *Field) Step() vmath.Vec2 { return f.step }

// Reinjections counts coherent dots that wrapped at the aperture edge
func (f *Field) Reinjections() int { return f.reinjections }

// Resampled counts coherent dots whose wrap attempts were exhausted
func (f *Field) Resampled() int { return f.resampled }

// InBounds reports whether frame is a valid frame index
func (f *Field) InBounds(frame int) bool {
	return frame >= 0 && frame < f.totalFrames
}

func (f *Field) idx(frame, dot int) int {
	return frame*f.dotsPerChannel + dot
}

// Degrees returns the aperture-relative position of a dot in degrees
func (f *Field) Degrees(frame, dot int) vmath.Vec2 {
	return f.deg[f.idx(frame, dot)]
}

// Pixel returns the aperture-relative position of a dot in pixels
func (f *Field) Pixel(frame, dot int) vmath.Vec2 {
	return f.px[f.idx(frame, dot)]
}

func (f *Field) Coherent(frame, dot int) bool {
	return f.coherent[f.idx(frame, dot)]
}

// Reinjected reports whether a coherent dot was wrapped back into the aperture
func (f *Field) Reinjected(frame, dot int) bool {
	return f.reinjected[f.idx(frame, dot)]
}

func (f *Field) Label(frame, dot int) Label {
	return f.labels[f.idx(frame, dot)]
}

// Frame returns a view of one frame; ok is false past the end of the field
func (f *Field) Frame(frame int) (FrameView, bool) {
	if !f.InBounds(frame) {
		return FrameView{}, false
	}
	lo, hi := f.idx(frame, 0), f.idx(frame+1, 0)
	return FrameView{
		Index:    frame,
		Pixels:   f.px[lo:hi:hi],
		Coherent: f.coherent[lo:hi:hi],
		Labels:   f.labels[lo:hi:hi],
	}, true
}
