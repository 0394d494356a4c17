// Package field computes the directional perturbations applied to growing
// branches. Both fields are pure functions of their inputs.
package field

import (
	"math"

	"plum-bloom/internal/core"
)

const (
	// PointerRadiusFactor scales min(W,H) into the pointer field's reach.
	PointerRadiusFactor = 0.6
	// PointerGain is the full-strength pull at zero distance.
	PointerGain = 0.28

	// TimeGain is the full-amount oscillation amplitude in radians.
	TimeGain      = 0.12
	timeDepthRate = 0.16
	timeChildRate = 0.95
)

// PointerInput is the state the pointer field reads.
type PointerInput struct {
	Enabled  bool
	Known    bool
	Pointer  core.Point
	Size     core.Size
	Strength float64 // 0..100
}

// Pointer returns the heading correction pulling a branch growing from at with
// heading theta toward the pointer. Closer pointers pull harder; beyond the
// radius the field contributes nothing.
func Pointer(in PointerInput, at core.Point, theta float64) float64 {
	if !in.Enabled || !in.Known {
		return 0
	}
	radius := PointerRadiusFactor * in.Size.Min()
	if radius <= 0 {
		return 0
	}
	d := in.Pointer.Sub(at)
	dist := d.Len()
	if dist > radius {
		return 0
	}
	delta := WrapAngle(math.Atan2(d.Y, d.X) - theta)
	return delta * PointerGain * (in.Strength / 100) * (1 - dist/radius)
}

// TimeInput is the state the time field reads.
type TimeInput struct {
	Enabled bool
	Phase   float64
	Amount  float64 // 0..100
}

// Time returns the oscillating bend for the child-th sibling at depth.
func Time(in TimeInput, depth, child int) float64 {
	if !in.Enabled {
		return 0
	}
	return math.Sin(in.Phase+float64(depth)*timeDepthRate+float64(child)*timeChildRate) * TimeGain * (in.Amount / 100)
}

// WrapAngle maps a into (-π, π].
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// Pull returns the pointer's attraction at a point as a vector whose length
// is the weight Pointer would apply there. It is zero wherever Pointer is.
func Pull(in PointerInput, at core.Point) core.Point {
	if !in.Enabled || !in.Known {
		return core.Point{}
	}
	radius := PointerRadiusFactor * in.Size.Min()
	if radius <= 0 {
		return core.Point{}
	}
	d := in.Pointer.Sub(at)
	dist := d.Len()
	if dist > radius || dist == 0 {
		return core.Point{}
	}
	w := PointerGain * (in.Strength / 100) * (1 - dist/radius)
	return core.Point{X: d.X / dist * w, Y: d.Y / dist * w}
}
