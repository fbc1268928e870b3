package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// HelixSpec describes a tapered helix wound around the segment base→tip
type HelixSpec struct {
	Points      int     // Samples along the strand, >= 2
	StartRadius float64 // Radius at base
	EndRadius   float64 // Radius at tip
	Rotations   float64 // Full turns over the strand
	PhaseDeg    float64 // Angular offset in degrees, separates strands
}

// Helix returns strand points from base to tip
// The circle basis is built from the axis and world up; falls back to +X when
// the axis is vertical
func Helix(base, tip mgl64.Vec3, spec HelixSpec) []mgl64.Vec3 {
	n := spec.Points
	if n < 2 {
		n = 2
	}
	axis := tip.Sub(base)
	length := axis.Len()
	dir := SafeNormalize(axis, AxisForward)

	right := dir.Cross(AxisUp)
	if right.Len() < 0.001 {
		right = AxisRight
	}
	right = right.Normalize()
	up := right.Cross(dir).Normalize()

	pts := make([]mgl64.Vec3, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		radius := LerpScalar(spec.StartRadius, spec.EndRadius, t)
		angle := (t*spec.Rotations*360 + spec.PhaseDeg) * math.Pi / 180

		offset := right.Mul(radius * math.Cos(angle)).Add(up.Mul(radius * math.Sin(angle)))
		pts[i] = base.Add(dir.Mul(t * length)).Add(offset)
	}
	return pts
}

// PolylineLength sums segment lengths
func PolylineLength(pts []mgl64.Vec3) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i].Sub(pts[i-1]).Len()
	}
	return total
}

// PolylineAt returns the point at normalized arc length t along pts
// Also returns the unit tangent of the containing segment
func PolylineAt(pts []mgl64.Vec3, t float64) (mgl64.Vec3, mgl64.Vec3) {
	switch len(pts) {
	case 0:
		return mgl64.Vec3{}, AxisForward
	case 1:
		return pts[0], AxisForward
	}

	t = Clamp01(t)
	total := PolylineLength(pts)
	if total < Epsilon {
		return pts[0], AxisForward
	}

	target := t * total
	walked := 0.0
	for i := 1; i < len(pts); i++ {
		seg := pts[i].Sub(pts[i-1])
		segLen := seg.Len()
		if segLen < Epsilon {
			continue
		}
		if walked+segLen >= target {
			local := (target - walked) / segLen
			return Lerp(pts[i-1], pts[i], local), seg.Mul(1 / segLen)
		}
		walked += segLen
	}

	last := len(pts) - 1
	return pts[last], SafeNormalize(pts[last].Sub(pts[last-1]), AxisForward)
}
