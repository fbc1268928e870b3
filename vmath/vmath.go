// Package vmath provides the float64 3D math used by casting: poses, quadratic
// curves, helices, damping and a small deterministic random source.
// Vectors and quaternions are mgl64 types; this package only adds the
// game-specific operations on top of them.
package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the distance below which two points are treated as coincident
const Epsilon = 1e-6

// Axis vectors in the casting frame: +Z forward, +Y up, +X right
var (
	AxisRight   = mgl64.Vec3{1, 0, 0}
	AxisUp      = mgl64.Vec3{0, 1, 0}
	AxisForward = mgl64.Vec3{0, 0, 1}
)

// IsFinite reports whether every component is neither NaN nor Inf
func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// SafeNormalize returns v scaled to unit length, or fallback when v is degenerate
func SafeNormalize(v, fallback mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < Epsilon || !IsFinite(v) {
		return fallback
	}
	return v.Mul(1 / l)
}

// Lerp interpolates linearly between a and b, t unclamped
func Lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// LerpScalar interpolates linearly between a and b, t unclamped
func LerpScalar(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 clamps t to [0,1]
func Clamp01(t float64) float64 {
	return mgl64.Clamp(t, 0, 1)
}

// Damp moves current toward target with frame-rate independent exponential smoothing
// rate is the inverse time constant (1/s); dt in seconds
// Critically damped: never overshoots, converges regardless of tick rate
func Damp(current, target mgl64.Vec3, rate, dt float64) mgl64.Vec3 {
	if rate <= 0 || dt <= 0 {
		return current
	}
	k := 1 - math.Exp(-rate*dt)
	return Lerp(current, target, k)
}

// ClampLength limits the magnitude of v to max, preserving direction
func ClampLength(v mgl64.Vec3, max float64) mgl64.Vec3 {
	if max <= 0 {
		return mgl64.Vec3{}
	}
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Mul(max / l)
}

// --- Randomness ---

// FastRand is a xorshift64 generator
// Deterministic for a given seed; not safe for concurrent use
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0,1) using the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// InsideUnitSphere returns a uniformly distributed point with length < 1
// Rejection sampling; expected ~1.9 draws
func (r *FastRand) InsideUnitSphere() mgl64.Vec3 {
	for {
		p := mgl64.Vec3{
			r.Float64()*2 - 1,
			r.Float64()*2 - 1,
			r.Float64()*2 - 1,
		}
		if p.Dot(p) < 1 {
			return p
		}
	}
}
