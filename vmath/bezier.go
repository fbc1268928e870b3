package vmath

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Path sampling resolution bounds for journey length estimation
const (
	MinPathSamples = 10
	MaxPathSamples = 50
)

// Curve is a quadratic Bézier segment
type Curve struct {
	Start, Control, End mgl64.Vec3
}

// Bezier evaluates the quadratic Bézier at t
// P(t) = (1−t)²·start + 2(1−t)t·control + t²·end
// Endpoints are returned exactly at t=0 and t=1
func Bezier(start, control, end mgl64.Vec3, t float64) mgl64.Vec3 {
	if t <= 0 {
		return start
	}
	if t >= 1 {
		return end
	}
	u := 1 - t
	return start.Mul(u * u).
		Add(control.Mul(2 * u * t)).
		Add(end.Mul(t * t))
}

// At evaluates the curve at t
func (c Curve) At(t float64) mgl64.Vec3 {
	return Bezier(c.Start, c.Control, c.End, t)
}

// CurveControlPoint derives a control point lifted off the start-end chord
// Offset is `height` along dir×right (the caster's up for a level shot),
// jittered by a random point in a sphere of radius variance
// start≈end collapses the control point onto start (plus jitter)
func CurveControlPoint(start, end, right mgl64.Vec3, height, variance float64, rng *FastRand) mgl64.Vec3 {
	chord := end.Sub(start)
	if chord.Len() < Epsilon {
		return start
	}

	mid := start.Add(end).Mul(0.5)
	dir := chord.Normalize()
	lift := SafeNormalize(dir.Cross(right), AxisUp)
	control := mid.Add(lift.Mul(height))

	if variance > 0 && rng != nil {
		control = control.Add(rng.InsideUnitSphere().Mul(variance))
	}
	return control
}

// NewCurve builds a curve from start to end with a derived control point
func NewCurve(start, end, right mgl64.Vec3, height, variance float64, rng *FastRand) Curve {
	return Curve{
		Start:   start,
		Control: CurveControlPoint(start, end, right, height, variance, rng),
		End:     end,
	}
}

// PathLength estimates arc length by summing a sampled polyline
// samples is clamped to [MinPathSamples, MaxPathSamples]
// Speed-based traversal uses this as its journey length, not the analytic arc length
func (c Curve) PathLength(samples int) float64 {
	samples = clampSamples(samples)
	length := 0.0
	prev := c.Start
	for i := 1; i <= samples; i++ {
		p := c.At(float64(i) / float64(samples))
		length += p.Sub(prev).Len()
		prev = p
	}
	return length
}

// PathLength is the free-function form of Curve.PathLength
func PathLength(start, control, end mgl64.Vec3, samples int) float64 {
	return Curve{start, control, end}.PathLength(samples)
}

// Sample returns count+1 evenly parameterized points including both ends
func (c Curve) Sample(count int) []mgl64.Vec3 {
	if count < 1 {
		count = 1
	}
	pts := make([]mgl64.Vec3, count+1)
	for i := 0; i <= count; i++ {
		pts[i] = c.At(float64(i) / float64(count))
	}
	return pts
}

// TraversalFraction converts distance covered into curve parameter
// Zero or degenerate journeys complete immediately
func TraversalFraction(covered, journey float64) float64 {
	if journey < Epsilon {
		return 1
	}
	f := covered / journey
	if f != f { // NaN
		return 1
	}
	return f
}

func clampSamples(n int) int {
	if n < MinPathSamples {
		return MinPathSamples
	}
	if n > MaxPathSamples {
		return MaxPathSamples
	}
	return n
}
