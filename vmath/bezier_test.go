package vmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBezierEndpointsExact(t *testing.T) {
	rng := NewFastRand(42)
	for i := 0; i < 200; i++ {
		start := rng.InsideUnitSphere().Mul(100)
		control := rng.InsideUnitSphere().Mul(100)
		end := rng.InsideUnitSphere().Mul(100)

		if got := Bezier(start, control, end, 0); got != start {
			t.Fatalf("Bezier(t=0) = %v, want %v", got, start)
		}
		if got := Bezier(start, control, end, 1); got != end {
			t.Fatalf("Bezier(t=1) = %v, want %v", got, end)
		}
	}
}

func TestBezierMidpoint(t *testing.T) {
	start := mgl64.Vec3{0, 0, 0}
	control := mgl64.Vec3{0, 2, 5}
	end := mgl64.Vec3{0, 0, 10}

	// P(0.5) = 0.25*start + 0.5*control + 0.25*end
	want := mgl64.Vec3{0, 1, 5}
	got := Bezier(start, control, end, 0.5)
	if !got.ApproxEqualThreshold(want, 1e-12) {
		t.Errorf("Bezier(0.5) = %v, want %v", got, want)
	}
}

func TestPathLengthStraightLine(t *testing.T) {
	start := mgl64.Vec3{0, 0, 0}
	end := mgl64.Vec3{0, 0, 20}
	control := mgl64.Vec3{0, 0, 10}

	got := PathLength(start, control, end, 20)
	if math.Abs(got-20) > 1e-9 {
		t.Errorf("PathLength straight = %v, want 20", got)
	}
}

func TestPathLengthCurvedExceedsChord(t *testing.T) {
	c := Curve{
		Start:   mgl64.Vec3{0, 0, 0},
		Control: mgl64.Vec3{0, 4, 10},
		End:     mgl64.Vec3{0, 0, 20},
	}
	coarse := c.PathLength(MinPathSamples)
	fine := c.PathLength(MaxPathSamples)

	if coarse <= 20 || fine <= 20 {
		t.Fatalf("curved length must exceed chord: coarse=%v fine=%v", coarse, fine)
	}
	// Polyline underestimates; finer sampling converges upward
	if fine < coarse {
		t.Errorf("finer sampling shorter than coarse: fine=%v coarse=%v", fine, coarse)
	}
}

func TestPathLengthSampleClamp(t *testing.T) {
	c := Curve{Start: mgl64.Vec3{}, Control: mgl64.Vec3{0, 3, 5}, End: mgl64.Vec3{0, 0, 10}}
	if c.PathLength(1) != c.PathLength(MinPathSamples) {
		t.Error("samples below minimum should clamp to MinPathSamples")
	}
	if c.PathLength(1000) != c.PathLength(MaxPathSamples) {
		t.Error("samples above maximum should clamp to MaxPathSamples")
	}
}

func TestDegenerateCurve(t *testing.T) {
	p := mgl64.Vec3{1, 2, 3}
	control := CurveControlPoint(p, p, AxisRight, 0.5, 0, nil)
	if control != p {
		t.Errorf("control for start==end = %v, want %v", control, p)
	}

	journey := PathLength(p, control, p, 20)
	if journey != 0 {
		t.Errorf("journey = %v, want 0", journey)
	}

	if f := TraversalFraction(0, journey); f != 1 {
		t.Errorf("TraversalFraction on zero journey = %v, want 1", f)
	}
	if f := TraversalFraction(0.5, 0); math.IsNaN(f) || math.IsInf(f, 0) {
		t.Errorf("TraversalFraction leaked non-finite value %v", f)
	}
}

func TestCurveControlPointLift(t *testing.T) {
	start := mgl64.Vec3{0, 0, 0}
	end := mgl64.Vec3{0, 0, 10}

	// dir=+Z, right=+X: Z×X = +Y
	control := CurveControlPoint(start, end, AxisRight, 2, 0, nil)
	want := mgl64.Vec3{0, 2, 5}
	if !control.ApproxEqualThreshold(want, 1e-12) {
		t.Errorf("control = %v, want %v", control, want)
	}
}

func TestCurveControlPointVarianceBounded(t *testing.T) {
	rng := NewFastRand(7)
	start := mgl64.Vec3{0, 0, 0}
	end := mgl64.Vec3{0, 0, 10}
	base := CurveControlPoint(start, end, AxisRight, 1, 0, nil)

	for i := 0; i < 500; i++ {
		c := CurveControlPoint(start, end, AxisRight, 1, 0.3, rng)
		if d := c.Sub(base).Len(); d >= 0.3 {
			t.Fatalf("jitter %v exceeds variance 0.3", d)
		}
	}
}

func TestCurveSample(t *testing.T) {
	c := Curve{Start: mgl64.Vec3{}, Control: mgl64.Vec3{0, 1, 1}, End: mgl64.Vec3{0, 0, 2}}
	pts := c.Sample(8)
	if len(pts) != 9 {
		t.Fatalf("len = %d, want 9", len(pts))
	}
	if pts[0] != c.Start || pts[8] != c.End {
		t.Error("sample endpoints must match curve endpoints")
	}
}
