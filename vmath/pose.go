package vmath

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Pose is a world-space position and orientation
// Rotation maps the local frame (+Z forward, +Y up, +X right) to world space
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// IdentityPose has zero position and no rotation
func IdentityPose() Pose {
	return Pose{Rotation: mgl64.QuatIdent()}
}

// NewPose builds a pose at position facing forward with the given up hint
func NewPose(position, forward, up mgl64.Vec3) Pose {
	return Pose{Position: position, Rotation: LookRotation(forward, up)}
}

// Forward returns the unit local +Z axis in world space
func (p Pose) Forward() mgl64.Vec3 {
	return p.rot().Rotate(AxisForward)
}

// Right returns the unit local +X axis in world space
func (p Pose) Right() mgl64.Vec3 {
	return p.rot().Rotate(AxisRight)
}

// Up returns the unit local +Y axis in world space
func (p Pose) Up() mgl64.Vec3 {
	return p.rot().Rotate(AxisUp)
}

// Compose returns the world pose of offset expressed in p's local frame
// Used to resolve attached-to relations each tick
func (p Pose) Compose(offset Pose) Pose {
	r := p.rot()
	return Pose{
		Position: p.Position.Add(r.Rotate(offset.Position)),
		Rotation: r.Mul(offset.rot()).Normalize(),
	}
}

// IsFinite reports whether position and rotation contain no NaN/Inf
func (p Pose) IsFinite() bool {
	q := p.Rotation
	return IsFinite(p.Position) && IsFinite(q.V) && IsFinite(mgl64.Vec3{q.W, 0, 0})
}

// rot treats the zero quaternion as identity so zero-value Poses are usable
func (p Pose) rot() mgl64.Quat {
	if p.Rotation.W == 0 && p.Rotation.V == (mgl64.Vec3{}) {
		return mgl64.QuatIdent()
	}
	return p.Rotation
}

// LookRotation returns the rotation whose +Z axis points along forward and
// whose +Y axis is as close to up as possible
// Degenerate forward yields identity; up parallel to forward picks another hint
func LookRotation(forward, up mgl64.Vec3) mgl64.Quat {
	f := SafeNormalize(forward, mgl64.Vec3{})
	if f == (mgl64.Vec3{}) {
		return mgl64.QuatIdent()
	}

	u := SafeNormalize(up, AxisUp)
	right := u.Cross(f)
	if right.Len() < Epsilon {
		// up hint parallel to forward
		alt := AxisUp
		if abs(f.Dot(alt)) > 0.99 {
			alt = AxisForward
		}
		right = alt.Cross(f)
	}
	right = right.Normalize()
	u = f.Cross(right)

	m := mgl64.Mat3FromCols(right, u, f)
	return mgl64.Mat4ToQuat(m.Mat4()).Normalize()
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
