// Package physics declares the physics collaborators the casting core consumes
// and the velocity tracker used to throw levitated bodies.
// Ray and overlap queries and rigidbody dynamics are owned by the host world;
// this package only fixes their shape.
package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// BodyID is a weak reference to a body owned by the host world
// Zero means "no body"; a non-zero ID may stop resolving at any tick
type BodyID uint64

// NoBody is the zero BodyID
const NoBody BodyID = 0

// Hit is the result of a successful raycast
type Hit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3 // Unit surface normal facing the ray origin
	Distance float64
	Body     BodyID // NoBody for static geometry
}

// BodyState is a snapshot of a dynamic body
type BodyState struct {
	Position  mgl64.Vec3
	Velocity  mgl64.Vec3
	Kinematic bool // Physics does not integrate kinematic bodies
	Gravity   bool
}

// Raycaster answers ray queries against the host world
type Raycaster interface {
	// Raycast returns the nearest hit within maxDistance along dir
	// dir need not be normalized; a zero dir never hits
	Raycast(origin, dir mgl64.Vec3, maxDistance float64) (Hit, bool)
}

// Overlapper enumerates bodies intersecting a sphere
type Overlapper interface {
	Overlap(center mgl64.Vec3, radius float64) []BodyID
}

// BodyController reads and mutates dynamic bodies
// Mutators return an error when the body no longer resolves
type BodyController interface {
	Body(id BodyID) (BodyState, bool)
	SetPhysicsState(id BodyID, kinematic, gravity bool) error
	SetVelocity(id BodyID, v mgl64.Vec3) error
	MoveBody(id BodyID, position mgl64.Vec3) error
}

// World bundles every physics collaborator
type World interface {
	Raycaster
	Overlapper
	BodyController
}
