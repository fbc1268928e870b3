// Package arena is a small in-memory world implementing every collaborator
// the casting core consumes: sphere and plane ray queries, sphere overlap,
// bodies with gravity and kinematic flags, and a recording effect spawner.
// It backs the tests and the terminal sandbox; it is not a physics solver.
package arena

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/spellcast/engine"
	"github.com/lixenwraith/spellcast/parameter"
	"github.com/lixenwraith/spellcast/physics"
	"github.com/lixenwraith/spellcast/vmath"
)

// Gravity is the acceleration applied to non-kinematic bodies with gravity on
var Gravity = mgl64.Vec3{0, -9.81, 0}

// Body is a dynamic sphere
type Body struct {
	ID        physics.BodyID
	Name      string
	Position  mgl64.Vec3
	Velocity  mgl64.Vec3
	Radius    float64
	Kinematic bool
	Gravity   bool
}

// Plane is static infinite geometry
type Plane struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3 // Unit
}

// World holds bodies and planes
type World struct {
	bodies map[physics.BodyID]*Body
	planes []Plane
	nextID physics.BodyID
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{bodies: make(map[physics.BodyID]*Body)}
}

// AddBody inserts a sphere and returns its ID
func (w *World) AddBody(name string, position mgl64.Vec3, radius float64, kinematic bool) physics.BodyID {
	w.nextID++
	w.bodies[w.nextID] = &Body{
		ID:        w.nextID,
		Name:      name,
		Position:  position,
		Radius:    radius,
		Kinematic: kinematic,
		Gravity:   !kinematic,
	}
	return w.nextID
}

// AddPlane inserts static geometry through point facing normal
func (w *World) AddPlane(point, normal mgl64.Vec3) {
	w.planes = append(w.planes, Plane{Point: point, Normal: vmath.SafeNormalize(normal, vmath.AxisUp)})
}

// RemoveBody deletes a body; later queries for id fail
func (w *World) RemoveBody(id physics.BodyID) {
	delete(w.bodies, id)
}

// Bodies returns copies of all bodies sorted by ID
func (w *World) Bodies() []Body {
	out := make([]Body, 0, len(w.bodies))
	for _, b := range w.bodies {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Raycast returns the nearest sphere or plane hit within maxDistance
func (w *World) Raycast(origin, dir mgl64.Vec3, maxDistance float64) (physics.Hit, bool) {
	d := vmath.SafeNormalize(dir, mgl64.Vec3{})
	if d == (mgl64.Vec3{}) || maxDistance <= 0 || !vmath.IsFinite(origin) {
		return physics.Hit{}, false
	}

	best := physics.Hit{Distance: math.Inf(1)}
	found := false

	for _, b := range w.bodies {
		t, ok := raySphere(origin, d, b.Position, b.Radius)
		if !ok || t > maxDistance || t >= best.Distance {
			continue
		}
		p := origin.Add(d.Mul(t))
		best = physics.Hit{
			Point:    p,
			Normal:   vmath.SafeNormalize(p.Sub(b.Position), d.Mul(-1)),
			Distance: t,
			Body:     b.ID,
		}
		found = true
	}

	for _, pl := range w.planes {
		denom := pl.Normal.Dot(d)
		if math.Abs(denom) < vmath.Epsilon {
			continue
		}
		t := pl.Point.Sub(origin).Dot(pl.Normal) / denom
		if t < 0 || t > maxDistance || t >= best.Distance {
			continue
		}
		n := pl.Normal
		if denom > 0 {
			n = n.Mul(-1) // Face the ray origin
		}
		best = physics.Hit{Point: origin.Add(d.Mul(t)), Normal: n, Distance: t}
		found = true
	}
	return best, found
}

// raySphere returns the entry distance along unit dir, or the exit when origin is inside
func raySphere(origin, dir, center mgl64.Vec3, radius float64) (float64, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Overlap lists bodies whose sphere intersects the query sphere, sorted by ID
func (w *World) Overlap(center mgl64.Vec3, radius float64) []physics.BodyID {
	var out []physics.BodyID
	for _, b := range w.bodies {
		if b.Position.Sub(center).Len() <= radius+b.Radius {
			out = append(out, b.ID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Body returns a snapshot of id
func (w *World) Body(id physics.BodyID) (physics.BodyState, bool) {
	b, ok := w.bodies[id]
	if !ok {
		return physics.BodyState{}, false
	}
	return physics.BodyState{
		Position:  b.Position,
		Velocity:  b.Velocity,
		Kinematic: b.Kinematic,
		Gravity:   b.Gravity,
	}, true
}

func (w *World) lookup(id physics.BodyID) (*Body, error) {
	b, ok := w.bodies[id]
	if !ok {
		return nil, fmt.Errorf("arena: body %d not found", id)
	}
	return b, nil
}

func (w *World) SetPhysicsState(id physics.BodyID, kinematic, gravity bool) error {
	b, err := w.lookup(id)
	if err != nil {
		return err
	}
	b.Kinematic = kinematic
	b.Gravity = gravity
	if kinematic {
		b.Velocity = mgl64.Vec3{}
	}
	return nil
}

func (w *World) SetVelocity(id physics.BodyID, v mgl64.Vec3) error {
	b, err := w.lookup(id)
	if err != nil {
		return err
	}
	if !vmath.IsFinite(v) {
		return fmt.Errorf("arena: body %d: non-finite velocity", id)
	}
	b.Velocity = v
	return nil
}

func (w *World) MoveBody(id physics.BodyID, position mgl64.Vec3) error {
	b, err := w.lookup(id)
	if err != nil {
		return err
	}
	if !vmath.IsFinite(position) {
		return fmt.Errorf("arena: body %d: non-finite position", id)
	}
	b.Position = position
	return nil
}

func (w *World) Name() string { return "arena" }
func (w *World) Priority() int { return parameter.PriorityArena }

// Update integrates non-kinematic bodies and rests them on planes
func (w *World) Update(tick engine.Tick) {
	dt := tick.Seconds()
	if dt <= 0 {
		return
	}
	for _, b := range w.bodies {
		if b.Kinematic {
			continue
		}
		if b.Gravity {
			b.Velocity = b.Velocity.Add(Gravity.Mul(dt))
		}
		b.Position = b.Position.Add(b.Velocity.Mul(dt))

		for _, pl := range w.planes {
			depth := b.Radius - b.Position.Sub(pl.Point).Dot(pl.Normal)
			if depth <= 0 {
				continue
			}
			b.Position = b.Position.Add(pl.Normal.Mul(depth))
			if vn := b.Velocity.Dot(pl.Normal); vn < 0 {
				b.Velocity = b.Velocity.Sub(pl.Normal.Mul(vn))
			}
		}
	}
}
