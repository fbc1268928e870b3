// Package effect owns spawned visual side effects: their attachment to a
// moving parent, the stop-emission-then-fade teardown, and the scheduled
// teardown of effects that outlive the cast that spawned them.
// Instantiation itself is delegated to a Spawner supplied by the host.
package effect

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/spellcast/vmath"
)

// Prototype names an authored effect asset; empty means "none"
type Prototype string

// Instance is a live effect object owned by the host renderer
type Instance interface {
	SetPose(p vmath.Pose)
	SetVisible(visible bool)
	// StopEmission halts new particles; existing particles play out
	StopEmission()
	// SetScales multiplies particle start lifetime and speed
	SetScales(lifetime, speed float64)
}

// LineInstance is an Instance drawn through a polyline (beam, levitation curve)
type LineInstance interface {
	Instance
	SetPoints(points []mgl64.Vec3)
}

// Spawner creates and destroys instances
type Spawner interface {
	Spawn(proto Prototype, pose vmath.Pose) (Instance, error)
	Destroy(inst Instance)
}

// PoseSource is anything an effect can be attached to
type PoseSource interface {
	Pose() vmath.Pose
}

var (
	// ErrNoPrototype is returned when spawning an empty Prototype
	ErrNoPrototype = errors.New("effect: no prototype")

	// ErrNoSpawner is returned by a Manager without a Spawner
	ErrNoSpawner = errors.New("effect: no spawner")
)
