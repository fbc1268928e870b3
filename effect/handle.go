package effect

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/lixenwraith/spellcast/engine"
	"github.com/lixenwraith/spellcast/parameter"
	"github.com/lixenwraith/spellcast/vmath"
)

type handleState int

const (
	stateLive handleState = iota
	stateFading
	stateDestroyed
)

// Handle owns exactly one Instance until it is destroyed
type Handle struct {
	id      uuid.UUID
	proto   Prototype
	inst    Instance
	spawner Spawner

	parent PoseSource // Attached-to relation, resolved every Step
	offset vmath.Pose // Local to parent
	pose   vmath.Pose // Last applied world pose

	speedScale float64 // Base particle speed before fade

	state       handleState
	fadeTotal   time.Duration
	fadeElapsed time.Duration
}

func newHandle(proto Prototype, inst Instance, spawner Spawner, pose vmath.Pose) *Handle {
	return &Handle{
		id:         uuid.New(),
		proto:      proto,
		inst:       inst,
		spawner:    spawner,
		pose:       pose,
		speedScale: 1,
	}
}

func (h *Handle) ID() uuid.UUID { return h.id }
func (h *Handle) Prototype() Prototype { return h.proto }

// Instance returns the owned instance, nil once destroyed
func (h *Handle) Instance() Instance {
	if h.state == stateDestroyed {
		return nil
	}
	return h.inst
}

// Alive reports whether the instance still exists (live or fading)
func (h *Handle) Alive() bool { return h.state != stateDestroyed }

// Fading reports whether a teardown fade is in progress
func (h *Handle) Fading() bool { return h.state == stateFading }

// Pose returns the last applied world pose
func (h *Handle) Pose() vmath.Pose { return h.pose }

// Attach follows parent at a local offset from the next Step on
func (h *Handle) Attach(parent PoseSource, offset vmath.Pose) {
	if h.state == stateDestroyed {
		return
	}
	h.parent = parent
	h.offset = offset
	h.follow()
}

// Detach freezes the handle at its current pose
func (h *Handle) Detach() {
	h.parent = nil
}

// Attached reports whether a parent is set
func (h *Handle) Attached() bool { return h.parent != nil }

// SetPose moves the instance; ignored on non-finite poses and after destroy
func (h *Handle) SetPose(p vmath.Pose) {
	if h.state == stateDestroyed || !p.IsFinite() {
		return
	}
	h.pose = p
	h.inst.SetPose(p)
}

// SetPoints updates a line instance; ignored for non-line instances
func (h *Handle) SetPoints(points []mgl64.Vec3) {
	if h.state == stateDestroyed {
		return
	}
	for _, p := range points {
		if !vmath.IsFinite(p) {
			return
		}
	}
	if line, ok := h.inst.(LineInstance); ok {
		line.SetPoints(points)
	}
}

// SetVisible shows or hides the instance
func (h *Handle) SetVisible(visible bool) {
	if h.state == stateDestroyed {
		return
	}
	h.inst.SetVisible(visible)
}

// SetSpeedScale sets the base particle speed multiplier; a running fade scales from it
func (h *Handle) SetSpeedScale(s float64) {
	if h.state == stateDestroyed {
		return
	}
	h.speedScale = s
	if h.state == stateLive {
		h.inst.SetScales(1, s)
	}
}

// Teardown stops emission and starts a linear fade of lifetime and speed
// toward parameter.FadeFloor over fade; the instance is destroyed when the
// fade completes. fade <= 0 destroys immediately
// Calling Teardown on a fading or destroyed handle does nothing
func (h *Handle) Teardown(fade time.Duration) {
	if h.state != stateLive {
		return
	}
	h.inst.StopEmission()
	if fade <= 0 {
		h.destroy()
		return
	}
	h.state = stateFading
	h.fadeTotal = fade
	h.fadeElapsed = 0
}

// ForceTeardown destroys the instance now, skipping or cutting short any fade
func (h *Handle) ForceTeardown() {
	if h.state == stateDestroyed {
		return
	}
	h.destroy()
}

// Step resolves the attachment and advances the fade
// Returns Done once the instance has been destroyed
func (h *Handle) Step(dt time.Duration) engine.StepStatus {
	if h.state == stateDestroyed {
		return engine.Done
	}
	h.follow()

	if h.state == stateFading {
		h.fadeElapsed += dt
		k := vmath.Clamp01(float64(h.fadeElapsed) / float64(h.fadeTotal))
		scale := vmath.LerpScalar(1, parameter.FadeFloor, k)
		h.inst.SetScales(scale, scale*h.speedScale)
		if h.fadeElapsed >= h.fadeTotal {
			h.destroy()
			return engine.Done
		}
	}
	return engine.Continue
}

func (h *Handle) follow() {
	if h.parent == nil {
		return
	}
	h.SetPose(h.parent.Pose().Compose(h.offset))
}

func (h *Handle) destroy() {
	h.state = stateDestroyed
	h.parent = nil
	if h.spawner != nil {
		h.spawner.Destroy(h.inst)
	}
}
