package arena

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/spellcast/effect"
	"github.com/lixenwraith/spellcast/vmath"
)

// Instance records everything the core did to one spawned effect
type Instance struct {
	Serial        int
	Proto         effect.Prototype
	Pose          vmath.Pose
	Visible       bool
	Emitting      bool
	LifetimeScale float64
	SpeedScale    float64
	Points        []mgl64.Vec3
	Destroyed     int // Destroy calls received
}

func (i *Instance) SetPose(p vmath.Pose) { i.Pose = p }
func (i *Instance) SetVisible(v bool) { i.Visible = v }
func (i *Instance) StopEmission() { i.Emitting = false }
func (i *Instance) SetPoints(p []mgl64.Vec3) { i.Points = append(i.Points[:0], p...) }

func (i *Instance) SetScales(lifetime, speed float64) {
	i.LifetimeScale = lifetime
	i.SpeedScale = speed
}

// Spawner is an effect.Spawner that keeps every instance it ever created
type Spawner struct {
	all  []*Instance
	fail map[effect.Prototype]bool
}

func NewSpawner() *Spawner {
	return &Spawner{fail: make(map[effect.Prototype]bool)}
}

// FailOn makes Spawn return an error for proto
func (s *Spawner) FailOn(proto effect.Prototype) {
	s.fail[proto] = true
}

func (s *Spawner) Spawn(proto effect.Prototype, pose vmath.Pose) (effect.Instance, error) {
	if s.fail[proto] {
		return nil, fmt.Errorf("arena: prototype %q unavailable", proto)
	}
	inst := &Instance{
		Serial:        len(s.all) + 1,
		Proto:         proto,
		Pose:          pose,
		Visible:       true,
		Emitting:      true,
		LifetimeScale: 1,
		SpeedScale:    1,
	}
	s.all = append(s.all, inst)
	return inst, nil
}

func (s *Spawner) Destroy(inst effect.Instance) {
	if i, ok := inst.(*Instance); ok {
		i.Destroyed++
	}
}

// Spawned returns how many instances of proto were ever created
func (s *Spawner) Spawned(proto effect.Prototype) int {
	n := 0
	for _, i := range s.all {
		if i.Proto == proto {
			n++
		}
	}
	return n
}

// Live returns instances of proto not yet destroyed; empty proto matches all
func (s *Spawner) Live(proto effect.Prototype) []*Instance {
	var out []*Instance
	for _, i := range s.all {
		if i.Destroyed == 0 && (proto == "" || i.Proto == proto) {
			out = append(out, i)
		}
	}
	return out
}

// All returns every instance in spawn order
func (s *Spawner) All() []*Instance {
	out := make([]*Instance, len(s.all))
	copy(out, s.all)
	return out
}

// Prototypes lists distinct prototypes spawned so far
func (s *Spawner) Prototypes() []effect.Prototype {
	seen := make(map[effect.Prototype]bool)
	var out []effect.Prototype
	for _, i := range s.all {
		if !seen[i.Proto] {
			seen[i.Proto] = true
			out = append(out, i.Proto)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

// Emitter is a settable wand tip pose
type Emitter struct {
	pose vmath.Pose
}

// NewEmitter places the emitter at position facing forward
func NewEmitter(position, forward mgl64.Vec3) *Emitter {
	return &Emitter{pose: vmath.NewPose(position, forward, vmath.AxisUp)}
}

func (e *Emitter) Pose() vmath.Pose { return e.pose }

func (e *Emitter) SetPose(p vmath.Pose) { e.pose = p }

// Move translates the emitter keeping its orientation
func (e *Emitter) Move(delta mgl64.Vec3) {
	e.pose.Position = e.pose.Position.Add(delta)
}

// Aim turns the emitter to face forward
func (e *Emitter) Aim(forward mgl64.Vec3) {
	e.pose.Rotation = vmath.LookRotation(forward, vmath.AxisUp)
}
