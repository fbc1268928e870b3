package trigger

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/spellcast/config"
	"github.com/lixenwraith/spellcast/effect"
	"github.com/lixenwraith/spellcast/engine"
	"github.com/lixenwraith/spellcast/parameter"
	"github.com/lixenwraith/spellcast/physics"
	"github.com/lixenwraith/spellcast/status"
	"github.com/lixenwraith/spellcast/vmath"
)

// Reticle raycasts along the emitter each tick, places an aim marker on the
// surface it finds and reports the aimed body to the arbiter
type Reticle struct {
	world   physics.Raycaster
	effects *effect.Manager
	emitter effect.PoseSource
	arbiter *Arbiter

	proto    effect.Prototype
	distance float64
	marker   *effect.Handle
	disabled bool // Marker spawn failed; aim reporting continues

	aimStat *atomic.Int64
}

// NewReticle creates the aim system; reg may be nil
func NewReticle(world physics.Raycaster, effects *effect.Manager, emitter effect.PoseSource, arbiter *Arbiter, cfg config.Aim, reg *status.Registry) *Reticle {
	r := &Reticle{
		world:    world,
		effects:  effects,
		emitter:  emitter,
		arbiter:  arbiter,
		proto:    effect.Prototype(cfg.Reticle),
		distance: cfg.Distance,
	}
	if r.distance <= 0 {
		r.distance = parameter.AimDistance
	}
	if reg != nil {
		r.aimStat = reg.Ints.Get(status.AimBody)
	}
	return r
}

func (r *Reticle) Name() string { return "reticle" }

func (r *Reticle) Priority() int { return parameter.PriorityReticle }

// Update runs the aim raycast
func (r *Reticle) Update(engine.Tick) {
	pose := r.emitter.Pose()
	if !pose.IsFinite() {
		r.report(physics.NoBody)
		r.hide()
		return
	}

	hit, ok := r.world.Raycast(pose.Position, pose.Forward(), r.distance)
	if !ok {
		r.report(physics.NoBody)
		r.hide()
		return
	}
	r.report(hit.Body)
	r.show(vmath.Pose{
		Position: hit.Point,
		Rotation: vmath.LookRotation(hit.Normal.Mul(-1), vmath.AxisUp),
	})
}

// Marker returns the reticle effect handle, nil before the first hit
func (r *Reticle) Marker() *effect.Handle {
	return r.marker
}

// Close destroys the marker
func (r *Reticle) Close() {
	if r.marker != nil {
		r.marker.ForceTeardown()
		r.marker = nil
	}
}

func (r *Reticle) show(pose vmath.Pose) {
	if r.proto == "" || r.disabled || r.effects == nil {
		return
	}
	if r.marker == nil || !r.marker.Alive() {
		h, err := r.effects.Spawn(r.proto, pose)
		if err != nil {
			log.Printf("[reticle] %v", err)
			r.disabled = true
			return
		}
		r.marker = h
	}
	r.marker.SetPose(pose)
	r.marker.SetVisible(true)
}

func (r *Reticle) hide() {
	if r.marker != nil {
		r.marker.SetVisible(false)
	}
}

func (r *Reticle) report(id physics.BodyID) {
	if r.arbiter != nil {
		r.arbiter.Aim(id)
	}
	if r.aimStat != nil {
		r.aimStat.Store(int64(id))
	}
}
