// Package cast is the per-actor cast state machine. An Orchestrator owns at
// most one session at a time, steps it once per tick, and tears it down
// synchronously when it completes, is stopped, or is replaced by another
// spell. Sessions are resumable step functions; nothing here blocks.
package cast

import (
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/lixenwraith/spellcast/config"
	"github.com/lixenwraith/spellcast/effect"
	"github.com/lixenwraith/spellcast/engine"
	"github.com/lixenwraith/spellcast/event"
	"github.com/lixenwraith/spellcast/parameter"
	"github.com/lixenwraith/spellcast/physics"
	"github.com/lixenwraith/spellcast/spell"
	"github.com/lixenwraith/spellcast/status"
	"github.com/lixenwraith/spellcast/vmath"
)

// ErrMissingCollaborator is returned by NewOrchestrator when a required dependency is nil
var ErrMissingCollaborator = errors.New("cast: missing collaborator")

var errNonFinite = errors.New("non-finite emitter pose")

// State is the orchestrator's externally visible mode
type State int

const (
	Idle State = iota
	CastingProjectile
	CastingRay
	CastingArea
	CastingUtility
)

var stateNames = [...]string{"Idle", "CastingProjectile", "CastingRay", "CastingArea", "CastingUtility"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Emitter is the wand tip, sampled every tick
type Emitter interface {
	Pose() vmath.Pose
}

// Deps are the orchestrator's collaborators
// Events, Status and Rand are optional
type Deps struct {
	World   physics.World
	Effects *effect.Manager
	Emitter Emitter
	Events  *event.Queue
	Status  *status.Registry
	Rand    *vmath.FastRand
}

type counters struct {
	started, refreshed, ignored  *atomic.Int64
	completed, aborted           *atomic.Int64
	hits, pulses                 *atomic.Int64
	captures, releases, selected *atomic.Int64
	releaseSpeed, peakRelease    *status.AtomicFloat
	state                        *status.AtomicString
}

// Orchestrator arbitrates cast sessions for one actor
type Orchestrator struct {
	world   physics.World
	effects *effect.Manager
	emitter Emitter
	events  *event.Queue
	rng     *vmath.FastRand
	cfg     config.Config

	selected  *spell.Descriptor
	equip     *equipSequence
	equipFX   *effect.Handle // Tip effect left by the last equip sequence
	equipFade time.Duration

	active session
	target physics.BodyID // Preferred levitation capture
	frame  int64
	stats  counters
}

// NewOrchestrator wires collaborators; World, Effects and Emitter are required
func NewOrchestrator(deps Deps, cfg config.Config) (*Orchestrator, error) {
	switch {
	case deps.World == nil:
		return nil, fmt.Errorf("%w: world", ErrMissingCollaborator)
	case deps.Effects == nil:
		return nil, fmt.Errorf("%w: effects", ErrMissingCollaborator)
	case deps.Emitter == nil:
		return nil, fmt.Errorf("%w: emitter", ErrMissingCollaborator)
	}

	reg := deps.Status
	if reg == nil {
		reg = status.NewRegistry()
	}
	rng := deps.Rand
	if rng == nil {
		seed := cfg.Cast.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		rng = vmath.NewFastRand(seed)
	}

	o := &Orchestrator{
		world:   deps.World,
		effects: deps.Effects,
		emitter: deps.Emitter,
		events:  deps.Events,
		rng:     rng,
		cfg:     cfg,
		stats: counters{
			started:      reg.Ints.Get(status.CastStarted),
			refreshed:    reg.Ints.Get(status.CastRefreshed),
			ignored:      reg.Ints.Get(status.CastIgnored),
			completed:    reg.Ints.Get(status.CastCompleted),
			aborted:      reg.Ints.Get(status.CastAborted),
			hits:         reg.Ints.Get(status.HitsSpawned),
			pulses:       reg.Ints.Get(status.AreaPulses),
			captures:     reg.Ints.Get(status.BodyCaptures),
			releases:     reg.Ints.Get(status.BodyReleases),
			selected:     reg.Ints.Get(status.SpellSelected),
			releaseSpeed: reg.Floats.Get(status.ReleaseSpeed),
			peakRelease:  reg.Floats.Get(status.PeakRelease),
			state:        reg.Strings.Get(status.CastState),
		},
	}
	o.stats.state.Store(Idle.String())
	return o, nil
}

func (o *Orchestrator) Name() string { return "cast" }

func (o *Orchestrator) Priority() int { return parameter.PriorityCast }

// State returns the current mode
func (o *Orchestrator) State() State {
	if o.active == nil {
		return Idle
	}
	return o.active.state()
}

// Active reports whether a session is running
func (o *Orchestrator) Active() bool {
	return o.active != nil
}

// ActiveSpell returns the spell of the running session, nil when idle
func (o *Orchestrator) ActiveSpell() *spell.Descriptor {
	if o.active == nil {
		return nil
	}
	return o.active.info().spell
}

// Selected returns the equipped spell
func (o *Orchestrator) Selected() *spell.Descriptor {
	return o.selected
}

// SetTarget records a body levitation captures in preference to the aimed one
// physics.NoBody falls back to aiming
func (o *Orchestrator) SetTarget(id physics.BodyID) {
	o.target = id
}

// Target returns the preferred levitation body
func (o *Orchestrator) Target() physics.BodyID {
	return o.target
}

// Select equips d: the previous equip effect fades and the helix equip
// sequence starts for d. A running cast is not interrupted
func (o *Orchestrator) Select(d *spell.Descriptor) {
	if d == nil {
		return
	}
	o.clearEquip(false)
	o.selected = d
	o.equip = newEquipSequence(o, d)
	o.stats.selected.Add(1)
	o.publish(event.EventSpellSelected, &event.SpellSelectedPayload{SpellID: int(d.ID), Spell: d.Name})
}

// Cast starts a session for d, or refreshes the running one
// Same hold-type spell: refresh, returns the running session ID
// Same press-type spell: ignored while in flight, returns false
// Different spell: the running session is torn down first
// A levitate cast with nothing eligible to capture is a no-op returning false
func (o *Orchestrator) Cast(d *spell.Descriptor) (uuid.UUID, bool) {
	if d == nil {
		return uuid.Nil, false
	}

	if cur := o.active; cur != nil {
		b := cur.info()
		if b.spell == d {
			if d.IsHold() {
				cur.refresh(o)
				o.stats.refreshed.Add(1)
				return b.id, true
			}
			o.stats.ignored.Add(1)
			return uuid.Nil, false
		}
		o.finish(event.EndReplaced)
	}

	s, err := o.begin(d)
	if err != nil {
		log.Printf("[cast] %s: %v", d.Name, err)
		o.stats.aborted.Add(1)
		return uuid.Nil, false
	}
	if s == nil {
		return uuid.Nil, false
	}

	o.active = s
	b := s.info()
	o.stats.started.Add(1)
	o.stats.state.Store(s.state().String())
	o.publish(event.EventCastStarted, &event.CastStartedPayload{
		Session:  b.id,
		SpellID:  int(d.ID),
		Spell:    d.Name,
		CastType: d.CastType.String(),
		Hold:     d.IsHold(),
		Sound:    d.CastSound,
		Volume:   d.CastVolume,
		Loop:     d.LoopCast,
	})
	return b.id, true
}

// Stop ends the running session as a trigger release: fades effects and,
// for levitation, throws the body
func (o *Orchestrator) Stop() {
	if o.active == nil {
		return
	}
	o.finish(event.EndStopped)
}

// Reset destroys everything immediately, fading effects included
func (o *Orchestrator) Reset() {
	if o.active != nil {
		o.finish(event.EndReset)
	}
	o.clearEquip(true)
	o.effects.ForceAll()
}

// Update steps the equip sequence and the running session
func (o *Orchestrator) Update(tick engine.Tick) {
	o.frame = tick.Frame
	dt := tick.Delta

	if o.equip != nil && o.equip.step(o, dt) == engine.Done {
		o.equip = nil
	}

	if s := o.active; s != nil {
		b := s.info()
		b.elapsed += dt
		if b.deadline > 0 && b.elapsed > b.deadline {
			o.finish(event.EndTimeout)
		} else if s.step(o, dt) == engine.Done {
			o.finish(b.reason)
		}
	}
	o.stats.state.Store(o.State().String())
}

func (o *Orchestrator) begin(d *spell.Descriptor) (session, error) {
	pose := o.emitter.Pose()
	if !pose.IsFinite() {
		return nil, errNonFinite
	}

	b := sessionBase{
		id:     uuid.New(),
		spell:  d,
		reason: event.EndCompleted,
	}

	switch d.CastType {
	case spell.Projectile:
		b.deadline = o.cfg.Cast.PressTimeout
		return o.beginProjectile(b, pose)
	case spell.Ray:
		if !d.IsHold() {
			b.deadline = o.cfg.Cast.PressTimeout
		}
		return o.beginRay(b, pose)
	case spell.Area:
		return o.beginArea(b, pose)
	case spell.Utility:
		switch d.Utility {
		case spell.UtilityLight:
			return o.beginLight(b, pose)
		case spell.UtilityLevitate:
			if !d.IsHold() {
				b.deadline = o.cfg.Cast.PressTimeout
			}
			return o.beginLevitate(b, pose)
		}
		return nil, fmt.Errorf("%w: %s", spell.ErrUnknownUtility, d.Utility)
	}
	return nil, fmt.Errorf("%w: %s", spell.ErrUnknownCastType, d.CastType)
}

// finish detaches the running session, tears it down and reports it
func (o *Orchestrator) finish(reason event.EndReason) {
	s := o.active
	if s == nil {
		return
	}
	o.active = nil
	b := s.info()
	s.end(o, reason)

	switch reason {
	case event.EndAborted, event.EndLost:
		o.stats.aborted.Add(1)
	default:
		o.stats.completed.Add(1)
	}
	o.stats.state.Store(Idle.String())
	o.publish(event.EventCastEnded, &event.CastEndedPayload{
		Session: b.id,
		SpellID: int(b.spell.ID),
		Spell:   b.spell.Name,
		Reason:  reason,
	})
}

func (o *Orchestrator) clearEquip(force bool) {
	if o.equip != nil {
		o.equip.teardown(force)
		o.equip = nil
	}
	if o.equipFX != nil {
		if force {
			o.equipFX.ForceTeardown()
		} else {
			o.equipFX.Teardown(o.equipFade)
		}
		o.equipFX = nil
	}
}

// spawn creates an effect; an empty prototype yields a nil handle and no error
func (o *Orchestrator) spawn(proto effect.Prototype, pose vmath.Pose) (*effect.Handle, error) {
	if proto == "" {
		return nil, nil
	}
	return o.effects.Spawn(proto, pose)
}

// spawnHit places a self-expiring hit effect facing away from the surface
func (o *Orchestrator) spawnHit(b *sessionBase, point, normal mgl64.Vec3, body physics.BodyID) {
	d := b.spell
	if !vmath.IsFinite(point) {
		return
	}
	pose := vmath.Pose{Position: point, Rotation: vmath.LookRotation(normal.Mul(-1), vmath.AxisUp)}
	h, err := o.spawn(d.HitEffect, pose)
	if err != nil {
		log.Printf("[cast] %s: hit effect: %v", d.Name, err)
	} else if h != nil {
		o.effects.Schedule(h, o.cfg.Cast.HitEffectLifetime, d.FadeOut)
	}

	o.stats.hits.Add(1)
	o.publish(event.EventSpellHit, &event.SpellHitPayload{
		Session: b.id,
		Spell:   d.Name,
		Point:   point,
		Normal:  normal,
		Body:    body,
		Sound:   d.HitSound,
		Volume:  d.HitVolume,
	})
}

func (o *Orchestrator) publish(t event.EventType, payload any) {
	if o.events != nil {
		o.events.Publish(t, payload, o.frame)
	}
}
