// Package trigger translates raw wand input into orchestrator calls.
// The Arbiter buffers press, held and release signals between ticks and
// applies them in that order during its update, so input handling always
// precedes the cast state update of the same tick.
package trigger

import (
	"log"

	"github.com/google/uuid"

	"github.com/lixenwraith/spellcast/engine"
	"github.com/lixenwraith/spellcast/event"
	"github.com/lixenwraith/spellcast/parameter"
	"github.com/lixenwraith/spellcast/physics"
	"github.com/lixenwraith/spellcast/spell"
)

// Caster is the orchestrator surface the arbiter drives
type Caster interface {
	Select(d *spell.Descriptor)
	Cast(d *spell.Descriptor) (uuid.UUID, bool)
	Stop()
	Active() bool
	ActiveSpell() *spell.Descriptor
	SetTarget(id physics.BodyID)
}

// State is the per-actor trigger state; mutated only by the Arbiter
type State struct {
	TriggerHeld    bool
	Aimed          physics.BodyID // Body under the reticle this tick
	Selected       *spell.Descriptor
	SelectedTarget physics.BodyID // Forwarded to the caster as the preferred capture
	CastInFlight   bool // Press-type re-entrancy guard
}

// Arbiter owns the trigger state of one actor
type Arbiter struct {
	caster Caster
	state  State

	// Buffered input, applied on Update
	pressed  bool
	held     bool
	released bool

	inFlight uuid.UUID // Session guarded by CastInFlight
	blocked  int       // Presses swallowed by the guard
}

// NewArbiter creates an arbiter driving caster
func NewArbiter(caster Caster) *Arbiter {
	return &Arbiter{caster: caster}
}

func (a *Arbiter) Name() string { return "trigger" }

func (a *Arbiter) Priority() int { return parameter.PriorityTrigger }

// EventTypes subscribes to session ends to clear the in-flight guard
func (a *Arbiter) EventTypes() []event.EventType {
	return []event.EventType{event.EventCastEnded}
}

// HandleEvent clears the guard when the guarded session ends
func (a *Arbiter) HandleEvent(ev event.Event) {
	p, ok := ev.Payload.(*event.CastEndedPayload)
	if !ok || !a.state.CastInFlight {
		return
	}
	if p.Session == a.inFlight {
		a.clearGuard()
	}
}

// Select equips d on the caster
func (a *Arbiter) Select(d *spell.Descriptor) {
	if d == nil {
		return
	}
	a.state.Selected = d
	a.caster.Select(d)
}

// Pressed records a trigger press
func (a *Arbiter) Pressed() {
	a.pressed = true
	a.state.TriggerHeld = true
}

// Held records that the trigger is still down; input layers call it every tick
func (a *Arbiter) Held() {
	a.held = true
}

// Released records a trigger release
func (a *Arbiter) Released() {
	a.released = true
	a.state.TriggerHeld = false
}

// Aim records the body currently aimed at; physics.NoBody clears it
func (a *Arbiter) Aim(id physics.BodyID) {
	a.state.Aimed = id
}

// SelectTarget records an explicitly selected target body and hands it to
// the caster; physics.NoBody clears it
func (a *Arbiter) SelectTarget(id physics.BodyID) {
	a.state.SelectedTarget = id
	a.caster.SetTarget(id)
}

// Stop ends any running cast and drops buffered input
func (a *Arbiter) Stop() {
	a.pressed, a.held, a.released = false, false, false
	a.state.TriggerHeld = false
	a.caster.Stop()
	a.clearGuard()
}

// State returns a snapshot of the trigger state
func (a *Arbiter) State() State {
	return a.state
}

// Blocked returns how many presses the in-flight guard swallowed
func (a *Arbiter) Blocked() int {
	return a.blocked
}

// Update applies buffered input: press, then held, then release
// Release ends the running session when it is hold-type, whatever is
// selected by then
func (a *Arbiter) Update(engine.Tick) {
	pressed, held, released := a.pressed, a.held, a.released
	a.pressed, a.held, a.released = false, false, false

	// Guarded session gone without a routed end event
	if a.state.CastInFlight && !a.caster.Active() {
		a.clearGuard()
	}

	if d := a.state.Selected; d != nil {
		if pressed {
			a.press(d)
		}
		if held && !released && d.IsHold() {
			a.caster.Cast(d)
		}
	}
	if released {
		if running := a.caster.ActiveSpell(); running != nil && running.IsHold() {
			a.caster.Stop()
		}
	}
}

func (a *Arbiter) press(d *spell.Descriptor) {
	if d.IsHold() {
		a.caster.Cast(d)
		return
	}
	if a.state.CastInFlight {
		a.blocked++
		return
	}
	id, ok := a.caster.Cast(d)
	if !ok {
		log.Printf("[trigger] %s: cast not started", d.Name)
		return
	}
	a.inFlight = id
	a.state.CastInFlight = true
}

func (a *Arbiter) clearGuard() {
	a.inFlight = uuid.Nil
	a.state.CastInFlight = false
}
