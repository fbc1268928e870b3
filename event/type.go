// Package event carries cast lifecycle notifications from the orchestrator to
// the trigger arbiter, audio cues and the sandbox HUD.
// Producers push onto a Queue from any goroutine; a Router drains it once per
// tick on the loop goroutine before systems update.
package event

// EventType identifies a lifecycle event
type EventType int

const (
	// EventSpellSelected reports a new equipped spell
	// Trigger: Orchestrator.Select
	// Consumer: audio, HUD | Payload: *SpellSelectedPayload
	EventSpellSelected EventType = iota + 1

	// EventCastStarted reports a new cast session
	// Trigger: Orchestrator.Cast when a session begins
	// Consumer: audio, HUD | Payload: *CastStartedPayload
	EventCastStarted

	// EventCastEnded reports a session leaving the orchestrator
	// Trigger: completion, stop, replacement, timeout, abort, reset
	// Consumer: trigger.Arbiter (in-flight guard), audio | Payload: *CastEndedPayload
	EventCastEnded

	// EventSpellHit reports a spawned hit effect
	// Trigger: projectile impact or terminal point, ray hit refresh
	// Consumer: audio, HUD | Payload: *SpellHitPayload
	EventSpellHit

	// EventAreaPulse lists bodies inside an area spell's radius for one tick
	// Trigger: area session step
	// Consumer: gameplay collaborators | Payload: *AreaPulsePayload
	EventAreaPulse

	// EventBodyCaptured reports a levitation grab
	// Trigger: levitate session start
	// Consumer: HUD | Payload: *BodyCapturedPayload
	EventBodyCaptured

	// EventBodyReleased reports physics handed back to the world
	// Trigger: levitate session end
	// Consumer: audio, HUD | Payload: *BodyReleasedPayload
	EventBodyReleased
)

var typeNames = map[EventType]string{
	EventSpellSelected: "SpellSelected",
	EventCastStarted:   "CastStarted",
	EventCastEnded:     "CastEnded",
	EventSpellHit:      "SpellHit",
	EventAreaPulse:     "AreaPulse",
	EventBodyCaptured:  "BodyCaptured",
	EventBodyReleased:  "BodyReleased",
}

func (t EventType) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "Unknown"
}

// Event is a queued notification
type Event struct {
	Type    EventType
	Payload any
	Frame   int64 // Tick that produced the event
}
