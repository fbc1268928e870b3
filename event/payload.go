package event

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/lixenwraith/spellcast/physics"
)

// EndReason tells why a cast session ended
type EndReason int

const (
	EndCompleted EndReason = iota // Traversal or duration finished
	EndStopped                    // Trigger released or stop requested
	EndReplaced                   // A different spell took over
	EndTimeout                    // Press-type session exceeded its timeout
	EndAborted                    // Non-finite pose or spawn failure
	EndLost                       // Captured body stopped resolving
	EndReset                      // Orchestrator reset
)

var reasonNames = [...]string{"completed", "stopped", "replaced", "timeout", "aborted", "lost", "reset"}

func (r EndReason) String() string {
	if int(r) < len(reasonNames) && r >= 0 {
		return reasonNames[r]
	}
	return "unknown"
}

// SpellSelectedPayload names the equipped spell
type SpellSelectedPayload struct {
	SpellID int
	Spell   string
}

// CastStartedPayload describes a new session and its cast cue
type CastStartedPayload struct {
	Session  uuid.UUID
	SpellID  int
	Spell    string
	CastType string
	Hold     bool
	Sound    string
	Volume   float64
	Loop     bool // Sound repeats until the session ends
}

// CastEndedPayload closes a session
type CastEndedPayload struct {
	Session uuid.UUID
	SpellID int
	Spell   string
	Reason  EndReason
}

// SpellHitPayload locates a spawned hit effect
type SpellHitPayload struct {
	Session uuid.UUID
	Spell   string
	Point   mgl64.Vec3
	Normal  mgl64.Vec3
	Body    physics.BodyID
	Sound   string
	Volume  float64
}

// AreaPulsePayload lists overlapping bodies for one tick
type AreaPulsePayload struct {
	Session uuid.UUID
	Center  mgl64.Vec3
	Radius  float64
	Bodies  []physics.BodyID
}

// BodyCapturedPayload reports a levitation grab
type BodyCapturedPayload struct {
	Session  uuid.UUID
	Body     physics.BodyID
	Distance float64
}

// BodyReleasedPayload reports the throw applied on release
type BodyReleasedPayload struct {
	Session  uuid.UUID
	Body     physics.BodyID
	Velocity mgl64.Vec3
	Restored bool // False when the body vanished before release
}
