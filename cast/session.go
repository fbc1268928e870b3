package cast

import (
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/spellcast/effect"
	"github.com/lixenwraith/spellcast/engine"
	"github.com/lixenwraith/spellcast/event"
	"github.com/lixenwraith/spellcast/spell"
	"github.com/lixenwraith/spellcast/vmath"
)

// session is one running cast
type session interface {
	info() *sessionBase
	state() State

	// step advances one tick; on Done the session sets reason
	step(o *Orchestrator, dt time.Duration) engine.StepStatus

	// refresh handles a re-entrant hold-type cast of the same spell
	refresh(o *Orchestrator)

	// end releases every resource the session owns; called exactly once
	end(o *Orchestrator, reason event.EndReason)
}

// sessionBase is the state every cast type shares
type sessionBase struct {
	id       uuid.UUID
	spell    *spell.Descriptor
	elapsed  time.Duration
	deadline time.Duration // Cancels once elapsed exceeds it; zero disables

	castFX *effect.Handle
	line   *effect.Handle

	reason event.EndReason
}

func (b *sessionBase) info() *sessionBase { return b }

func (b *sessionBase) refresh(*Orchestrator) {}

// release tears down owned effects; reset skips the fade
func (b *sessionBase) release(reason event.EndReason) {
	for _, h := range []*effect.Handle{b.castFX, b.line} {
		if h == nil {
			continue
		}
		if reason == event.EndReset {
			h.ForceTeardown()
		} else {
			h.Teardown(b.spell.FadeOut)
		}
	}
}

// abort marks the session for a non-completing end
func (b *sessionBase) abort(reason event.EndReason) engine.StepStatus {
	b.reason = reason
	return engine.Done
}

// attached is the local offset used for effects parented to the emitter
var attached = vmath.IdentityPose()
