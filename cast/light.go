package cast

import (
	"time"

	"github.com/lixenwraith/spellcast/engine"
	"github.com/lixenwraith/spellcast/event"
	"github.com/lixenwraith/spellcast/vmath"
)

// lightSession keeps one effect attached to the emitter
// Spawned once; re-entrant hold casts never spawn again
type lightSession struct {
	sessionBase
	duration time.Duration
}

func (o *Orchestrator) beginLight(b sessionBase, pose vmath.Pose) (session, error) {
	d := b.spell
	s := &lightSession{sessionBase: b, duration: d.Duration}
	if s.duration <= 0 {
		s.duration = o.cfg.Cast.LightDuration
	}

	fx, err := o.spawn(d.CastEffect, pose)
	if err != nil {
		return nil, err
	}
	if fx != nil {
		fx.Attach(o.emitter, attached)
	}
	s.castFX = fx
	return s, nil
}

func (s *lightSession) state() State { return CastingUtility }

func (s *lightSession) step(_ *Orchestrator, _ time.Duration) engine.StepStatus {
	if !s.spell.IsHold() && s.elapsed >= s.duration {
		return engine.Done
	}
	return engine.Continue
}

func (s *lightSession) end(_ *Orchestrator, reason event.EndReason) {
	s.release(reason)
}
