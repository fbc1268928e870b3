package cast

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/spellcast/engine"
	"github.com/lixenwraith/spellcast/event"
	"github.com/lixenwraith/spellcast/vmath"
)

// areaSession enumerates bodies around the cast origin every tick
// Press-type runs for the spell's duration; hold-type until release
type areaSession struct {
	sessionBase

	center   mgl64.Vec3
	radius   float64
	duration time.Duration
}

func (o *Orchestrator) beginArea(b sessionBase, pose vmath.Pose) (session, error) {
	d := b.spell
	s := &areaSession{
		sessionBase: b,
		center:      pose.Position,
		radius:      o.cfg.Cast.AreaRadius,
		duration:    d.Duration,
	}
	if s.duration <= 0 {
		s.duration = o.cfg.Cast.AreaDuration
	}

	fx, err := o.spawn(d.CastEffect, pose)
	if err != nil {
		return nil, err
	}
	s.castFX = fx
	return s, nil
}

func (s *areaSession) state() State { return CastingArea }

func (s *areaSession) step(o *Orchestrator, _ time.Duration) engine.StepStatus {
	bodies := o.world.Overlap(s.center, s.radius)
	o.stats.pulses.Add(1)
	o.publish(event.EventAreaPulse, &event.AreaPulsePayload{
		Session: s.id,
		Center:  s.center,
		Radius:  s.radius,
		Bodies:  bodies,
	})

	if !s.spell.IsHold() && s.elapsed >= s.duration {
		return engine.Done
	}
	return engine.Continue
}

func (s *areaSession) end(_ *Orchestrator, reason event.EndReason) {
	s.release(reason)
}
