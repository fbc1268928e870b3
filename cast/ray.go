package cast

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/spellcast/engine"
	"github.com/lixenwraith/spellcast/event"
	"github.com/lixenwraith/spellcast/vmath"
)

// raySession draws a beam from the live emitter pose to the first hit
// Hold-type rays re-cast every tick; press-type rays cast once and keep the
// beam up for RayPressDuration
type raySession struct {
	sessionBase

	lastHit mgl64.Vec3 // Where the most recent hit effect was spawned
	hasHit  bool
	fired   bool
}

func (o *Orchestrator) beginRay(b sessionBase, pose vmath.Pose) (session, error) {
	d := b.spell
	s := &raySession{sessionBase: b}

	fx, err := o.spawn(d.CastEffect, pose)
	if err != nil {
		return nil, err
	}
	line, err := o.spawn(d.LineEffect, pose)
	if err != nil {
		if fx != nil {
			fx.ForceTeardown()
		}
		return nil, err
	}

	if fx != nil {
		fx.Attach(o.emitter, attached)
		fx.SetSpeedScale(d.ParticleSpeed)
	}
	s.castFX, s.line = fx, line
	return s, nil
}

func (s *raySession) state() State { return CastingRay }

func (s *raySession) step(o *Orchestrator, _ time.Duration) engine.StepStatus {
	d := s.spell
	if s.fired && !d.IsHold() {
		if s.elapsed >= o.cfg.Cast.RayPressDuration {
			return engine.Done
		}
		return engine.Continue
	}

	pose := o.emitter.Pose()
	if !pose.IsFinite() {
		return s.abort(event.EndAborted)
	}
	origin, fwd := pose.Position, pose.Forward()

	end := origin.Add(fwd.Mul(d.MaxRange))
	hit, ok := o.world.Raycast(origin, fwd, d.MaxRange)
	if ok {
		end = hit.Point
	}
	if s.line != nil {
		s.line.SetPose(pose)
		s.line.SetPoints([]mgl64.Vec3{origin, end})
	}

	// Throttle hit effects to meaningful movement of the hit point
	if ok && (!s.hasHit || hit.Point.Sub(s.lastHit).Len() > o.cfg.Cast.HitRefreshDistance) {
		o.spawnHit(&s.sessionBase, hit.Point, hit.Normal, hit.Body)
		s.lastHit = hit.Point
		s.hasHit = true
	}

	if d.IsHold() && s.castFX != nil {
		k := 1.0
		if ramp := o.cfg.Cast.RayRampTime; ramp > 0 {
			k = vmath.Clamp01(s.elapsed.Seconds() / ramp.Seconds())
		}
		s.castFX.SetSpeedScale(vmath.LerpScalar(d.ParticleSpeed, d.MaxParticleSpeed, k))
	}

	s.fired = true
	return engine.Continue
}

func (s *raySession) end(_ *Orchestrator, reason event.EndReason) {
	s.release(reason)
}
