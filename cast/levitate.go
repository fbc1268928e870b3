package cast

import (
	"log"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/spellcast/effect"
	"github.com/lixenwraith/spellcast/engine"
	"github.com/lixenwraith/spellcast/event"
	"github.com/lixenwraith/spellcast/physics"
	"github.com/lixenwraith/spellcast/vmath"
)

// levitateSession holds a captured body at a fixed distance along the
// emitter's aim and throws it on release with the tracked hand velocity
// The session exclusively owns the body's physics flags until end
type levitateSession struct {
	sessionBase

	body     physics.BodyID
	distance float64 // Emitter to body center at capture
	tracker  *physics.VelocityTracker
	wobble   float64 // Seconds since capture, drives line noise
}

// beginLevitate returns (nil, nil) when nothing eligible can be captured
func (o *Orchestrator) beginLevitate(b sessionBase, pose vmath.Pose) (session, error) {
	d := b.spell
	origin := pose.Position

	body, st, ok := o.captureCandidate(origin, pose.Forward(), d.MaxRange)
	if !ok {
		return nil, nil
	}

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

	if err := o.world.SetPhysicsState(body, true, false); err != nil {
		log.Printf("[cast] %s: capture body %d: %v", d.Name, body, err)
		for _, h := range []*effect.Handle{fx, line} {
			if h != nil {
				h.ForceTeardown()
			}
		}
		return nil, nil
	}

	if fx != nil {
		fx.Attach(o.emitter, attached)
	}
	s := &levitateSession{
		sessionBase: b,
		body:        body,
		distance:    st.Position.Sub(origin).Len(),
		tracker:     physics.NewVelocityTracker(o.cfg.Velocity.Tracker()),
	}
	s.castFX, s.line = fx, line

	o.stats.captures.Add(1)
	o.publish(event.EventBodyCaptured, &event.BodyCapturedPayload{
		Session:  s.id,
		Body:     s.body,
		Distance: s.distance,
	})
	return s, nil
}

// captureCandidate picks the selected target when it resolves to a dynamic
// body within maxRange, otherwise the first dynamic body along the aim
func (o *Orchestrator) captureCandidate(origin, fwd mgl64.Vec3, maxRange float64) (physics.BodyID, physics.BodyState, bool) {
	if o.target != physics.NoBody {
		st, ok := o.world.Body(o.target)
		if ok && !st.Kinematic && st.Position.Sub(origin).Len() <= maxRange {
			return o.target, st, true
		}
	}

	hit, ok := o.world.Raycast(origin, fwd, maxRange)
	if !ok || hit.Body == physics.NoBody {
		return physics.NoBody, physics.BodyState{}, false
	}
	st, ok := o.world.Body(hit.Body)
	if !ok || st.Kinematic {
		return physics.NoBody, physics.BodyState{}, false
	}
	return hit.Body, st, true
}

func (s *levitateSession) state() State { return CastingUtility }

func (s *levitateSession) step(o *Orchestrator, dt time.Duration) engine.StepStatus {
	st, ok := o.world.Body(s.body)
	if !ok {
		return s.abort(event.EndLost)
	}
	pose := o.emitter.Pose()
	if !pose.IsFinite() {
		return s.abort(event.EndAborted)
	}

	s.tracker.Record(pose.Position, dt)

	target := pose.Position.Add(pose.Forward().Mul(s.distance))
	next := vmath.Damp(st.Position, target, s.spell.LevitationSmooth, dt.Seconds())
	if !vmath.IsFinite(next) {
		return s.abort(event.EndAborted)
	}
	if err := o.world.MoveBody(s.body, next); err != nil {
		return s.abort(event.EndLost)
	}

	s.wobble += dt.Seconds()
	s.drawLine(o, pose, next)
	return engine.Continue
}

// drawLine renders a sagging curve from the emitter to the body
func (s *levitateSession) drawLine(o *Orchestrator, pose vmath.Pose, body mgl64.Vec3) {
	if s.line == nil {
		return
	}
	start := pose.Position
	dist := body.Sub(start).Len()
	lv := o.cfg.Levitation

	sag := vmath.AxisUp.Mul(-s.spell.LevitationBend * dist)
	w := 2 * math.Pi * lv.NoiseFrequency * s.wobble
	noise := pose.Right().Mul(math.Sin(w) * lv.NoiseAmplitude).
		Add(pose.Up().Mul(math.Cos(w*1.3) * lv.NoiseAmplitude))

	curve := vmath.Curve{
		Start:   start,
		Control: vmath.Lerp(start, body, 0.5).Add(sag).Add(noise),
		End:     body,
	}
	s.line.SetPose(pose)
	s.line.SetPoints(curve.Sample(lv.LineSamples))
}

// end hands the body back to the world in one step
// Released and timed-out sessions throw with the tracked velocity; replaced,
// aborted and reset sessions drop the body in place
func (s *levitateSession) end(o *Orchestrator, reason event.EndReason) {
	s.release(reason)

	payload := &event.BodyReleasedPayload{Session: s.id, Body: s.body}
	if reason != event.EndLost {
		var v mgl64.Vec3
		switch reason {
		case event.EndStopped, event.EndTimeout, event.EndCompleted:
			v = s.tracker.EstimateReleaseVelocity()
		}
		if err := s.restore(o, v); err != nil {
			log.Printf("[cast] %s: release body %d: %v", s.spell.Name, s.body, err)
		} else {
			payload.Velocity = v
			payload.Restored = true
			o.stats.releaseSpeed.Set(v.Len())
			o.stats.peakRelease.StoreMax(v.Len())
		}
	}
	s.tracker.Reset()

	o.stats.releases.Add(1)
	o.publish(event.EventBodyReleased, payload)
}

func (s *levitateSession) restore(o *Orchestrator, v mgl64.Vec3) error {
	if err := o.world.SetPhysicsState(s.body, false, true); err != nil {
		return err
	}
	return o.world.SetVelocity(s.body, v)
}
