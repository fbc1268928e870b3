package cast

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/spellcast/engine"
	"github.com/lixenwraith/spellcast/event"
	"github.com/lixenwraith/spellcast/parameter"
	"github.com/lixenwraith/spellcast/physics"
	"github.com/lixenwraith/spellcast/vmath"
)

// projectileSession flies the cast effect along a curved path at constant
// speed, probing ahead each tick for an impact
type projectileSession struct {
	sessionBase

	curve   vmath.Curve
	journey float64 // Sampled path length
	covered float64
	pos     mgl64.Vec3
	dir     mgl64.Vec3 // Launch direction, fallback facing

	aimHit physics.Hit // Launch raycast result, valid when aimed
	aimed  bool
}

func (o *Orchestrator) beginProjectile(b sessionBase, pose vmath.Pose) (session, error) {
	d := b.spell
	origin, fwd := pose.Position, pose.Forward()

	end := origin.Add(fwd.Mul(d.MaxRange))
	hit, ok := o.world.Raycast(origin, fwd, d.MaxRange)
	if ok {
		end = hit.Point
	}

	curve := vmath.NewCurve(origin, end, pose.Right(), d.CurveHeight, d.CurveVariance, o.rng)
	s := &projectileSession{
		sessionBase: b,
		curve:       curve,
		journey:     curve.PathLength(o.cfg.Cast.PathSamples),
		pos:         origin,
		dir:         fwd,
		aimHit:      hit,
		aimed:       ok,
	}

	fx, err := o.spawn(d.CastEffect, vmath.NewPose(origin, fwd, pose.Up()))
	if err != nil {
		return nil, err
	}
	s.castFX = fx
	return s, nil
}

func (s *projectileSession) state() State { return CastingProjectile }

func (s *projectileSession) step(o *Orchestrator, dt time.Duration) engine.StepStatus {
	d := s.spell
	advance := d.Speed * dt.Seconds()
	s.covered += advance
	frac := vmath.TraversalFraction(s.covered, s.journey)

	next := s.curve.At(frac)
	if !vmath.IsFinite(next) {
		return s.abort(event.EndAborted)
	}

	// Probe the segment about to be flown, at least one speed-step long
	travel := next.Sub(s.pos)
	if dist := travel.Len(); dist > vmath.Epsilon {
		probe := math.Max(dist, advance)
		if hit, ok := o.world.Raycast(s.pos, travel, probe); ok {
			s.face(hit.Point, travel)
			o.spawnHit(&s.sessionBase, hit.Point, hit.Normal, hit.Body)
			return engine.Done
		}
	}

	look := s.curve.At(math.Min(frac+parameter.OrientLookahead, 1)).Sub(next)
	if look.Len() < vmath.Epsilon {
		look = travel
	}
	s.pos = next
	s.face(next, look)

	if frac >= 1 {
		// Reaching the end of the path counts as a hit
		normal, body := s.dir.Mul(-1), physics.NoBody
		if s.aimed {
			normal, body = s.aimHit.Normal, s.aimHit.Body
		}
		o.spawnHit(&s.sessionBase, next, normal, body)
		return engine.Done
	}
	return engine.Continue
}

// face moves the cast effect to p looking along dir
func (s *projectileSession) face(p, dir mgl64.Vec3) {
	if s.castFX == nil {
		return
	}
	f := vmath.SafeNormalize(dir, s.dir)
	s.castFX.SetPose(vmath.Pose{Position: p, Rotation: vmath.LookRotation(f, vmath.AxisUp)})
}

func (s *projectileSession) end(_ *Orchestrator, reason event.EndReason) {
	s.release(reason)
}
