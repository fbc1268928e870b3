package cast

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/spellcast/arena"
	"github.com/lixenwraith/spellcast/event"
	"github.com/lixenwraith/spellcast/parameter"
	"github.com/lixenwraith/spellcast/physics"
	"github.com/lixenwraith/spellcast/spell"
	"github.com/lixenwraith/spellcast/status"
	"github.com/lixenwraith/spellcast/vmath"
)

func TestNewOrchestratorRequiresCollaborators(t *testing.T) {
	r := newRig(t)
	cases := []Deps{
		{Effects: r.effects, Emitter: r.emitter},
		{World: r.world, Emitter: r.emitter},
		{World: r.world, Effects: r.effects},
	}
	for i, deps := range cases {
		if _, err := NewOrchestrator(deps, r.cfg); !errors.Is(err, ErrMissingCollaborator) {
			t.Errorf("case %d: err = %v, want ErrMissingCollaborator", i, err)
		}
	}
}

func TestProjectileUnobstructedReachesMaxRange(t *testing.T) {
	r := newRig(t)
	d := projectileSpell()

	if _, ok := r.orch.Cast(d); !ok {
		t.Fatal("Cast rejected")
	}
	if r.orch.State() != CastingProjectile {
		t.Fatalf("state = %s, want CastingProjectile", r.orch.State())
	}
	r.untilIdle(t, 600)

	hits := r.spawner.Live("burst")
	if len(hits) != 1 {
		t.Fatalf("hit effects = %d, want 1", len(hits))
	}
	want := mgl64.Vec3{0, 0, 20}
	if got := hits[0].Pose.Position; !got.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("hit at %v, want %v", got, want)
	}
	if r.orch.State() != Idle {
		t.Errorf("state = %s, want Idle", r.orch.State())
	}
	if reasons := r.endReasons(); len(reasons) != 1 || reasons[0] != event.EndCompleted {
		t.Errorf("end reasons = %v, want [completed]", reasons)
	}
	// 10ms fade completes within the finishing tick
	if got := r.spawner.Live("bolt"); len(got) != 0 {
		t.Errorf("projectile effect still alive")
	}
}

func TestProjectileFollowsCurve(t *testing.T) {
	r := newRig(t)
	r.orch.Cast(projectileSpell())

	// Halfway along, the effect sits above the straight chord
	r.runFor(time.Second)
	bolt := r.spawner.All()[0]
	if bolt.Pose.Position.Y() <= 0 {
		t.Errorf("projectile at %v, want lifted above chord", bolt.Pose.Position)
	}
	fwd := bolt.Pose.Forward()
	if fwd.Z() <= 0 {
		t.Errorf("projectile faces %v, want toward target", fwd)
	}
}

func TestProjectileImpact(t *testing.T) {
	r := newRig(t)
	center := mgl64.Vec3{0, 0, 10}
	id := r.world.AddBody("crate", center, 1, true)

	r.orch.Cast(projectileSpell())
	r.untilIdle(t, 600)

	hits := r.events(event.EventSpellHit)
	if len(hits) != 1 {
		t.Fatalf("hit events = %d, want 1", len(hits))
	}
	p := hits[0].Payload.(*event.SpellHitPayload)
	if p.Body != id {
		t.Errorf("hit body = %d, want %d", p.Body, id)
	}
	if d := p.Point.Sub(center).Len(); math.Abs(d-1) > 1e-6 {
		t.Errorf("hit %v is %v from center, want on surface", p.Point, d)
	}

	// Hit effect faces into the surface
	burst := r.spawner.Live("burst")[0]
	if dot := burst.Pose.Forward().Dot(p.Normal); dot > -0.99 {
		t.Errorf("hit effect forward·normal = %v, want -1", dot)
	}
}

func TestPressDoubleCastIsSingleSession(t *testing.T) {
	r := newRig(t)
	d := projectileSpell()

	id, ok := r.orch.Cast(d)
	if !ok {
		t.Fatal("first cast rejected")
	}
	r.tick()
	if _, ok := r.orch.Cast(d); ok {
		t.Error("second press cast accepted while in flight")
	}

	if n := r.spawner.Spawned("bolt"); n != 1 {
		t.Errorf("projectile effects spawned = %d, want 1", n)
	}
	if n := r.reg.Int(status.CastIgnored); n != 1 {
		t.Errorf("ignored = %d, want 1", n)
	}
	started := r.events(event.EventCastStarted)
	if len(started) != 1 || started[0].Payload.(*event.CastStartedPayload).Session != id {
		t.Errorf("started events = %v", started)
	}

	// Once landed the same spell may fire again
	r.untilIdle(t, 600)
	if _, ok := r.orch.Cast(d); !ok {
		t.Error("cast after completion rejected")
	}
}

func TestHoldRayOneBeamThrottledHits(t *testing.T) {
	r := newRig(t)
	r.world.AddPlane(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, -1})
	d := raySpell(spell.Hold)

	r.orch.Cast(d)
	r.tick()
	for i := 0; i < 2; i++ {
		if _, ok := r.orch.Cast(d); !ok {
			t.Fatal("held re-cast rejected")
		}
		r.tick()
	}

	if n := r.spawner.Spawned("beam"); n != 1 {
		t.Errorf("beam instances = %d, want 1", n)
	}
	if n := r.spawner.Spawned("scorch"); n > 1 {
		t.Errorf("hit effects = %d, want at most 1", n)
	}
	beam := r.spawner.Live("beam")[0]
	if len(beam.Points) != 2 || !beam.Points[1].ApproxEqualThreshold(mgl64.Vec3{0, 0, 5}, 1e-9) {
		t.Errorf("beam points = %v, want end at (0,0,5)", beam.Points)
	}
	if r.orch.State() != CastingRay {
		t.Errorf("state = %s", r.orch.State())
	}
}

func TestHoldRayRefreshesHitAfterMovement(t *testing.T) {
	r := newRig(t)
	r.world.AddPlane(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, -1})
	d := raySpell(spell.Hold)

	r.orch.Cast(d)
	r.tick()
	r.emitter.Move(mgl64.Vec3{0.1, 0, 0}) // Below refresh distance
	r.tick()
	if n := r.spawner.Spawned("scorch"); n != 1 {
		t.Fatalf("hit effects after small move = %d, want 1", n)
	}
	r.emitter.Move(mgl64.Vec3{0.5, 0, 0})
	r.tick()
	if n := r.spawner.Spawned("scorch"); n != 2 {
		t.Errorf("hit effects after large move = %d, want 2", n)
	}
}

func TestHoldRayRampsParticleSpeed(t *testing.T) {
	r := newRig(t)
	d := raySpell(spell.Hold)
	r.orch.Cast(d)
	r.tick()
	flame := r.spawner.Live("flame")[0]
	early := flame.SpeedScale

	r.runFor(r.cfg.Cast.RayRampTime)
	if flame.SpeedScale <= early || math.Abs(flame.SpeedScale-d.MaxParticleSpeed) > 1e-9 {
		t.Errorf("speed scale %v -> %v, want ramp to %v", early, flame.SpeedScale, d.MaxParticleSpeed)
	}
}

func TestRayStopFadesBeam(t *testing.T) {
	r := newRig(t)
	d := raySpell(spell.Hold)
	r.orch.Cast(d)
	r.ticks(3)
	r.orch.Stop()

	if r.orch.Active() {
		t.Fatal("Stop left a session active")
	}
	beam := r.spawner.All()[1]
	if beam.Emitting {
		t.Error("beam still emitting after stop")
	}
	r.runFor(d.FadeOut)
	if beam.Destroyed != 1 {
		t.Errorf("beam destroyed %d times, want 1", beam.Destroyed)
	}
	if reasons := r.endReasons(); len(reasons) != 1 || reasons[0] != event.EndStopped {
		t.Errorf("end reasons = %v", reasons)
	}
}

func TestPressRayHoldsBeamThenEnds(t *testing.T) {
	r := newRig(t)
	r.world.AddPlane(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, -1})
	r.orch.Cast(raySpell(spell.Press))
	r.tick()

	// Single raycast: moving the emitter no longer spawns hits
	r.emitter.Move(mgl64.Vec3{2, 0, 0})
	r.ticks(5)
	if n := r.spawner.Spawned("scorch"); n != 1 {
		t.Errorf("hit effects = %d, want 1", n)
	}

	r.runFor(r.cfg.Cast.RayPressDuration)
	if r.orch.Active() {
		t.Error("press ray still active after its beam duration")
	}

	// Hit effect outlives the ray and expires on its own schedule
	var hit *arena.Instance
	for _, inst := range r.spawner.All() {
		if inst.Proto == "scorch" {
			hit = inst
		}
	}
	if hit.Destroyed != 0 {
		t.Fatal("hit effect destroyed with its session")
	}
	r.runFor(r.cfg.Cast.HitEffectLifetime)
	r.runFor(50 * time.Millisecond)
	if hit.Destroyed != 1 {
		t.Errorf("hit effect destroyed %d times after lifetime, want 1", hit.Destroyed)
	}
}

func TestHoldUtilityNeverRespawns(t *testing.T) {
	r := newRig(t)
	d := lightSpell(spell.Hold)

	for i := 0; i < 30; i++ {
		if _, ok := r.orch.Cast(d); !ok {
			t.Fatalf("held cast %d rejected", i)
		}
		r.tick()
	}
	if n := r.spawner.Spawned("glow"); n != 1 {
		t.Errorf("light effects spawned = %d, want 1", n)
	}
	if n := r.reg.Int(status.CastRefreshed); n != 29 {
		t.Errorf("refreshed = %d, want 29", n)
	}

	// Attached light follows the wand
	r.emitter.Move(mgl64.Vec3{1, 1, 1})
	r.tick()
	glow := r.spawner.Live("glow")[0]
	if !glow.Pose.Position.ApproxEqualThreshold(mgl64.Vec3{1, 1, 1}, 1e-9) {
		t.Errorf("light at %v, want on emitter", glow.Pose.Position)
	}

	r.orch.Stop()
	if glow.Emitting {
		t.Error("light still emitting after release")
	}
	if glow.Destroyed != 0 {
		t.Error("light destroyed without fading")
	}
	r.runFor(d.FadeOut)
	if glow.Destroyed != 1 {
		t.Errorf("light destroyed %d times, want 1", glow.Destroyed)
	}
}

func TestPressLightLastsDuration(t *testing.T) {
	r := newRig(t)
	d := lightSpell(spell.Press)
	d.Duration = 200 * time.Millisecond
	r.orch.Cast(d)
	r.runFor(d.Duration)
	if r.orch.Active() {
		t.Error("press light outlived its duration")
	}
}

func TestDifferentSpellReplacesSynchronously(t *testing.T) {
	r := newRig(t)
	light := lightSpell(spell.Hold)
	r.orch.Cast(light)
	r.tick()
	glow := r.spawner.Live("glow")[0]

	if _, ok := r.orch.Cast(projectileSpell()); !ok {
		t.Fatal("replacement cast rejected")
	}
	if glow.Emitting {
		t.Error("previous cast effect not torn down before the new cast")
	}
	if r.orch.State() != CastingProjectile {
		t.Errorf("state = %s", r.orch.State())
	}
	if reasons := r.endReasons(); len(reasons) != 1 || reasons[0] != event.EndReplaced {
		t.Errorf("end reasons = %v, want [replaced]", reasons)
	}
}

func TestAreaEnumeratesForDuration(t *testing.T) {
	r := newRig(t)
	near := r.world.AddBody("near", mgl64.Vec3{0, 0, 2}, 0.5, true)
	r.world.AddBody("far", mgl64.Vec3{0, 0, 9}, 0.5, true)

	d := areaSpell()
	r.orch.Cast(d)
	if r.orch.State() != CastingArea {
		t.Fatalf("state = %s", r.orch.State())
	}
	n := r.untilIdle(t, 120)

	pulses := r.events(event.EventAreaPulse)
	if len(pulses) != n {
		t.Errorf("pulses = %d, ticks = %d; want one per tick", len(pulses), n)
	}
	wantTicks := int(d.Duration / parameter.TickInterval)
	if n < wantTicks || n > wantTicks+2 {
		t.Errorf("area lasted %d ticks, want about %d", n, wantTicks)
	}
	bodies := pulses[0].Payload.(*event.AreaPulsePayload).Bodies
	if len(bodies) != 1 || bodies[0] != near {
		t.Errorf("overlap = %v, want [%d]", bodies, near)
	}
}

func TestLevitateCaptureAndThrow(t *testing.T) {
	r := newRig(t)
	body := r.world.AddBody("crate", mgl64.Vec3{0, 0, 4}, 0.5, false)

	d := levitateSpell()
	if _, ok := r.orch.Cast(d); !ok {
		t.Fatal("levitate rejected with a body in sight")
	}
	st, _ := r.world.Body(body)
	if !st.Kinematic || st.Gravity {
		t.Fatalf("captured body kinematic=%v gravity=%v", st.Kinematic, st.Gravity)
	}

	// Steady rightward drift of the wand
	for i := 0; i < 5; i++ {
		r.emitter.Move(mgl64.Vec3{0.1, 0, 0})
		r.orch.Cast(d)
		r.tick()
	}
	held, _ := r.world.Body(body)
	if held.Position.X() <= 0 {
		t.Errorf("held body at %v did not trail the aim", held.Position)
	}
	if d := held.Position.Z(); math.Abs(d-4) > 0.01 {
		t.Errorf("held distance drifted to %v", d)
	}

	r.orch.Stop()
	st, _ = r.world.Body(body)
	if st.Kinematic || !st.Gravity {
		t.Errorf("released body kinematic=%v gravity=%v", st.Kinematic, st.Gravity)
	}
	v := st.Velocity
	if v.Len() == 0 || v.X() <= 0 {
		t.Errorf("release velocity = %v, want rightward", v)
	}
	if v.Len() > r.cfg.Velocity.MaxSpeed+1e-9 {
		t.Errorf("release speed %v exceeds %v", v.Len(), r.cfg.Velocity.MaxSpeed)
	}
	if peak := r.reg.Float(status.PeakRelease); math.Abs(peak-v.Len()) > 1e-9 {
		t.Errorf("peak release = %v, want %v", peak, v.Len())
	}

	rel := r.events(event.EventBodyReleased)
	if len(rel) != 1 || !rel[0].Payload.(*event.BodyReleasedPayload).Restored {
		t.Errorf("release events = %v", rel)
	}
}

func TestLevitateHoldRefreshKeepsCapture(t *testing.T) {
	r := newRig(t)
	body := r.world.AddBody("crate", mgl64.Vec3{0, 0, 4}, 0.5, false)
	d := levitateSpell()

	r.orch.Cast(d)
	for i := 0; i < 10; i++ {
		r.orch.Cast(d)
		r.tick()
	}
	if n := r.reg.Int(status.BodyCaptures); n != 1 {
		t.Errorf("captures = %d, want 1", n)
	}
	if n := r.spawner.Spawned("thread"); n != 1 {
		t.Errorf("line effects = %d, want 1", n)
	}
	line := r.spawner.Live("thread")[0]
	if len(line.Points) != r.cfg.Levitation.LineSamples+1 {
		t.Fatalf("line points = %d", len(line.Points))
	}
	// Sag: the curve midpoint hangs below the straight line
	st, _ := r.world.Body(body)
	mid := line.Points[len(line.Points)/2]
	if chord := vmath.Lerp(mgl64.Vec3{}, st.Position, 0.5); mid.Y() >= chord.Y() {
		t.Errorf("curve midpoint %v not below chord %v", mid, chord)
	}
}

func TestLevitateNoEligibleBodyIsNoop(t *testing.T) {
	r := newRig(t)
	if _, ok := r.orch.Cast(levitateSpell()); ok {
		t.Error("levitate accepted with nothing aimed at")
	}

	r.world.AddBody("statue", mgl64.Vec3{0, 0, 4}, 0.5, true)
	if _, ok := r.orch.Cast(levitateSpell()); ok {
		t.Error("levitate captured a kinematic body")
	}
	r.world.AddPlane(mgl64.Vec3{0, -1, 0}, vmath.AxisUp)
	r.emitter.Aim(mgl64.Vec3{0, -1, 0.2})
	if _, ok := r.orch.Cast(levitateSpell()); ok {
		t.Error("levitate captured static geometry")
	}

	if r.orch.State() != Idle {
		t.Errorf("state = %s, want Idle", r.orch.State())
	}
	if n := len(r.spawner.All()); n != 0 {
		t.Errorf("spawned %d effects for a no-op cast", n)
	}
	if n := len(r.events(event.EventCastStarted)); n != 0 {
		t.Errorf("started events = %d", n)
	}
}

func TestLevitateBodyVanishes(t *testing.T) {
	r := newRig(t)
	body := r.world.AddBody("crate", mgl64.Vec3{0, 0, 4}, 0.5, false)
	r.orch.Cast(levitateSpell())
	r.tick()

	r.world.RemoveBody(body)
	r.tick()
	if r.orch.Active() {
		t.Fatal("session survived its body")
	}
	if reasons := r.endReasons(); len(reasons) != 1 || reasons[0] != event.EndLost {
		t.Errorf("end reasons = %v, want [lost]", reasons)
	}
	rel := r.events(event.EventBodyReleased)
	if len(rel) != 1 || rel[0].Payload.(*event.BodyReleasedPayload).Restored {
		t.Errorf("release events = %v", rel)
	}
}

func TestLevitateReplacedDropsBody(t *testing.T) {
	r := newRig(t)
	body := r.world.AddBody("crate", mgl64.Vec3{0, 0, 4}, 0.5, false)
	r.orch.Cast(levitateSpell())
	r.emitter.Move(mgl64.Vec3{0.1, 0, 0})
	r.tick()

	r.orch.Cast(lightSpell(spell.Hold))
	st, _ := r.world.Body(body)
	if st.Kinematic || !st.Gravity || st.Velocity != (mgl64.Vec3{}) {
		t.Errorf("replaced capture left body %+v", st)
	}
}

func TestNonFinitePoseAborts(t *testing.T) {
	r := newRig(t)
	nan := vmath.Pose{Position: mgl64.Vec3{math.NaN(), 0, 0}, Rotation: mgl64.QuatIdent()}

	good := r.emitter.Pose()
	r.emitter.SetPose(nan)
	if _, ok := r.orch.Cast(projectileSpell()); ok {
		t.Error("cast accepted from a NaN pose")
	}
	if len(r.spawner.All()) != 0 {
		t.Error("effect spawned from a NaN pose")
	}

	r.emitter.SetPose(good)
	r.world.AddPlane(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, -1})
	r.orch.Cast(raySpell(spell.Hold))
	r.tick()
	before := r.spawner.Spawned("scorch")

	r.emitter.SetPose(nan)
	r.tick()
	if r.orch.Active() {
		t.Fatal("session survived a NaN pose")
	}
	if reasons := r.endReasons(); len(reasons) != 1 || reasons[0] != event.EndAborted {
		t.Errorf("end reasons = %v", reasons)
	}
	if r.spawner.Spawned("scorch") != before {
		t.Error("hit spawned after abort")
	}
	for _, inst := range r.spawner.All() {
		if !inst.Pose.IsFinite() {
			t.Errorf("instance %s received a non-finite pose", inst.Proto)
		}
	}
}

func TestPressTimeout(t *testing.T) {
	cfg := configWithTimeout(100 * time.Millisecond)
	r := newRigWith(t, cfg)
	d := projectileSpell()
	d.Speed = 0.01

	r.orch.Cast(d)
	r.runFor(200 * time.Millisecond)
	if r.orch.Active() {
		t.Fatal("press session outlived its timeout")
	}
	if reasons := r.endReasons(); len(reasons) != 1 || reasons[0] != event.EndTimeout {
		t.Errorf("end reasons = %v, want [timeout]", reasons)
	}
}

func TestHoldIgnoresPressTimeout(t *testing.T) {
	r := newRigWith(t, configWithTimeout(100*time.Millisecond))
	r.orch.Cast(raySpell(spell.Hold))
	r.runFor(300 * time.Millisecond)
	if !r.orch.Active() {
		t.Error("hold ray cancelled by the press timeout")
	}
}

func TestSelectPlaysEquipSequence(t *testing.T) {
	r := newRig(t)
	d := lightSpell(spell.Hold)
	eq := r.cfg.Equip

	r.orch.Select(d)
	if r.orch.Selected() != d {
		t.Fatal("Selected not updated")
	}
	sel := r.events(event.EventSpellSelected)
	if len(sel) != 1 || sel[0].Payload.(*event.SpellSelectedPayload).Spell != "Lumos" {
		t.Errorf("selected events = %v", sel)
	}

	span := eq.SplineDuration + time.Duration(eq.Strands-1)*eq.StrandDelay
	r.runFor(span + parameter.TickInterval)
	if n := r.spawner.Spawned("lumos_equip"); n != eq.Strands+1 {
		t.Fatalf("equip effects = %d, want %d strands + tip", n, eq.Strands)
	}
	tip := r.spawner.All()[eq.Strands]

	// Tip rides the wand
	r.emitter.Move(mgl64.Vec3{0, 1, 0})
	r.tick()
	if !tip.Pose.Position.ApproxEqualThreshold(mgl64.Vec3{0, 1, 0}, 1e-9) {
		t.Errorf("tip at %v, want on emitter", tip.Pose.Position)
	}

	r.runFor(eq.Lifetime + d.FadeOut)
	if tip.Destroyed != 1 {
		t.Errorf("tip destroyed %d times after lifetime, want 1", tip.Destroyed)
	}
}

func TestReselectFadesPreviousEquip(t *testing.T) {
	r := newRig(t)
	r.orch.Select(lightSpell(spell.Hold))
	r.ticks(3)
	r.orch.Select(projectileSpell()) // No equip effect authored

	for _, inst := range r.spawner.Live("lumos_equip") {
		if inst.Emitting {
			t.Error("previous equip strand still emitting")
		}
	}
}

func TestResetDestroysEverything(t *testing.T) {
	r := newRig(t)
	r.world.AddPlane(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{0, 0, -1})
	r.orch.Select(lightSpell(spell.Hold))
	r.orch.Cast(raySpell(spell.Press))
	r.ticks(2)

	r.orch.Reset()
	if r.orch.Active() || r.orch.State() != Idle {
		t.Error("reset left a session")
	}
	if n := len(r.spawner.Live("")); n != 0 {
		t.Errorf("%d instances alive after reset", n)
	}
	for _, inst := range r.spawner.All() {
		if inst.Destroyed != 1 {
			t.Errorf("%s destroyed %d times", inst.Proto, inst.Destroyed)
		}
	}
	if r.effects.Live() != 0 {
		t.Errorf("manager tracks %d handles", r.effects.Live())
	}
}

func TestSpawnFailureIsNoop(t *testing.T) {
	r := newRig(t)
	r.spawner.FailOn("bolt")
	if _, ok := r.orch.Cast(projectileSpell()); ok {
		t.Error("cast accepted with its effect unavailable")
	}
	if r.orch.State() != Idle {
		t.Errorf("state = %s", r.orch.State())
	}
	if r.reg.Int(status.CastAborted) != 1 {
		t.Error("aborted cast not counted")
	}
}

func TestHitPayloadCarriesBody(t *testing.T) {
	r := newRig(t)
	id := r.world.AddBody("dummy", mgl64.Vec3{0, 0, 6}, 1, true)
	r.orch.Cast(raySpell(spell.Hold))
	r.tick()
	hits := r.events(event.EventSpellHit)
	if len(hits) != 1 {
		t.Fatalf("hits = %d", len(hits))
	}
	if got := hits[0].Payload.(*event.SpellHitPayload).Body; got != id {
		t.Errorf("body = %d, want %d", got, id)
	}
	if hits[0].Payload.(*event.SpellHitPayload).Body == physics.NoBody {
		t.Error("hit on a body reported as static")
	}
}

func TestLevitateTargetPreference(t *testing.T) {
	tests := []struct {
		name   string
		target mgl64.Vec3
		kin    bool
		want   string
	}{
		{"in range", mgl64.Vec3{3, 0, 2}, false, "target"},
		{"out of range", mgl64.Vec3{0, 0, -30}, false, "aimed"},
		{"kinematic", mgl64.Vec3{3, 0, 2}, true, "aimed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t)
			aimed := r.world.AddBody("crate", mgl64.Vec3{0, 0, 4}, 0.5, false)
			target := r.world.AddBody("barrel", tt.target, 0.5, tt.kin)
			r.orch.SetTarget(target)

			if _, ok := r.orch.Cast(levitateSpell()); !ok {
				t.Fatal("levitate rejected")
			}
			want := aimed
			if tt.want == "target" {
				want = target
			}
			got := r.events(event.EventBodyCaptured)
			if len(got) != 1 || got[0].Payload.(*event.BodyCapturedPayload).Body != want {
				t.Errorf("captured %v, want body %d", got, want)
			}
		})
	}
}
