package trigger

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/spellcast/arena"
	"github.com/lixenwraith/spellcast/cast"
	"github.com/lixenwraith/spellcast/config"
	"github.com/lixenwraith/spellcast/effect"
	"github.com/lixenwraith/spellcast/engine"
	"github.com/lixenwraith/spellcast/event"
	"github.com/lixenwraith/spellcast/parameter"
	"github.com/lixenwraith/spellcast/physics"
	"github.com/lixenwraith/spellcast/spell"
	"github.com/lixenwraith/spellcast/status"
	"github.com/lixenwraith/spellcast/vmath"
)

// stage runs the full system set on a mock clock
type stage struct {
	clock   *engine.MockTimeProvider
	loop    *engine.Loop
	world   *arena.World
	spawner *arena.Spawner
	emitter *arena.Emitter
	orch    *cast.Orchestrator
	arb     *Arbiter
	reticle *Reticle
}

func newStage(t *testing.T) *stage {
	t.Helper()
	q := event.NewQueue()
	router := event.NewRouter(q)
	reg := status.NewRegistry()
	cfg := config.Default()

	s := &stage{
		clock:   engine.NewMockTimeProvider(time.Unix(0, 0)),
		world:   arena.NewWorld(),
		spawner: arena.NewSpawner(),
		emitter: arena.NewEmitter(mgl64.Vec3{}, vmath.AxisForward),
	}
	effects := effect.NewManager(s.spawner, reg)
	orch, err := cast.NewOrchestrator(cast.Deps{
		World:   s.world,
		Effects: effects,
		Emitter: s.emitter,
		Events:  q,
		Status:  reg,
		Rand:    vmath.NewFastRand(7),
	}, cfg)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	s.orch = orch
	s.arb = NewArbiter(orch)
	router.Register(s.arb)
	s.reticle = NewReticle(s.world, effects, s.emitter, s.arb, cfg.Aim, reg)

	s.loop = engine.NewLoop(s.clock, router)
	for _, sys := range []engine.System{s.world, effects, orch, s.arb, s.reticle} {
		s.loop.AddSystem(sys)
	}
	return s
}

func (s *stage) step() {
	s.clock.Advance(parameter.TickInterval)
	s.loop.Step()
}

func TestSystemOrder(t *testing.T) {
	s := newStage(t)
	want := []string{"reticle", "trigger", "cast", "effect", "arena"}
	got := s.loop.Systems()
	if len(got) != len(want) {
		t.Fatalf("systems = %d", len(got))
	}
	for i, sys := range got {
		if sys.Name() != want[i] {
			t.Errorf("system %d = %s, want %s", i, sys.Name(), want[i])
		}
	}
}

func TestRapidPressesFireOneProjectile(t *testing.T) {
	s := newStage(t)
	s.arb.Select(&spell.Descriptor{
		ID: 1, Name: "Reducto", CastType: spell.Projectile, Trigger: spell.Press,
		CastEffect: "bolt", HitEffect: "burst", Speed: 10, MaxRange: 20,
		CurveHeight: 0.5, FadeOut: 10 * time.Millisecond,
	})

	for i := 0; i < 10; i++ {
		s.arb.Pressed()
		s.step()
	}
	if n := s.spawner.Spawned("bolt"); n != 1 {
		t.Fatalf("projectiles = %d, want 1", n)
	}

	for i := 0; s.orch.Active(); i++ {
		if i > 600 {
			t.Fatal("projectile never landed")
		}
		s.step()
	}
	s.step() // Route the end event
	if s.arb.State().CastInFlight {
		t.Fatal("guard still set after the projectile landed")
	}

	s.arb.Pressed()
	s.step()
	if n := s.spawner.Spawned("bolt"); n != 2 {
		t.Errorf("projectiles = %d after guard cleared, want 2", n)
	}
}

func TestHeldLightSpawnsOnce(t *testing.T) {
	s := newStage(t)
	s.arb.Select(&spell.Descriptor{
		ID: 2, Name: "Lumos", CastType: spell.Utility, Trigger: spell.Hold,
		Utility: spell.UtilityLight, CastEffect: "glow", FadeOut: 50 * time.Millisecond,
	})

	s.arb.Pressed()
	s.step()
	for i := 0; i < 20; i++ {
		s.arb.Held()
		s.step()
	}
	if n := s.spawner.Spawned("glow"); n != 1 {
		t.Fatalf("light effects = %d, want 1", n)
	}

	s.arb.Released()
	s.step()
	if s.orch.Active() {
		t.Fatal("release did not end the session")
	}
	glow := s.spawner.All()[0]
	if glow.Emitting {
		t.Error("light still emitting after release")
	}
	for i := 0; i < 5; i++ {
		s.step()
	}
	if glow.Destroyed != 1 {
		t.Errorf("light destroyed %d times, want 1", glow.Destroyed)
	}
}

func TestReticleTracksAim(t *testing.T) {
	s := newStage(t)
	id := s.world.AddBody("crate", mgl64.Vec3{0, 0, 5}, 1, true)

	s.step()
	if got := s.arb.State().Aimed; got != id {
		t.Fatalf("aimed = %d, want %d", got, id)
	}
	marker := s.spawner.Live("reticle")
	if len(marker) != 1 {
		t.Fatalf("reticle instances = %d", len(marker))
	}
	m := marker[0]
	if !m.Visible || !m.Pose.Position.ApproxEqualThreshold(mgl64.Vec3{0, 0, 4}, 1e-9) {
		t.Errorf("reticle visible=%v at %v", m.Visible, m.Pose.Position)
	}
	if f := m.Pose.Forward(); !f.ApproxEqualThreshold(vmath.AxisForward, 1e-9) {
		t.Errorf("reticle faces %v, want into the surface", f)
	}

	s.emitter.Aim(vmath.AxisRight)
	s.step()
	if got := s.arb.State().Aimed; got != physics.NoBody {
		t.Errorf("aimed = %d after looking away", got)
	}
	if m.Visible {
		t.Error("reticle visible with nothing aimed at")
	}

	s.emitter.Aim(vmath.AxisForward)
	s.step()
	if n := s.spawner.Spawned("reticle"); n != 1 {
		t.Errorf("reticle respawned: %d instances", n)
	}
	if !m.Visible {
		t.Error("reticle hidden after re-aiming")
	}

	s.reticle.Close()
	if m.Destroyed != 1 {
		t.Errorf("reticle destroyed %d times on close", m.Destroyed)
	}
}

func levitation() *spell.Descriptor {
	return &spell.Descriptor{
		ID: 3, Name: "Wingardium Leviosa", CastType: spell.Utility, Trigger: spell.Hold,
		Utility: spell.UtilityLevitate, CastEffect: "sparkle", LineEffect: "thread",
		MaxRange: 15, LevitationBend: 0.2, LevitationSmooth: 10, FadeOut: 10 * time.Millisecond,
	}
}

func TestReleaseAfterReselectDropsBody(t *testing.T) {
	s := newStage(t)
	body := s.world.AddBody("crate", mgl64.Vec3{0, 0, 4}, 0.5, false)

	s.arb.Select(levitation())
	s.arb.Pressed()
	s.step()
	for i := 0; i < 3; i++ {
		s.arb.Held()
		s.step()
	}
	if st, _ := s.world.Body(body); !st.Kinematic {
		t.Fatal("body not captured")
	}

	// Equip a press spell while still holding, then let go
	s.arb.Select(&spell.Descriptor{
		ID: 1, Name: "Reducto", CastType: spell.Projectile, Trigger: spell.Press,
		CastEffect: "bolt", Speed: 10, MaxRange: 20,
	})
	s.arb.Released()
	s.step()

	if s.orch.Active() {
		t.Fatalf("session still %s after release", s.orch.State())
	}
	st, _ := s.world.Body(body)
	if st.Kinematic || !st.Gravity {
		t.Errorf("released body kinematic=%v gravity=%v", st.Kinematic, st.Gravity)
	}

	for i := 0; i < 120; i++ {
		s.step()
	}
	if s.orch.Active() || s.spawner.Spawned("bolt") != 0 {
		t.Errorf("release started a cast: state %s", s.orch.State())
	}
}

func TestSelectedTargetPreferredForCapture(t *testing.T) {
	s := newStage(t)
	aimed := s.world.AddBody("crate", mgl64.Vec3{0, 0, 4}, 0.5, false)
	chosen := s.world.AddBody("barrel", mgl64.Vec3{3, 0, 2}, 0.5, false)

	s.arb.SelectTarget(chosen)
	s.arb.Select(levitation())
	s.arb.Pressed()
	s.step()

	if st, _ := s.world.Body(chosen); !st.Kinematic {
		t.Error("selected target not captured")
	}
	if st, _ := s.world.Body(aimed); st.Kinematic {
		t.Error("aimed body captured over the selected target")
	}

	s.arb.Released()
	s.step()
	s.arb.SelectTarget(physics.NoBody)
	s.arb.Pressed()
	s.step()
	if st, _ := s.world.Body(aimed); !st.Kinematic {
		t.Error("cleared target did not fall back to the aimed body")
	}
}
