package cast

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/spellcast/arena"
	"github.com/lixenwraith/spellcast/config"
	"github.com/lixenwraith/spellcast/effect"
	"github.com/lixenwraith/spellcast/engine"
	"github.com/lixenwraith/spellcast/event"
	"github.com/lixenwraith/spellcast/parameter"
	"github.com/lixenwraith/spellcast/spell"
	"github.com/lixenwraith/spellcast/status"
	"github.com/lixenwraith/spellcast/vmath"
)

// rig wires an orchestrator to the arena world with a fixed 60 Hz tick
type rig struct {
	world   *arena.World
	spawner *arena.Spawner
	effects *effect.Manager
	emitter *arena.Emitter
	queue   *event.Queue
	reg     *status.Registry
	orch    *Orchestrator
	cfg     config.Config

	frame int64
	now   time.Time
	log   []event.Event
}

func newRig(t *testing.T) *rig {
	t.Helper()
	return newRigWith(t, config.Default())
}

func newRigWith(t *testing.T, cfg config.Config) *rig {
	t.Helper()
	r := &rig{
		world:   arena.NewWorld(),
		spawner: arena.NewSpawner(),
		emitter: arena.NewEmitter(mgl64.Vec3{}, vmath.AxisForward),
		queue:   event.NewQueue(),
		reg:     status.NewRegistry(),
		cfg:     cfg,
		now:     time.Unix(1000, 0),
	}
	r.effects = effect.NewManager(r.spawner, r.reg)

	o, err := NewOrchestrator(Deps{
		World:   r.world,
		Effects: r.effects,
		Emitter: r.emitter,
		Events:  r.queue,
		Status:  r.reg,
		Rand:    vmath.NewFastRand(42),
	}, cfg)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	r.orch = o
	return r
}

func (r *rig) tick() {
	r.frame++
	r.now = r.now.Add(parameter.TickInterval)
	tk := engine.Tick{Frame: r.frame, Now: r.now, Delta: parameter.TickInterval}
	r.orch.Update(tk)
	r.effects.Update(tk)
	r.world.Update(tk)
	r.log = append(r.log, r.queue.Consume()...)
}

func (r *rig) ticks(n int) {
	for i := 0; i < n; i++ {
		r.tick()
	}
}

// runFor ticks until d has elapsed
func (r *rig) runFor(d time.Duration) {
	r.ticks(int(d/parameter.TickInterval) + 1)
}

// untilIdle ticks until no session is active, failing after limit ticks
func (r *rig) untilIdle(t *testing.T, limit int) int {
	t.Helper()
	for i := 0; i < limit; i++ {
		if !r.orch.Active() {
			return i
		}
		r.tick()
	}
	t.Fatalf("session still active after %d ticks (state %s)", limit, r.orch.State())
	return limit
}

// events returns logged events of type et, draining the queue first
func (r *rig) events(et event.EventType) []event.Event {
	r.log = append(r.log, r.queue.Consume()...)
	var out []event.Event
	for _, ev := range r.log {
		if ev.Type == et {
			out = append(out, ev)
		}
	}
	return out
}

func (r *rig) endReasons() []event.EndReason {
	var out []event.EndReason
	for _, ev := range r.events(event.EventCastEnded) {
		out = append(out, ev.Payload.(*event.CastEndedPayload).Reason)
	}
	return out
}

func projectileSpell() *spell.Descriptor {
	return &spell.Descriptor{
		ID: 1, Name: "Reducto",
		CastType: spell.Projectile, Trigger: spell.Press,
		CastEffect: "bolt", HitEffect: "burst",
		Speed: 10, MaxRange: 20, CurveHeight: 0.5, CurveVariance: 0.2,
		FadeOut: 10 * time.Millisecond,
	}
}

func raySpell(trigger spell.TriggerType) *spell.Descriptor {
	return &spell.Descriptor{
		ID: 2, Name: "Incendio",
		CastType: spell.Ray, Trigger: trigger,
		CastEffect: "flame", HitEffect: "scorch", LineEffect: "beam",
		MaxRange: 20, ParticleSpeed: 1, MaxParticleSpeed: 2,
		FadeOut: 50 * time.Millisecond,
	}
}

func lightSpell(trigger spell.TriggerType) *spell.Descriptor {
	return &spell.Descriptor{
		ID: 3, Name: "Lumos",
		CastType: spell.Utility, Trigger: trigger, Utility: spell.UtilityLight,
		CastEffect: "glow", EquipEffect: "lumos_equip",
		FadeOut: 100 * time.Millisecond,
	}
}

func levitateSpell() *spell.Descriptor {
	return &spell.Descriptor{
		ID: 4, Name: "Wingardium Leviosa",
		CastType: spell.Utility, Trigger: spell.Hold, Utility: spell.UtilityLevitate,
		CastEffect: "sparkle", LineEffect: "thread",
		MaxRange: 15, LevitationBend: 0.2, LevitationSmooth: 10,
		FadeOut: 10 * time.Millisecond,
	}
}

func areaSpell() *spell.Descriptor {
	return &spell.Descriptor{
		ID: 5, Name: "Bombarda",
		CastType: spell.Area, Trigger: spell.Press,
		CastEffect: "shockwave", Duration: 500 * time.Millisecond,
		FadeOut: 10 * time.Millisecond,
	}
}

func configWithTimeout(d time.Duration) config.Config {
	cfg := config.Default()
	cfg.Cast.PressTimeout = d
	return cfg
}
