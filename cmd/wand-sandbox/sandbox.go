package main

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/spellcast/arena"
	"github.com/lixenwraith/spellcast/audio"
	"github.com/lixenwraith/spellcast/cast"
	"github.com/lixenwraith/spellcast/config"
	"github.com/lixenwraith/spellcast/effect"
	"github.com/lixenwraith/spellcast/engine"
	"github.com/lixenwraith/spellcast/event"
	"github.com/lixenwraith/spellcast/physics"
	"github.com/lixenwraith/spellcast/spell"
	"github.com/lixenwraith/spellcast/status"
	"github.com/lixenwraith/spellcast/trigger"
	"github.com/lixenwraith/spellcast/vmath"
)

const (
	aimStep      = math.Pi / 36 // 5 degrees per key press
	maxPitch     = math.Pi / 3
	strafeStep   = 0.25
	emitterLift  = 1.5
	maxEventLine = 6
)

// command is a sandbox action decoded from a key
type command struct {
	kind  commandKind
	value int
}

type commandKind int

const (
	cmdNone commandKind = iota
	cmdQuit
	cmdSelect
	cmdTrigger
	cmdYaw
	cmdPitch
	cmdStrafe
	cmdReset
	cmdRespawn
	cmdTarget
)

// sandbox wires the full casting stack to the arena world
type sandbox struct {
	cfg     config.Config
	catalog *spell.Catalog

	loop    *engine.Loop
	reg     *status.Registry
	world   *arena.World
	spawner *arena.Spawner
	effects *effect.Manager
	emitter *arena.Emitter
	orch    *cast.Orchestrator
	arb     *trigger.Arbiter
	reticle *trigger.Reticle
	player  *audio.Player

	yaw, pitch float64
	holding    bool
	events     []string // Most recent lifecycle events, newest last
}

func newSandbox(cfg config.Config, catalog *spell.Catalog, clock engine.Clock) (*sandbox, error) {
	q := event.NewQueue()
	router := event.NewRouter(q)

	sb := &sandbox{
		cfg:     cfg,
		catalog: catalog,
		loop:    engine.NewLoop(clock, router),
		reg:     status.NewRegistry(),
		world:   arena.NewWorld(),
		spawner: arena.NewSpawner(),
		emitter: arena.NewEmitter(mgl64.Vec3{0, emitterLift, 0}, vmath.AxisForward),
	}
	sb.effects = effect.NewManager(sb.spawner, sb.reg)

	orch, err := cast.NewOrchestrator(cast.Deps{
		World:   sb.world,
		Effects: sb.effects,
		Emitter: sb.emitter,
		Events:  q,
		Status:  sb.reg,
	}, cfg)
	if err != nil {
		return nil, err
	}
	sb.orch = orch
	sb.arb = trigger.NewArbiter(orch)
	sb.reticle = trigger.NewReticle(sb.world, sb.effects, sb.emitter, sb.arb, cfg.Aim, sb.reg)
	sb.player = audio.NewPlayer(cfg.Audio, sb.reg)

	router.Track(sb.reg)
	router.Register(sb.arb)
	router.Register(sb.player)
	router.Register(event.HandlerFunc{
		Types: []event.EventType{
			event.EventSpellSelected, event.EventCastStarted, event.EventCastEnded,
			event.EventSpellHit, event.EventBodyCaptured, event.EventBodyReleased,
		},
		Fn: sb.record,
	})

	for _, sys := range []engine.System{sb.reticle, sb.arb, sb.orch, sb.effects, sb.world} {
		sb.loop.AddSystem(sys)
	}
	sb.buildScene()
	return sb, nil
}

// buildScene lays out the floor, a back wall and a few bodies
func (sb *sandbox) buildScene() {
	sb.world.AddPlane(mgl64.Vec3{}, vmath.AxisUp)
	sb.world.AddPlane(mgl64.Vec3{0, 0, 18}, mgl64.Vec3{0, 0, -1})
	sb.spawnBodies()
}

func (sb *sandbox) spawnBodies() {
	for _, b := range sb.world.Bodies() {
		sb.world.RemoveBody(b.ID)
	}
	sb.world.AddBody("crate", mgl64.Vec3{0, emitterLift, 5}, 0.5, false)
	sb.world.AddBody("barrel", mgl64.Vec3{-3, 0.5, 7}, 0.5, false)
	sb.world.AddBody("stool", mgl64.Vec3{3, 0.5, 9}, 0.5, false)
	sb.world.AddBody("statue", mgl64.Vec3{-1, 1, 12}, 1, true)
}

// apply runs one decoded command; returns false to quit
func (sb *sandbox) apply(c command) bool {
	switch c.kind {
	case cmdQuit:
		return false
	case cmdSelect:
		d, err := sb.catalog.ByID(spell.ID(c.value))
		if err != nil {
			return true
		}
		sb.release()
		sb.arb.Select(d)
	case cmdTrigger:
		d := sb.arb.State().Selected
		if d == nil {
			return true
		}
		switch {
		case !d.IsHold():
			sb.arb.Pressed()
		case sb.holding:
			sb.release()
		default:
			sb.arb.Pressed()
			sb.holding = true
		}
	case cmdYaw:
		sb.yaw += float64(c.value) * aimStep
		sb.aim()
	case cmdPitch:
		sb.pitch = math.Max(-maxPitch, math.Min(maxPitch, sb.pitch+float64(c.value)*aimStep))
		sb.aim()
	case cmdStrafe:
		sb.emitter.Move(mgl64.Vec3{float64(c.value) * strafeStep, 0, 0})
	case cmdReset:
		sb.holding = false
		sb.arb.Stop()
		sb.orch.Reset()
	case cmdRespawn:
		sb.spawnBodies()
	case cmdTarget:
		// Pins the aimed body for levitation; again on the same body unpins
		st := sb.arb.State()
		if st.Aimed == st.SelectedTarget {
			sb.arb.SelectTarget(physics.NoBody)
		} else {
			sb.arb.SelectTarget(st.Aimed)
		}
	}
	return true
}

func (sb *sandbox) release() {
	if sb.holding {
		sb.arb.Released()
		sb.holding = false
	}
}

func (sb *sandbox) aim() {
	sb.emitter.Aim(mgl64.Vec3{
		math.Sin(sb.yaw) * math.Cos(sb.pitch),
		math.Sin(sb.pitch),
		math.Cos(sb.yaw) * math.Cos(sb.pitch),
	})
}

// afterTick feeds the held trigger for the next tick
func (sb *sandbox) afterTick() {
	if sb.holding {
		sb.arb.Held()
	}
}

func (sb *sandbox) record(ev event.Event) {
	var line string
	switch p := ev.Payload.(type) {
	case *event.SpellSelectedPayload:
		line = fmt.Sprintf("selected %s", p.Spell)
	case *event.CastStartedPayload:
		line = fmt.Sprintf("cast %s (%s)", p.Spell, p.CastType)
	case *event.CastEndedPayload:
		line = fmt.Sprintf("ended %s: %s", p.Spell, p.Reason)
	case *event.SpellHitPayload:
		line = fmt.Sprintf("hit %s at (%.1f, %.1f, %.1f)", p.Spell, p.Point.X(), p.Point.Y(), p.Point.Z())
	case *event.BodyCapturedPayload:
		line = fmt.Sprintf("captured body %d at %.1f", p.Body, p.Distance)
	case *event.BodyReleasedPayload:
		line = fmt.Sprintf("released body %d at %.1f u/s", p.Body, p.Velocity.Len())
	default:
		return
	}
	sb.events = append(sb.events, fmt.Sprintf("%6d %s", ev.Frame, line))
	if len(sb.events) > maxEventLine {
		sb.events = sb.events[len(sb.events)-maxEventLine:]
	}
}
