package cast

import (
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/spellcast/effect"
	"github.com/lixenwraith/spellcast/engine"
	"github.com/lixenwraith/spellcast/spell"
	"github.com/lixenwraith/spellcast/vmath"
)

// equipStrand is one equip effect travelling a helix toward the wand tip
type equipStrand struct {
	local  []mgl64.Vec3 // Helix in emitter space, base to tip
	start  time.Duration
	handle *effect.Handle
	done   bool
}

// equipSequence plays the equip animation: staggered strands wind up the
// wand, then a tip effect attaches to the emitter and expires on its own
type equipSequence struct {
	spell   *spell.Descriptor
	strands []*equipStrand
	elapsed time.Duration
}

func newEquipSequence(o *Orchestrator, d *spell.Descriptor) *equipSequence {
	eq := o.cfg.Equip
	seq := &equipSequence{spell: d}
	if d.EquipEffect == "" {
		return seq
	}

	base := mgl64.Vec3{0, 0, -eq.WandLength}
	tip := mgl64.Vec3{}
	for i := 0; i < eq.Strands; i++ {
		seq.strands = append(seq.strands, &equipStrand{
			local: vmath.Helix(base, tip, vmath.HelixSpec{
				Points:      eq.HelixPoints,
				StartRadius: eq.StartRadius,
				EndRadius:   eq.EndRadius,
				Rotations:   eq.Rotations,
				PhaseDeg:    float64(i) * eq.StrandPhase,
			}),
			start: time.Duration(i) * eq.StrandDelay,
		})
	}
	return seq
}

func (q *equipSequence) step(o *Orchestrator, dt time.Duration) engine.StepStatus {
	q.elapsed += dt
	pose := o.emitter.Pose()
	if !pose.IsFinite() {
		return engine.Continue
	}
	span := o.cfg.Equip.SplineDuration

	pending := false
	for _, s := range q.strands {
		if s.done {
			continue
		}
		if q.elapsed < s.start {
			pending = true
			continue
		}

		t := 1.0
		if span > 0 {
			t = vmath.Clamp01(float64(q.elapsed-s.start) / float64(span))
		}
		p, tangent := vmath.PolylineAt(s.local, t)
		world := pose.Compose(vmath.Pose{Position: p, Rotation: vmath.LookRotation(tangent, vmath.AxisUp)})

		if s.handle == nil {
			h, err := o.spawn(q.spell.EquipEffect, world)
			if err != nil {
				log.Printf("[cast] %s: equip strand: %v", q.spell.Name, err)
				s.done = true
				continue
			}
			s.handle = h
		}
		s.handle.SetPose(world)

		if t >= 1 {
			s.handle.Teardown(q.spell.FadeOut)
			s.done = true
			continue
		}
		pending = true
	}
	if pending {
		return engine.Continue
	}

	q.attachTip(o)
	return engine.Done
}

// attachTip leaves the equip effect on the tip for EquipLifetime
func (q *equipSequence) attachTip(o *Orchestrator) {
	d := q.spell
	if d.EquipEffect == "" {
		return
	}
	h, err := o.spawn(d.EquipEffect, o.emitter.Pose())
	if err != nil {
		log.Printf("[cast] %s: equip tip: %v", d.Name, err)
		return
	}
	h.Attach(o.emitter, attached)
	o.effects.Schedule(h, o.cfg.Equip.Lifetime, d.FadeOut)
	o.equipFX = h
	o.equipFade = d.FadeOut
}

// teardown removes in-flight strands
func (q *equipSequence) teardown(force bool) {
	for _, s := range q.strands {
		if s.handle == nil {
			continue
		}
		if force {
			s.handle.ForceTeardown()
		} else {
			s.handle.Teardown(q.spell.FadeOut)
		}
	}
}
