package effect

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/spellcast/engine"
	"github.com/lixenwraith/spellcast/parameter"
	"github.com/lixenwraith/spellcast/status"
	"github.com/lixenwraith/spellcast/vmath"
)

// scheduled is a deferred teardown on the manager's clock
type scheduled struct {
	handle *Handle
	end    time.Duration
	fade   time.Duration
}

// Manager spawns handles, steps every live handle each tick, and tears
// down scheduled handles independently of whoever spawned them
type Manager struct {
	spawner Spawner

	handles  []*Handle
	pending  []scheduled
	elapsed  time.Duration // Manager clock: sum of tick deltas
	liveStat *atomic.Int64
	fadeStat *atomic.Int64
}

// NewManager creates a manager over spawner; reg may be nil
func NewManager(spawner Spawner, reg *status.Registry) *Manager {
	m := &Manager{spawner: spawner}
	if reg != nil {
		m.liveStat = reg.Ints.Get(status.EffectsLive)
		m.fadeStat = reg.Ints.Get(status.EffectsFading)
	}
	return m
}

func (m *Manager) Name() string { return "effect" }
func (m *Manager) Priority() int { return parameter.PriorityEffect }

// Spawn creates and tracks a handle for proto at pose
func (m *Manager) Spawn(proto Prototype, pose vmath.Pose) (*Handle, error) {
	if m.spawner == nil {
		return nil, ErrNoSpawner
	}
	if proto == "" {
		return nil, ErrNoPrototype
	}
	if !pose.IsFinite() {
		return nil, fmt.Errorf("spawn %s: non-finite pose", proto)
	}
	inst, err := m.spawner.Spawn(proto, pose)
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", proto, err)
	}
	h := newHandle(proto, inst, m.spawner, pose)
	m.handles = append(m.handles, h)
	return h, nil
}

// Schedule tears h down with the given fade once after has elapsed
// A handle may be scheduled more than once; the first due entry wins
func (m *Manager) Schedule(h *Handle, after, fade time.Duration) {
	if h == nil || !h.Alive() {
		return
	}
	m.pending = append(m.pending, scheduled{handle: h, end: m.elapsed + after, fade: fade})
}

// Update runs due teardowns, then steps every handle
func (m *Manager) Update(tick engine.Tick) {
	m.elapsed += tick.Delta

	kept := m.pending[:0]
	for _, s := range m.pending {
		switch {
		case !s.handle.Alive():
		case m.elapsed >= s.end:
			s.handle.Teardown(s.fade)
		default:
			kept = append(kept, s)
		}
	}
	m.pending = kept

	m.sweep(tick.Delta)
}

// ForceAll destroys every tracked handle immediately
func (m *Manager) ForceAll() {
	for _, h := range m.handles {
		h.ForceTeardown()
	}
	m.handles = m.handles[:0]
	m.pending = m.pending[:0]
	m.publish()
}

// Live returns the number of handles not yet destroyed
func (m *Manager) Live() int {
	n := 0
	for _, h := range m.handles {
		if h.Alive() {
			n++
		}
	}
	return n
}

// Pending returns the number of outstanding scheduled teardowns
func (m *Manager) Pending() int {
	return len(m.pending)
}

func (m *Manager) sweep(dt time.Duration) {
	kept := m.handles[:0]
	for _, h := range m.handles {
		if h.Step(dt) == engine.Continue {
			kept = append(kept, h)
		}
	}
	// Drop references held past the new length
	for i := len(kept); i < len(m.handles); i++ {
		m.handles[i] = nil
	}
	m.handles = kept
	m.publish()
}

func (m *Manager) publish() {
	if m.liveStat == nil {
		return
	}
	fading := 0
	for _, h := range m.handles {
		if h.Fading() {
			fading++
		}
	}
	m.liveStat.Store(int64(len(m.handles)))
	m.fadeStat.Store(int64(fading))
}
