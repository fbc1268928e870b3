// Package engine drives the casting core with a fixed, single-threaded tick.
// Each tick first drains the event queue through the router, then updates
// systems in ascending priority order. Long-running behavior is expressed as
// step functions returning Continue or Done; nothing blocks inside a tick.
package engine

import (
	"context"
	"sort"
	"time"

	"github.com/lixenwraith/spellcast/event"
	"github.com/lixenwraith/spellcast/parameter"
)

// StepStatus is the result of one resumable step
type StepStatus int

const (
	Continue StepStatus = iota
	Done
)

// Tick is the frame context handed to systems
type Tick struct {
	Frame int64
	Now   time.Time
	Delta time.Duration // Clamped to parameter.MaxTickDelta
}

// Seconds returns Delta as float seconds
func (t Tick) Seconds() float64 {
	return t.Delta.Seconds()
}

// System is a per-tick participant
type System interface {
	Name() string
	Priority() int // Lower runs first
	Update(tick Tick)
}

// Loop owns the tick sequence
type Loop struct {
	clock   Clock
	router  *event.Router
	systems []System

	frame int64
	last  time.Time
}

// NewLoop creates a loop; router may be nil when nothing is event driven
func NewLoop(clock Clock, router *event.Router) *Loop {
	return &Loop{clock: clock, router: router}
}

// AddSystem registers s keeping priority order; equal priorities keep insertion order
func (l *Loop) AddSystem(s System) {
	l.systems = append(l.systems, s)
	sort.SliceStable(l.systems, func(i, j int) bool {
		return l.systems[i].Priority() < l.systems[j].Priority()
	})
}

// Systems returns registered systems in update order
func (l *Loop) Systems() []System {
	out := make([]System, len(l.systems))
	copy(out, l.systems)
	return out
}

// Frame returns the number of completed ticks
func (l *Loop) Frame() int64 {
	return l.frame
}

// Step runs one tick at the clock's current time
// The first tick has zero delta
func (l *Loop) Step() Tick {
	now := l.clock.Now()
	var dt time.Duration
	if !l.last.IsZero() {
		dt = now.Sub(l.last)
		if dt < 0 {
			dt = 0
		}
		if dt > parameter.MaxTickDelta {
			dt = parameter.MaxTickDelta
		}
	}
	l.last = now
	l.frame++

	tick := Tick{Frame: l.frame, Now: now, Delta: dt}
	if l.router != nil {
		l.router.DispatchAll()
	}
	for _, s := range l.systems {
		s.Update(tick)
	}
	return tick
}

// Run ticks every interval until ctx is cancelled
// afterTick, when non-nil, runs on the loop goroutine after each tick
func (l *Loop) Run(ctx context.Context, interval time.Duration, afterTick func(Tick)) error {
	if interval <= 0 {
		interval = parameter.TickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			tick := l.Step()
			if afterTick != nil {
				afterTick(tick)
			}
		}
	}
}
