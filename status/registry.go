// Package status collects runtime counters and gauges for the casting core.
// Systems resolve metric pointers once at construction and write to them
// every tick; readers (HUD, tests) snapshot them in key order.
package status

import (
	"fmt"
	"sync/atomic"
)

// Metric keys written by the casting core
const (
	CastStarted   = "cast.started"
	CastRefreshed = "cast.refreshed"
	CastIgnored   = "cast.ignored"
	CastCompleted = "cast.completed"
	CastAborted   = "cast.aborted"
	CastState     = "cast.state"
	HitsSpawned   = "cast.hits"
	AreaPulses    = "cast.area_pulses"
	BodyCaptures  = "levitate.captures"
	BodyReleases  = "levitate.releases"
	ReleaseSpeed  = "levitate.release_speed"
	PeakRelease   = "levitate.peak_release"
	EffectsLive   = "effect.live"
	EffectsFading = "effect.fading"
	SpellSelected = "spell.selected"
	AimBody       = "aim.body"
	AudioCues     = "audio.cues"
	AudioLoops    = "audio.loops"
	AudioReady    = "audio.ready"

	EventsDispatched = "event.dispatched"
	EventsDropped    = "event.dropped"
)

// Registry groups metric maps by value type
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// Int returns the current value of an integer metric, zero when absent
func (r *Registry) Int(key string) int64 {
	if p, ok := r.Ints.Lookup(key); ok {
		return p.Load()
	}
	return 0
}

// Float returns the current value of a float metric, zero when absent
func (r *Registry) Float(key string) float64 {
	if p, ok := r.Floats.Lookup(key); ok {
		return p.Get()
	}
	return 0
}

// String returns the current value of a label metric, empty when absent
func (r *Registry) String(key string) string {
	if p, ok := r.Strings.Lookup(key); ok {
		return p.Load()
	}
	return ""
}

// Lines formats every metric as "key=value" in key order, grouped by type
func (r *Registry) Lines() []string {
	out := make([]string, 0, r.TotalCount())
	r.Strings.Range(func(k string, p *AtomicString) {
		out = append(out, fmt.Sprintf("%s=%s", k, p.Load()))
	})
	r.Ints.Range(func(k string, p *atomic.Int64) {
		out = append(out, fmt.Sprintf("%s=%d", k, p.Load()))
	})
	r.Floats.Range(func(k string, p *AtomicFloat) {
		out = append(out, fmt.Sprintf("%s=%.2f", k, p.Get()))
	})
	r.Bools.Range(func(k string, p *atomic.Bool) {
		out = append(out, fmt.Sprintf("%s=%t", k, p.Load()))
	})
	return out
}

// TotalCount returns the number of metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}
