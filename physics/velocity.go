package physics

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/spellcast/parameter"
	"github.com/lixenwraith/spellcast/vmath"
)

// VelocityConfig tunes release velocity estimation
type VelocityConfig struct {
	Capacity         int     // Ring buffer length
	OutlierThreshold float64 // Per-tick deltas longer than this are tracking glitches
	ForceMultiplier  float64
	MaxSpeed         float64 // Clamp on the final vector's magnitude
}

// DefaultVelocityConfig returns parameter defaults
func DefaultVelocityConfig() VelocityConfig {
	return VelocityConfig{
		Capacity:         parameter.VelocityHistorySize,
		OutlierThreshold: parameter.VelocityOutlierThreshold,
		ForceMultiplier:  parameter.ThrowForceMultiplier,
		MaxSpeed:         parameter.MaxThrowSpeed,
	}
}

// VelocityTracker keeps the most recent emitter positions in a ring buffer
// to estimate a throw velocity on release
type VelocityTracker struct {
	cfg VelocityConfig

	history []mgl64.Vec3
	head    int // Next write index
	count   int // Valid entries (0..Capacity)
	lastDt  time.Duration
}

// NewVelocityTracker allocates a tracker; capacity below 2 is raised to 2
func NewVelocityTracker(cfg VelocityConfig) *VelocityTracker {
	if cfg.Capacity < 2 {
		cfg.Capacity = 2
	}
	return &VelocityTracker{
		cfg:     cfg,
		history: make([]mgl64.Vec3, cfg.Capacity),
	}
}

// Record appends a position sampled dt after the previous one, overwriting the oldest
func (t *VelocityTracker) Record(position mgl64.Vec3, dt time.Duration) {
	t.history[t.head] = position
	t.head = (t.head + 1) % len(t.history)
	if t.count < len(t.history) {
		t.count++
	}
	t.lastDt = dt
}

// Len returns the number of recorded samples
func (t *VelocityTracker) Len() int {
	return t.count
}

// Reset discards history
func (t *VelocityTracker) Reset() {
	t.head = 0
	t.count = 0
	t.lastDt = 0
}

// EstimateReleaseVelocity averages per-tick deltas over the buffer, drops
// outliers, scales by the force multiplier over the last tick duration and
// clamps to MaxSpeed
// Returns zero with fewer than two samples, no accepted deltas, or dt <= 0
func (t *VelocityTracker) EstimateReleaseVelocity() mgl64.Vec3 {
	if t.count < 2 || t.lastDt <= 0 {
		return mgl64.Vec3{}
	}

	// Oldest entry: head when full, 0 otherwise
	n := len(t.history)
	oldest := 0
	if t.count == n {
		oldest = t.head
	}

	var sum mgl64.Vec3
	accepted := 0
	prev := t.history[oldest]
	for i := 1; i < t.count; i++ {
		cur := t.history[(oldest+i)%n]
		delta := cur.Sub(prev)
		prev = cur

		if t.cfg.OutlierThreshold > 0 && delta.Len() > t.cfg.OutlierThreshold {
			continue
		}
		sum = sum.Add(delta)
		accepted++
	}
	if accepted == 0 {
		return mgl64.Vec3{}
	}

	avg := sum.Mul(1 / float64(accepted))
	v := avg.Mul(t.cfg.ForceMultiplier / t.lastDt.Seconds())
	if !vmath.IsFinite(v) {
		return mgl64.Vec3{}
	}
	return vmath.ClampLength(v, t.cfg.MaxSpeed)
}
