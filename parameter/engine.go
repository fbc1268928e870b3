package parameter

import "time"

// Game Loop & Engine Timing
const (
	// TickRate is the default cast simulation rate (ticks per second)
	TickRate = 60

	// TickInterval is the fixed logic step derived from TickRate
	TickInterval = time.Second / TickRate

	// MaxTickDelta caps a single step after stalls (debugger, suspend)
	MaxTickDelta = 100 * time.Millisecond
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)
