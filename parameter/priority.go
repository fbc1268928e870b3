package parameter

// System Execution Priorities (lower runs first)
// Input handling strictly precedes cast state, which precedes effect pose updates
const (
	PriorityReticle = 5  // Aim raycast feeds the arbiter's aimed target
	PriorityTrigger = 10 // Raw press/hold/release translated to orchestrator calls
	PriorityCast    = 20
	PriorityEffect  = 30 // Attached pose resolution, fades, scheduled teardown
	PriorityArena   = 40 // Reference world integration after casting mutated bodies
)
