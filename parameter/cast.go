package parameter

import "time"

// Projectile Spell
const (
	// ProjectileSpeed is the default travel speed along the curve (units/s)
	ProjectileSpeed = 10.0

	// MaxCastDistance is the default raycast reach for projectile and ray spells
	MaxCastDistance = 20.0

	// CurveHeight lifts the control point off the chord midpoint
	CurveHeight = 0.5

	// CurveVariance is the radius of random jitter added to the control point
	CurveVariance = 0.2

	// PathSamples is the polyline resolution for journey length estimation
	PathSamples = 20

	// OrientLookahead is the curve parameter step used to face the next sample
	OrientLookahead = 0.01

	// PressTimeout cancels press-type sessions that have not completed
	PressTimeout = 5 * time.Second
)

// Ray Spell
const (
	// RayPressDuration keeps a press-type ray's beam visible after its single raycast
	RayPressDuration = 500 * time.Millisecond

	// HitRefreshDistance is how far a ray hit point must move before a new hit effect spawns
	HitRefreshDistance = 0.25

	// HitEffectLifetime is the delay before a hit effect begins its fade teardown
	HitEffectLifetime = 2 * time.Second

	// RayRampTime is how long a held ray takes to reach maximum particle speed
	RayRampTime = 1500 * time.Millisecond
)

// Area Spell
const (
	// AreaRadius is the overlap sphere radius around the cast origin
	AreaRadius = 5.0

	// AreaDuration is how long overlap enumeration repeats
	AreaDuration = 2 * time.Second
)

// Utility Spells
const (
	// LightDuration is the lifetime of a press-type light before fading
	LightDuration = 10 * time.Second

	// LevitationBendStrength scales the downward sag of the levitation curve by distance
	LevitationBendStrength = 0.2

	// LevitationSmoothSpeed is the damping rate pulling the held body to its target (1/s)
	LevitationSmoothSpeed = 10.0

	// LevitationNoiseAmplitude is the periodic wobble added to the curve control point
	LevitationNoiseAmplitude = 0.03

	// LevitationNoiseFrequency is the wobble frequency (Hz)
	LevitationNoiseFrequency = 1.5

	// LevitationLineSamples is the number of segments in the levitation curve visual
	LevitationLineSamples = 16
)

// Velocity Tracker
const (
	// VelocityHistorySize is the ring buffer length of recorded emitter positions
	VelocityHistorySize = 5

	// VelocityOutlierThreshold rejects per-tick deltas longer than this (units)
	VelocityOutlierThreshold = 0.5

	// ThrowForceMultiplier scales the averaged hand velocity on release
	ThrowForceMultiplier = 1.5

	// MaxThrowSpeed clamps the release velocity magnitude (units/s)
	MaxThrowSpeed = 12.0
)

// Effect Fade
const (
	// DefaultFadeOutTime is used when a descriptor leaves fade-out unset
	DefaultFadeOutTime = 10 * time.Millisecond

	// FadeFloor is the residual lifetime/speed scale at the end of a fade
	FadeFloor = 0.01

	// ParticleSpeedMultiplier is the default starting particle speed scale
	ParticleSpeedMultiplier = 1.0

	// MaxParticleSpeedMultiplier is the default fully ramped particle speed scale
	MaxParticleSpeedMultiplier = 2.0
)

// Equip Effect
const (
	// EquipLifetime is how long the tip equip effect stays before fading
	EquipLifetime = 2 * time.Second

	// EquipSplineDuration is the travel time of each strand along its helix
	EquipSplineDuration = 500 * time.Millisecond

	// EquipStrandDelay staggers successive strands
	EquipStrandDelay = 100 * time.Millisecond

	// EquipStrands is the number of helix strands
	EquipStrands = 3

	// EquipStrandPhase separates strands around the axis (degrees)
	EquipStrandPhase = 120.0

	// EquipHelixPoints is the helix sampling resolution
	EquipHelixPoints = 30

	// EquipHelixStartRadius and EquipHelixEndRadius taper the helix toward the tip
	EquipHelixStartRadius = 0.05
	EquipHelixEndRadius   = 0.01

	// EquipHelixRotations is the number of turns per strand
	EquipHelixRotations = 2.0

	// WandLength is the base-to-tip distance the helix winds along
	WandLength = 0.3
)

// Aim Reticle
const (
	// AimDistance is the reach of the per-tick aim raycast
	AimDistance = 10.0
)
