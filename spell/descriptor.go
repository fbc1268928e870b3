// Package spell holds the authored spell table: immutable descriptors loaded
// once from YAML and shared by pointer across every cast.
package spell

import (
	"fmt"
	"time"

	"github.com/lixenwraith/spellcast/effect"
	"github.com/lixenwraith/spellcast/parameter"
)

// ID is a stable spell identifier assigned in load order, starting at 1
type ID int

// Descriptor is one authored spell; read-only after loading
type Descriptor struct {
	ID          ID     `yaml:"-"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	EquipEffect effect.Prototype `yaml:"equip_effect"`
	CastEffect  effect.Prototype `yaml:"cast_effect"`
	HitEffect   effect.Prototype `yaml:"hit_effect"`
	LineEffect  effect.Prototype `yaml:"line_effect"` // Beam or levitation curve

	CastType CastType    `yaml:"cast_type"`
	Trigger  TriggerType `yaml:"trigger"`
	Utility  UtilityKind `yaml:"utility"`

	Speed         float64       `yaml:"speed"`
	MaxRange      float64       `yaml:"max_range"`
	CurveHeight   float64       `yaml:"curve_height"`
	CurveVariance float64       `yaml:"curve_variance"`
	FadeOut       time.Duration `yaml:"fade_out"`
	Duration      time.Duration `yaml:"duration"` // Press-type area/light lifetime

	LevitationBend   float64 `yaml:"levitation_bend"`
	LevitationSmooth float64 `yaml:"levitation_smooth"`

	ParticleSpeed    float64 `yaml:"particle_speed"`
	MaxParticleSpeed float64 `yaml:"max_particle_speed"`

	CastSound  string  `yaml:"cast_sound"`
	HitSound   string  `yaml:"hit_sound"`
	LoopCast   bool    `yaml:"loop_cast_sound"`
	CastVolume float64 `yaml:"cast_volume"`
	HitVolume  float64 `yaml:"hit_volume"`
}

// IsHold reports whether the spell sustains while the trigger is held
func (d *Descriptor) IsHold() bool {
	return d.Trigger == Hold
}

// applyDefaults fills unset tunables; CurveHeight and CurveVariance keep zero
func (d *Descriptor) applyDefaults() {
	if d.Speed == 0 {
		d.Speed = parameter.ProjectileSpeed
	}
	if d.MaxRange == 0 {
		d.MaxRange = parameter.MaxCastDistance
	}
	if d.FadeOut == 0 {
		d.FadeOut = parameter.DefaultFadeOutTime
	}
	if d.LevitationBend == 0 {
		d.LevitationBend = parameter.LevitationBendStrength
	}
	if d.LevitationSmooth == 0 {
		d.LevitationSmooth = parameter.LevitationSmoothSpeed
	}
	if d.ParticleSpeed == 0 {
		d.ParticleSpeed = parameter.ParticleSpeedMultiplier
	}
	if d.MaxParticleSpeed == 0 {
		d.MaxParticleSpeed = parameter.MaxParticleSpeedMultiplier
	}
	if d.CastVolume == 0 {
		d.CastVolume = 1
	}
	if d.HitVolume == 0 {
		d.HitVolume = 1
	}
}

// Validate checks internal consistency
func (d *Descriptor) Validate() error {
	switch {
	case d.Name == "":
		return fmt.Errorf("%w: missing name", ErrInvalidSpell)
	case d.Speed < 0 || d.MaxRange < 0 || d.CurveVariance < 0:
		return fmt.Errorf("%w: %s: negative speed, range or variance", ErrInvalidSpell, d.Name)
	case d.FadeOut < 0 || d.Duration < 0:
		return fmt.Errorf("%w: %s: negative duration", ErrInvalidSpell, d.Name)
	case d.CastVolume < 0 || d.CastVolume > 1 || d.HitVolume < 0 || d.HitVolume > 1:
		return fmt.Errorf("%w: %s: volume outside [0,1]", ErrInvalidSpell, d.Name)
	case d.CastType == Utility && d.Utility == UtilityNone:
		return fmt.Errorf("%w: %s: utility spell without utility kind", ErrInvalidSpell, d.Name)
	case d.CastType != Utility && d.Utility != UtilityNone:
		return fmt.Errorf("%w: %s: utility kind on %s spell", ErrInvalidSpell, d.Name, d.CastType)
	}
	return nil
}
