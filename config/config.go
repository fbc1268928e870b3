// Package config loads runtime settings with viper: parameter defaults, an
// optional YAML/TOML/JSON file, then SPELLCAST_* environment overrides
// (SPELLCAST_CAST_PRESS_TIMEOUT=3s overrides cast.press_timeout).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/spellcast/parameter"
	"github.com/lixenwraith/spellcast/physics"
)

// EnvPrefix namespaces environment overrides
const EnvPrefix = "SPELLCAST"

type Engine struct {
	TickRate int `mapstructure:"tick_rate"`
}

// TickInterval converts TickRate to a step duration
func (e Engine) TickInterval() time.Duration {
	if e.TickRate <= 0 {
		return parameter.TickInterval
	}
	return time.Second / time.Duration(e.TickRate)
}

type Cast struct {
	PathSamples        int           `mapstructure:"path_samples"`
	PressTimeout       time.Duration `mapstructure:"press_timeout"`
	RayPressDuration   time.Duration `mapstructure:"ray_press_duration"`
	RayRampTime        time.Duration `mapstructure:"ray_ramp_time"`
	HitEffectLifetime  time.Duration `mapstructure:"hit_effect_lifetime"`
	HitRefreshDistance float64       `mapstructure:"hit_refresh_distance"`
	AreaRadius         float64       `mapstructure:"area_radius"`
	AreaDuration       time.Duration `mapstructure:"area_duration"`
	LightDuration      time.Duration `mapstructure:"light_duration"`
	Seed               uint64        `mapstructure:"seed"` // Curve jitter; 0 picks from the clock
}

type Velocity struct {
	HistorySize      int     `mapstructure:"history_size"`
	OutlierThreshold float64 `mapstructure:"outlier_threshold"`
	ForceMultiplier  float64 `mapstructure:"force_multiplier"`
	MaxSpeed         float64 `mapstructure:"max_speed"`
}

// Tracker converts to the velocity tracker's configuration
func (v Velocity) Tracker() physics.VelocityConfig {
	return physics.VelocityConfig{
		Capacity:         v.HistorySize,
		OutlierThreshold: v.OutlierThreshold,
		ForceMultiplier:  v.ForceMultiplier,
		MaxSpeed:         v.MaxSpeed,
	}
}

type Levitation struct {
	NoiseAmplitude float64 `mapstructure:"noise_amplitude"`
	NoiseFrequency float64 `mapstructure:"noise_frequency"`
	LineSamples    int     `mapstructure:"line_samples"`
}

type Equip struct {
	Lifetime       time.Duration `mapstructure:"lifetime"`
	SplineDuration time.Duration `mapstructure:"spline_duration"`
	StrandDelay    time.Duration `mapstructure:"strand_delay"`
	Strands        int           `mapstructure:"strands"`
	StrandPhase    float64       `mapstructure:"strand_phase"`
	HelixPoints    int           `mapstructure:"helix_points"`
	StartRadius    float64       `mapstructure:"start_radius"`
	EndRadius      float64       `mapstructure:"end_radius"`
	Rotations      float64       `mapstructure:"rotations"`
	WandLength     float64       `mapstructure:"wand_length"`
}

type Aim struct {
	Distance float64 `mapstructure:"distance"`
	Reticle  string  `mapstructure:"reticle"` // Effect prototype; empty disables the reticle
}

type Audio struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"` // Master, 0..1
}

type Catalog struct {
	Path string `mapstructure:"path"` // Empty uses the built-in catalog
}

// Config is the full settings tree
type Config struct {
	Engine     Engine     `mapstructure:"engine"`
	Cast       Cast       `mapstructure:"cast"`
	Velocity   Velocity   `mapstructure:"velocity"`
	Levitation Levitation `mapstructure:"levitation"`
	Equip      Equip      `mapstructure:"equip"`
	Aim        Aim        `mapstructure:"aim"`
	Audio      Audio      `mapstructure:"audio"`
	Catalog    Catalog    `mapstructure:"catalog"`
	Debug      bool       `mapstructure:"debug"`
}

// defaults maps every key to its parameter value
// Every key must appear here for environment overrides to bind
var defaults = map[string]any{
	"engine.tick_rate": parameter.TickRate,

	"cast.path_samples":         parameter.PathSamples,
	"cast.press_timeout":        parameter.PressTimeout,
	"cast.ray_press_duration":   parameter.RayPressDuration,
	"cast.ray_ramp_time":        parameter.RayRampTime,
	"cast.hit_effect_lifetime":  parameter.HitEffectLifetime,
	"cast.hit_refresh_distance": parameter.HitRefreshDistance,
	"cast.area_radius":          parameter.AreaRadius,
	"cast.area_duration":        parameter.AreaDuration,
	"cast.light_duration":       parameter.LightDuration,
	"cast.seed":                 uint64(0),

	"velocity.history_size":      parameter.VelocityHistorySize,
	"velocity.outlier_threshold": parameter.VelocityOutlierThreshold,
	"velocity.force_multiplier":  parameter.ThrowForceMultiplier,
	"velocity.max_speed":         parameter.MaxThrowSpeed,

	"levitation.noise_amplitude": parameter.LevitationNoiseAmplitude,
	"levitation.noise_frequency": parameter.LevitationNoiseFrequency,
	"levitation.line_samples":    parameter.LevitationLineSamples,

	"equip.lifetime":        parameter.EquipLifetime,
	"equip.spline_duration": parameter.EquipSplineDuration,
	"equip.strand_delay":    parameter.EquipStrandDelay,
	"equip.strands":         parameter.EquipStrands,
	"equip.strand_phase":    parameter.EquipStrandPhase,
	"equip.helix_points":    parameter.EquipHelixPoints,
	"equip.start_radius":    parameter.EquipHelixStartRadius,
	"equip.end_radius":      parameter.EquipHelixEndRadius,
	"equip.rotations":       parameter.EquipHelixRotations,
	"equip.wand_length":     parameter.WandLength,

	"aim.distance": parameter.AimDistance,
	"aim.reticle":  "reticle",

	"audio.enabled": true,
	"audio.volume":  1.0,

	"catalog.path": "",
	"debug":        false,
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Default returns parameter defaults without reading files or environment
func Default() Config {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		panic(fmt.Sprintf("config: default table does not decode: %v", err))
	}
	return c
}

// Load reads path (when non-empty) over the defaults, applies environment
// overrides and validates the result
func Load(path string) (Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the casting core cannot run with
func (c Config) Validate() error {
	switch {
	case c.Engine.TickRate <= 0:
		return fmt.Errorf("config: engine.tick_rate must be positive, got %d", c.Engine.TickRate)
	case c.Cast.PathSamples <= 0:
		return fmt.Errorf("config: cast.path_samples must be positive, got %d", c.Cast.PathSamples)
	case c.Cast.PressTimeout <= 0:
		return fmt.Errorf("config: cast.press_timeout must be positive, got %v", c.Cast.PressTimeout)
	case c.Cast.HitRefreshDistance < 0 || c.Cast.AreaRadius <= 0:
		return fmt.Errorf("config: cast distances out of range")
	case c.Velocity.HistorySize < 2:
		return fmt.Errorf("config: velocity.history_size must be at least 2, got %d", c.Velocity.HistorySize)
	case c.Velocity.MaxSpeed <= 0:
		return fmt.Errorf("config: velocity.max_speed must be positive, got %v", c.Velocity.MaxSpeed)
	case c.Equip.Strands < 0 || c.Equip.HelixPoints < 2:
		return fmt.Errorf("config: equip helix needs at least 2 points and non-negative strands")
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("config: audio.volume must be within [0,1], got %v", c.Audio.Volume)
	}
	return nil
}
