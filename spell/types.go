package spell

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownCastType = errors.New("unknown cast type")
	ErrUnknownTrigger  = errors.New("unknown trigger type")
	ErrUnknownUtility  = errors.New("unknown utility kind")
	ErrUnknownSpell    = errors.New("unknown spell")
	ErrDuplicateSpell  = errors.New("duplicate spell")
	ErrInvalidSpell    = errors.New("invalid spell")
)

// CastType selects the casting algorithm
type CastType int

const (
	Projectile CastType = iota
	Ray
	Area
	Utility
)

var castTypeNames = [...]string{"projectile", "ray", "area", "utility"}

func (c CastType) String() string {
	if c >= 0 && int(c) < len(castTypeNames) {
		return castTypeNames[c]
	}
	return fmt.Sprintf("CastType(%d)", int(c))
}

// ParseCastType is case-insensitive
func ParseCastType(s string) (CastType, error) {
	for i, n := range castTypeNames {
		if strings.EqualFold(s, n) {
			return CastType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCastType, s)
}

func (c *CastType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := ParseCastType(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = v
	return nil
}

// TriggerType selects press-to-fire or hold-to-sustain
type TriggerType int

const (
	Press TriggerType = iota
	Hold
)

func (t TriggerType) String() string {
	switch t {
	case Press:
		return "press"
	case Hold:
		return "hold"
	}
	return fmt.Sprintf("TriggerType(%d)", int(t))
}

func ParseTriggerType(s string) (TriggerType, error) {
	switch strings.ToLower(s) {
	case "press":
		return Press, nil
	case "hold":
		return Hold, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTrigger, s)
}

func (t *TriggerType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := ParseTriggerType(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*t = v
	return nil
}

// UtilityKind selects the stateful behavior of a Utility spell
type UtilityKind int

const (
	UtilityNone UtilityKind = iota
	UtilityLight
	UtilityLevitate
)

func (u UtilityKind) String() string {
	switch u {
	case UtilityNone:
		return "none"
	case UtilityLight:
		return "light"
	case UtilityLevitate:
		return "levitate"
	}
	return fmt.Sprintf("UtilityKind(%d)", int(u))
}

func ParseUtilityKind(s string) (UtilityKind, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return UtilityNone, nil
	case "light":
		return UtilityLight, nil
	case "levitate":
		return UtilityLevitate, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUtility, s)
}

func (u *UtilityKind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := ParseUtilityKind(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*u = v
	return nil
}
