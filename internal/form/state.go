package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/2beens/fitmentor/internal/units"
)

type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

var ErrUnknownUnitSystem = errors.New("unknown unit system")

func ParseUnitSystem(s string) (UnitSystem, error) {
	switch UnitSystem(strings.ToLower(strings.TrimSpace(s))) {
	case Metric:
		return Metric, nil
	case Imperial:
		return Imperial, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownUnitSystem, s)
	}
}

func (u UnitSystem) String() string {
	return string(u)
}

// State tracks the active unit system of the calorie form and which of the
// unit specific inputs are required / hidden.
// It is owned by a single page (session) and is not safe for concurrent use.
type State struct {
	activeUnit UnitSystem
	required   map[string]bool
	hidden     map[UnitSystem]bool
}

func NewState() *State {
	s := &State{
		required: make(map[string]bool),
		hidden:   make(map[UnitSystem]bool),
	}
	// cannot fail for a known unit system
	_ = s.SwitchUnits(Metric)
	return s
}

func (s *State) ActiveUnit() UnitSystem {
	return s.activeUnit
}

// SwitchUnits makes exactly the fields of the target system required,
// and marks the other group as not required and hidden.
func (s *State) SwitchUnits(target UnitSystem) error {
	if _, ok := unitFields[target]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownUnitSystem, target)
	}

	s.activeUnit = target
	for unit, fields := range unitFields {
		active := unit == target
		for _, f := range fields {
			s.required[f] = active
		}
		s.hidden[unit] = !active
	}

	return nil
}

func (s *State) IsRequired(field string) bool {
	return s.required[field]
}

// RequiredFields returns the required unit specific fields, metric group first.
func (s *State) RequiredFields() []string {
	var out []string
	for _, unit := range []UnitSystem{Metric, Imperial} {
		for _, f := range unitFields[unit] {
			if s.required[f] {
				out = append(out, f)
			}
		}
	}
	return out
}

func (s *State) IsHidden(group UnitSystem) bool {
	return s.hidden[group]
}

// RoundOnBlur rounds a numeric input value to one decimal place.
// Non numeric values are returned unchanged.
func RoundOnBlur(rawValue string) string {
	trimmed := strings.TrimSpace(rawValue)
	if trimmed == "" {
		return rawValue
	}

	x, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return rawValue
	}

	return strconv.FormatFloat(units.RoundToOneDecimal(x), 'f', -1, 64)
}
