package builder

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/2beens/fitmentor/internal/fitapi"
	"github.com/2beens/fitmentor/internal/form"
	"github.com/2beens/fitmentor/internal/units"
)

const DefaultSessionDuration = 60 // minutes

// WorkoutOptions select between the two workout form layouts: with or
// without the gender select, and with a session duration input or a fixed
// duration.
type WorkoutOptions struct {
	IncludeGender               bool
	IncludeSessionDurationField bool
	DefaultSessionDuration      int
}

func DefaultWorkoutOptions() WorkoutOptions {
	return WorkoutOptions{
		IncludeGender:          true,
		DefaultSessionDuration: DefaultSessionDuration,
	}
}

// BuildCalorieRequest normalizes the calorie form into a metric request.
// Only the fields of the active unit system are read.
func BuildCalorieRequest(fields url.Values, activeUnit form.UnitSystem) (fitapi.CalorieRequest, error) {
	age, err := integerField(fields, form.FieldAge)
	if err != nil {
		return fitapi.CalorieRequest{}, err
	}

	var height, weight float64
	switch activeUnit {
	case form.Metric:
		if height, err = floatField(fields, form.FieldHeightCm); err != nil {
			return fitapi.CalorieRequest{}, err
		}
		if weight, err = floatField(fields, form.FieldWeightKg); err != nil {
			return fitapi.CalorieRequest{}, err
		}
	case form.Imperial:
		feet, err := integerField(fields, form.FieldHeightFt)
		if err != nil {
			return fitapi.CalorieRequest{}, err
		}
		inches, err := integerField(fields, form.FieldHeightIn)
		if err != nil {
			return fitapi.CalorieRequest{}, err
		}
		lbs, err := floatField(fields, form.FieldWeightLbs)
		if err != nil {
			return fitapi.CalorieRequest{}, err
		}
		height = units.RoundToInteger(units.FeetInchesToCentimeters(feet, inches))
		weight = units.RoundToOneDecimal(units.PoundsToKilograms(lbs))
	default:
		return fitapi.CalorieRequest{}, fmt.Errorf("%w: %q", form.ErrUnknownUnitSystem, activeUnit)
	}

	req := fitapi.CalorieRequest{
		Age:    age,
		Height: height,
		Weight: weight,
	}
	if req.Gender, err = textField(fields, form.FieldGender); err != nil {
		return fitapi.CalorieRequest{}, err
	}
	if req.ActivityLevel, err = textField(fields, form.FieldActivity); err != nil {
		return fitapi.CalorieRequest{}, err
	}
	if req.Goal, err = textField(fields, form.FieldGoal); err != nil {
		return fitapi.CalorieRequest{}, err
	}

	return req, nil
}

// BuildWorkoutRequest collects the workout form. An empty equipment selection
// is a validation failure, the form must not be submitted without equipment.
func BuildWorkoutRequest(fields url.Values, opts WorkoutOptions) (fitapi.WorkoutRequest, error) {
	equipment := checkedOptions(fields[form.FieldEquipment])
	if len(equipment) == 0 {
		return fitapi.WorkoutRequest{}, &ValidationError{
			Field:   form.FieldEquipment,
			Message: "Please select at least one equipment option",
		}
	}

	req := fitapi.WorkoutRequest{Equipment: equipment}

	var err error
	if opts.IncludeGender {
		if req.Gender, err = textField(fields, form.FieldWorkoutGender); err != nil {
			return fitapi.WorkoutRequest{}, err
		}
	}
	if req.Goal, err = textField(fields, form.FieldWorkoutGoal); err != nil {
		return fitapi.WorkoutRequest{}, err
	}
	if req.Experience, err = textField(fields, form.FieldExperience); err != nil {
		return fitapi.WorkoutRequest{}, err
	}
	if req.DaysPerWeek, err = integerField(fields, form.FieldDaysPerWeek); err != nil {
		return fitapi.WorkoutRequest{}, err
	}

	if opts.IncludeSessionDurationField {
		if req.SessionDuration, err = integerField(fields, form.FieldSessionDuration); err != nil {
			return fitapi.WorkoutRequest{}, err
		}
	} else {
		req.SessionDuration = opts.DefaultSessionDuration
		if req.SessionDuration <= 0 {
			req.SessionDuration = DefaultSessionDuration
		}
	}

	return req, nil
}

// checkedOptions drops empty values and duplicates, keeping the first seen order.
func checkedOptions(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func textField(fields url.Values, name string) (string, error) {
	v := fields.Get(name)
	if strings.TrimSpace(v) == "" {
		return "", missingField(name)
	}
	return v, nil
}

func floatField(fields url.Values, name string) (float64, error) {
	raw := strings.TrimSpace(fields.Get(name))
	if raw == "" {
		return 0, missingField(name)
	}
	x, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, notANumber(name, raw)
	}
	return x, nil
}

// integerField accepts "5" as well as "5.0" / "5.7" (truncated to 5), the
// inputs may have been rounded to one decimal when they lost focus.
func integerField(fields url.Values, name string) (int, error) {
	raw := strings.TrimSpace(fields.Get(name))
	if raw == "" {
		return 0, missingField(name)
	}
	if n, err := strconv.ParseInt(raw, 10, 32); err == nil {
		return int(n), nil
	}
	x, err := floatField(fields, name)
	if err != nil {
		return 0, err
	}
	if x > math.MaxInt32 || x < math.MinInt32 {
		return 0, outOfRange(name, raw)
	}
	return int(math.Trunc(x)), nil
}
