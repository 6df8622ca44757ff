package fitapi

import "fmt"

func malformed(field string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformedResponse, field)
}

// Validate checks the fields the calorie result view cannot do without.
func (r *CalorieResponse) Validate() error {
	if r == nil {
		return malformed("body")
	}
	switch {
	case r.BMR == nil:
		return malformed("bmr")
	case r.TDEE == nil:
		return malformed("tdee")
	case r.TargetCalories == nil:
		return malformed("target_calories")
	case r.Macros == nil:
		return malformed("macros")
	case r.Recommendations == nil:
		return malformed("recommendations")
	}

	macros := []struct {
		name  string
		macro *Macro
	}{
		{"protein", r.Macros.Protein},
		{"carbs", r.Macros.Carbs},
		{"fats", r.Macros.Fats},
	}
	for _, m := range macros {
		if m.macro == nil {
			return malformed("macros." + m.name)
		}
		if m.macro.Grams == nil {
			return malformed("macros." + m.name + ".grams")
		}
	}

	return nil
}

// Validate checks the fields the workout plan view cannot do without.
// Optional exercise details (subcategory, images, ...) are not checked, their
// absence only hides the matching sub section.
func (r *WorkoutResponse) Validate() error {
	if r == nil {
		return malformed("body")
	}
	switch {
	case r.Split == nil || r.Split.Name == "":
		return malformed("split.name")
	case r.Parameters == nil || r.Parameters.Goal == "":
		return malformed("parameters.goal")
	case r.Workouts == nil:
		return malformed("workouts")
	}

	for i, day := range r.Workouts {
		if day.Day == "" {
			return malformed(fmt.Sprintf("workouts[%d].day", i))
		}
		for j, ex := range day.Exercises {
			path := fmt.Sprintf("workouts[%d].exercises[%d]", i, j)
			switch {
			case ex.Sets == nil:
				return malformed(path + ".sets")
			case ex.Reps == nil:
				return malformed(path + ".reps")
			case ex.RestSeconds == nil:
				return malformed(path + ".rest_seconds")
			}
			if err := ex.Exercise.Validate(); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	return r.Progression.Validate()
}

func (e *ExerciseInfo) Validate() error {
	switch {
	case e == nil:
		return malformed("exercise")
	case e.Name == "":
		return malformed("exercise.name")
	case e.MuscleGroup == "":
		return malformed("exercise.muscle_group")
	}
	return nil
}

func (p *Progression) Validate() error {
	switch {
	case p == nil:
		return malformed("progression")
	case p.Method == "":
		return malformed("progression.method")
	case p.Increment == "":
		return malformed("progression.increment")
	case p.Deload == "":
		return malformed("progression.deload")
	}
	return nil
}
