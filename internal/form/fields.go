package form

// form control names, as posted by the page
const (
	// calorie form
	FieldAge       = "age"
	FieldGender    = "gender"
	FieldActivity  = "activity"
	FieldGoal      = "goal"
	FieldHeightCm  = "heightCm"
	FieldWeightKg  = "weightKg"
	FieldHeightFt  = "heightFt"
	FieldHeightIn  = "heightIn"
	FieldWeightLbs = "weightLbs"

	// workout form
	FieldWorkoutGender   = "workoutGender"
	FieldWorkoutGoal     = "workoutGoal"
	FieldExperience      = "experience"
	FieldEquipment       = "equipment"
	FieldDaysPerWeek     = "daysPerWeek"
	FieldSessionDuration = "sessionDuration"
)

// NumericFields are the inputs that get rounded when they lose focus.
var NumericFields = []string{
	FieldAge,
	FieldHeightCm,
	FieldWeightKg,
	FieldHeightFt,
	FieldHeightIn,
	FieldWeightLbs,
	FieldDaysPerWeek,
	FieldSessionDuration,
}

var unitFields = map[UnitSystem][]string{
	Metric:   {FieldHeightCm, FieldWeightKg},
	Imperial: {FieldHeightFt, FieldHeightIn, FieldWeightLbs},
}

// UnitFields returns the unit specific inputs of the given system.
func UnitFields(unit UnitSystem) []string {
	fields := unitFields[unit]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}
