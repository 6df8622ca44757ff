package fitapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type CalorieRequest struct {
	Age           int     `json:"age"`
	Height        float64 `json:"height"` // cm
	Weight        float64 `json:"weight"` // kg
	Gender        string  `json:"gender"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"`
}

type WorkoutRequest struct {
	Gender          string   `json:"gender,omitempty"`
	Goal            string   `json:"goal"`
	Experience      string   `json:"experience"`
	Equipment       []string `json:"equipment"`
	DaysPerWeek     int      `json:"days_per_week"`
	SessionDuration int      `json:"session_duration"` // minutes
}

// required numeric fields are pointers, so a missing field can be told apart from a zero
type CalorieResponse struct {
	BMR             *float64 `json:"bmr"`
	TDEE            *float64 `json:"tdee"`
	TargetCalories  *float64 `json:"target_calories"`
	Macros          *Macros  `json:"macros"`
	Recommendations []string `json:"recommendations"`
}

type Macros struct {
	Protein *Macro `json:"protein"`
	Carbs   *Macro `json:"carbs"`
	Fats    *Macro `json:"fats"`
}

type Macro struct {
	Grams      *float64 `json:"grams"`
	Percentage *float64 `json:"percentage,omitempty"`
}

type WorkoutResponse struct {
	Split       *Split          `json:"split"`
	Parameters  *PlanParameters `json:"parameters"`
	Workouts    []WorkoutDay    `json:"workouts"`
	Progression *Progression    `json:"progression"`
}

type Split struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type PlanParameters struct {
	Goal              string `json:"goal"`
	Experience        string `json:"experience,omitempty"`
	DaysPerWeek       int    `json:"days_per_week,omitempty"`
	EstimatedDuration int    `json:"estimated_duration,omitempty"`
	Gender            string `json:"gender,omitempty"`
}

type WorkoutDay struct {
	Day       string                 `json:"day"`
	Exercises []ExercisePrescription `json:"exercises"`
}

type ExercisePrescription struct {
	Sets          *int          `json:"sets"`
	Reps          *Reps         `json:"reps"`
	RestSeconds   *int          `json:"rest_seconds"`
	Exercise      *ExerciseInfo `json:"exercise"`
	WarmupSets    string        `json:"warmup_sets,omitempty"`
	RepsInReserve *Reps         `json:"repsInReserve,omitempty"`
}

type ExerciseInfo struct {
	ID               int      `json:"id,omitempty"`
	Name             string   `json:"name"`
	MuscleGroup      string   `json:"muscle_group"`
	Type             string   `json:"type,omitempty"`
	Subcategory      string   `json:"subcategory,omitempty"`
	SecondaryMuscles []string `json:"secondary_muscles,omitempty"`
	Description      string   `json:"description,omitempty"`
	StartImage       string   `json:"start_image,omitempty"`
	EndImage         string   `json:"end_image,omitempty"`
	Equipment        []string `json:"equipment,omitempty"`
	Difficulty       string   `json:"difficulty,omitempty"`
	Category         string   `json:"category,omitempty"`
	Rest             int      `json:"rest,omitempty"`
}

type Progression struct {
	Method    string   `json:"method"`
	Increment string   `json:"increment"`
	Deload    string   `json:"deload"`
	Tips      []string `json:"tips,omitempty"`
}

// Reps is a rep prescription, sent by the service either as a number (8)
// or as a range / duration string ("8-12", "30-60s").
type Reps struct {
	value string
}

func NewReps(value string) Reps {
	return Reps{value: value}
}

func (r Reps) String() string {
	return r.value
}

func (r *Reps) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("reps string: %w", err)
		}
		r.value = s
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("reps number: %w", err)
	}
	r.value = n.String()
	return nil
}

func (r Reps) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(r.value); err == nil {
		return json.Marshal(n)
	}
	return json.Marshal(r.value)
}
