package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/2beens/fitmentor/internal/fitapi"
	"github.com/2beens/fitmentor/internal/view"
)

const (
	WorkoutResultsID = "workoutResults"
	WorkoutPlanID    = "workoutPlan"
)

// ExerciseFormPath is the location of the form overlay for the exercise at
// index in the given workout day.
func ExerciseFormPath(day, index int) string {
	return fmt.Sprintf("/exercise/%d/%d", day, index)
}

// WorkoutResult builds the workout plan area: split, goal label, one block per
// day with one row per exercise, then the progression section. Days and
// exercises keep the order of the response.
func WorkoutResult(data *fitapi.WorkoutResponse, layout Layout) (view.Node, error) {
	if err := data.Validate(); err != nil {
		return view.Node{}, err
	}

	header := []view.Node{
		view.TextElement("h3", data.Split.Name).WithID("splitName"),
	}
	if data.Split.Description != "" {
		header = append(header, view.TextElement("p", data.Split.Description).WithID("splitDescription"))
	}
	header = append(header,
		view.Element("div",
			view.TextElement("span", "Goal: ").WithClass("plan-label"),
			view.TextElement("span", FormatGoalName(data.Parameters.Goal)).WithID("planGoal"),
		).WithClass("plan-goal"),
	)
	if params := planParameters(data.Parameters); len(params) > 0 {
		header = append(header, view.Element("ul", params...).WithID("planParameters").WithClass("plan-parameters"))
	}

	days := make([]view.Node, 0, len(data.Workouts))
	for i, day := range data.Workouts {
		days = append(days, workoutDay(i, day, layout))
	}

	children := append(header,
		view.Element("div", days...).WithID(WorkoutPlanID),
		view.TextElement("h4", "Progression"),
		Progression(*data.Progression),
	)

	return view.Element("div", children...).WithID(WorkoutResultsID).WithClass("results"), nil
}

func planParameters(p *fitapi.PlanParameters) []view.Node {
	var items []view.Node
	if p.Experience != "" {
		items = append(items, view.TextElement("li", "Experience: "+capitalize(p.Experience)))
	}
	if p.DaysPerWeek > 0 {
		items = append(items, view.TextElement("li", fmt.Sprintf("%d days/week", p.DaysPerWeek)))
	}
	if p.EstimatedDuration > 0 {
		items = append(items, view.TextElement("li", fmt.Sprintf("~%d min per session", p.EstimatedDuration)))
	}
	return items
}

func workoutDay(dayIndex int, day fitapi.WorkoutDay, layout Layout) view.Node {
	items := make([]view.Node, 0, len(day.Exercises))
	for i, ex := range day.Exercises {
		items = append(items, exerciseItem(dayIndex, i, ex, layout))
	}
	return view.Element("div",
		view.TextElement("h4", day.Day),
		view.Element("div", items...).WithClass("exercise-list"),
	).WithClass("workout-day")
}

func exerciseItem(dayIndex, index int, ex fitapi.ExercisePrescription, layout Layout) view.Node {
	meta := view.Element("div", view.Text(MetaLine(*ex.Exercise))).WithClass("exercise-meta")
	if secondary := SecondaryLine(*ex.Exercise); secondary != "" {
		meta = meta.WithChildren(
			view.Element("br"),
			view.TextElement("span", secondary).WithClass("secondary-muscles"),
		)
	}

	volume := view.Element("div",
		view.TextElement("div", fmt.Sprintf("%d × %s", *ex.Sets, ex.Reps.String())).WithClass("volume-text"),
		view.TextElement("div", fmt.Sprintf("%ds rest", *ex.RestSeconds)).WithClass("rest-text"),
	).WithClass("exercise-volume")
	if ex.WarmupSets != "" {
		volume = volume.WithChildren(view.TextElement("div", "Warm-up: "+ex.WarmupSets).WithClass("exercise-hint"))
	}
	if ex.RepsInReserve != nil && ex.RepsInReserve.String() != "" {
		volume = volume.WithChildren(view.TextElement("div", "RIR: "+ex.RepsInReserve.String()).WithClass("exercise-hint"))
	}

	item := view.Element("div",
		view.Element("div",
			view.TextElement("h5", ex.Exercise.Name),
			meta,
		).WithClass("exercise-info"),
		volume,
	).WithClass("exercise-item").
		WithAttr("data-day", strconv.Itoa(dayIndex)).
		WithAttr("data-index", strconv.Itoa(index))

	if layout == LayoutRich {
		item = item.WithChildren(
			view.TextElement("a", "View Form").
				WithClass("view-form-btn").
				WithAttr("href", ExerciseFormPath(dayIndex, index)),
		)
	}

	return item
}

// MetaLine is the muscle group, followed by the formatted subcategory, or by
// the exercise type when there is no subcategory.
func MetaLine(ex fitapi.ExerciseInfo) string {
	line := capitalize(ex.MuscleGroup)
	switch {
	case ex.Subcategory != "":
		line += " - " + FormatSubcategory(ex.Subcategory)
	case ex.Type != "":
		line += " - " + capitalize(ex.Type)
	}
	return line
}

// SecondaryLine is "+ <muscles>", or empty when the exercise works no secondary muscles.
func SecondaryLine(ex fitapi.ExerciseInfo) string {
	if len(ex.SecondaryMuscles) == 0 {
		return ""
	}
	return "+ " + strings.Join(ex.SecondaryMuscles, ", ")
}
