package render

import (
	"fmt"

	"github.com/2beens/fitmentor/internal/fitapi"
	"github.com/2beens/fitmentor/internal/view"
)

const (
	CalorieResultsID    = "calorieResults"
	RecommendationsID   = "recommendationsList"
	caloriesUnitLabel   = "kcal"
	macroGramsUnitLabel = "g"
)

// CalorieResult builds the calorie results area. A response lacking any of
// the required fields yields fitapi.ErrMalformedResponse and no view.
func CalorieResult(data *fitapi.CalorieResponse, layout Layout) (view.Node, error) {
	if err := data.Validate(); err != nil {
		return view.Node{}, err
	}

	stats := view.Element("div",
		stat("bmr", "BMR", *data.BMR),
		stat("tdee", "TDEE", *data.TDEE),
		stat("targetCalories", "Target Calories", *data.TargetCalories),
	).WithClass("stats-grid")

	macros := view.Element("div",
		macro("protein", "Protein", data.Macros.Protein, layout),
		macro("carbs", "Carbs", data.Macros.Carbs, layout),
		macro("fats", "Fats", data.Macros.Fats, layout),
	).WithClass("macros-grid")

	recs := make([]view.Node, 0, len(data.Recommendations))
	for _, r := range data.Recommendations {
		recs = append(recs, view.TextElement("li", r))
	}

	return view.Element("div",
		stats,
		view.TextElement("h4", "Daily Macros"),
		macros,
		view.TextElement("h4", "Recommendations"),
		view.Element("ul", recs...).WithID(RecommendationsID),
	).WithID(CalorieResultsID).WithClass("results"), nil
}

func stat(id, label string, kcal float64) view.Node {
	return view.Element("div",
		view.TextElement("span", label).WithClass("stat-label"),
		view.TextElement("span", fmt.Sprintf("%s %s", formatNumber(kcal), caloriesUnitLabel)).
			WithID(id).WithClass("stat-value"),
	).WithClass("stat-card")
}

func macro(id, label string, m *fitapi.Macro, layout Layout) view.Node {
	n := view.Element("div",
		view.TextElement("span", label).WithClass("macro-label"),
		view.TextElement("span", formatNumber(*m.Grams)+macroGramsUnitLabel).
			WithID(id+"Value").WithClass("macro-value"),
	).WithID(id).WithClass("macro-item")

	if layout != LayoutRich || m.Percentage == nil {
		return n
	}

	percentage := formatNumber(*m.Percentage) + "%"
	return n.WithChildren(
		view.TextElement("span", percentage).WithID(id+"Percentage").WithClass("macro-percentage"),
		view.Element("div",
			view.Element("div").
				WithID(id+"Bar").
				WithClass("macro-bar-fill").
				WithAttr("style", "width: "+percentage),
		).WithClass("macro-bar"),
	)
}
