package render

import (
	"fmt"
	"strings"

	"github.com/2beens/fitmentor/internal/fitapi"
	"github.com/2beens/fitmentor/internal/view"
)

const ExerciseCatalogID = "exerciseCatalog"

// ExerciseCatalog lists the exercise database grouped by muscle group. Groups
// appear in the order their first exercise appears.
func ExerciseCatalog(exercises []fitapi.ExerciseInfo) view.Node {
	var groupOrder []string
	groups := make(map[string][]view.Node)
	for _, ex := range exercises {
		if ex.Name == "" {
			continue
		}
		if _, ok := groups[ex.MuscleGroup]; !ok {
			groupOrder = append(groupOrder, ex.MuscleGroup)
		}
		groups[ex.MuscleGroup] = append(groups[ex.MuscleGroup], catalogEntry(ex))
	}

	if len(groupOrder) == 0 {
		return view.Element("div",
			view.TextElement("p", "No exercises available.").WithClass("empty"),
		).WithID(ExerciseCatalogID)
	}

	sections := make([]view.Node, 0, len(groupOrder))
	for _, g := range groupOrder {
		title := capitalize(g)
		if title == "" {
			title = "Other"
		}
		sections = append(sections, view.Element("section",
			view.TextElement("h4", title),
			view.Element("ul", groups[g]...).WithClass("exercise-list"),
		).WithClass("catalog-group"))
	}

	return view.Element("div", sections...).WithID(ExerciseCatalogID)
}

func catalogEntry(ex fitapi.ExerciseInfo) view.Node {
	entry := view.Element("li",
		view.TextElement("h5", ex.Name),
		view.TextElement("div", MetaLine(ex)).WithClass("exercise-meta"),
	).WithClass("catalog-entry")

	var details []string
	if ex.Difficulty != "" {
		details = append(details, capitalize(ex.Difficulty))
	}
	if len(ex.Equipment) > 0 {
		details = append(details, strings.Join(ex.Equipment, ", "))
	}
	if ex.Rest > 0 {
		details = append(details, fmt.Sprintf("%ds rest", ex.Rest))
	}
	if len(details) > 0 {
		entry = entry.WithChildren(view.TextElement("div", strings.Join(details, " · ")).WithClass("exercise-details"))
	}
	if secondary := SecondaryLine(ex); secondary != "" {
		entry = entry.WithChildren(view.TextElement("span", secondary).WithClass("secondary-muscles"))
	}

	return entry
}
