package render

import (
	"github.com/2beens/fitmentor/internal/fitapi"
	"github.com/2beens/fitmentor/internal/view"
)

const ProgressionID = "progressionInfo"

// Progression renders the fixed label rows in a stable order, and the tips
// list only when there are tips.
func Progression(p fitapi.Progression) view.Node {
	item := view.Element("div",
		progressionRow("Method:", p.Method),
		progressionRow("How to Progress:", p.Increment),
		progressionRow("Deload:", p.Deload),
	).WithClass("progression-item")

	n := view.Element("div", item).WithID(ProgressionID)
	if len(p.Tips) == 0 {
		return n
	}

	tips := make([]view.Node, 0, len(p.Tips))
	for _, tip := range p.Tips {
		tips = append(tips, view.TextElement("li", tip))
	}
	return n.WithChildren(
		view.Element("div",
			view.TextElement("strong", "Tips:"),
			view.Element("ul", tips...),
		).WithClass("progression-tips"),
	)
}

func progressionRow(label, value string) view.Node {
	return view.Element("div",
		view.TextElement("strong", label),
		view.Text(" "+value),
	).WithClass("progression-row")
}
