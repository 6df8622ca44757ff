package render

import (
	"strings"

	"github.com/2beens/fitmentor/internal/fitapi"
	"github.com/2beens/fitmentor/internal/view"
)

const (
	ExerciseNameID     = "modalExerciseName"
	SubcategoryID      = "modalSubcategory"
	SecondaryMusclesID = "modalSecondaryMuscles"
	DescriptionID      = "modalDescription"
	ImagesID           = "modalImages"
)

// ExerciseDetail renders the overlay body for one exercise. Each optional
// region is always present in the tree and hidden when its data is missing,
// so the same exercise always produces the same tree.
func ExerciseDetail(ex fitapi.ExerciseInfo) view.Node {
	subcategory := view.Element("p").WithID(SubcategoryID).WithClass("modal-subcategory")
	if ex.Subcategory != "" {
		subcategory = subcategory.WithChildren(view.Text(FormatSubcategory(ex.Subcategory)))
	} else {
		subcategory = subcategory.WithHidden(true)
	}

	secondary := view.Element("p").WithID(SecondaryMusclesID).WithClass("modal-secondary")
	if len(ex.SecondaryMuscles) > 0 {
		secondary = secondary.WithChildren(view.Text("Also works: " + strings.Join(ex.SecondaryMuscles, ", ")))
	} else {
		secondary = secondary.WithHidden(true)
	}

	description := view.Element("p").WithID(DescriptionID).WithClass("modal-description")
	if ex.Description != "" {
		description = description.WithChildren(view.Text(ex.Description))
	} else {
		description = description.WithHidden(true)
	}

	images := view.Element("div").WithID(ImagesID).WithClass("modal-images")
	if ex.StartImage != "" && ex.EndImage != "" {
		images = images.WithChildren(
			positionImage("startPositionImg", ex.StartImage, ex.Name+" - Start Position", "Start"),
			positionImage("endPositionImg", ex.EndImage, ex.Name+" - End Position", "End"),
		)
	} else {
		images = images.WithHidden(true)
	}

	return view.Element("div",
		view.TextElement("h3", ex.Name).WithID(ExerciseNameID),
		subcategory,
		secondary,
		description,
		images,
	).WithClass("modal-body")
}

func positionImage(id, src, alt, caption string) view.Node {
	return view.Element("figure",
		view.Element("img").WithID(id).WithAttr("src", src).WithAttr("alt", alt),
		view.TextElement("figcaption", caption),
	)
}
