package render

import (
	"github.com/2beens/fitmentor/internal/fitapi"
	"github.com/2beens/fitmentor/internal/view"
)

const (
	ExerciseModalID   = "exerciseModal"
	CloseOverlayPath  = "/exercise/close"
	closeOverlayLabel = "Close"
)

type OverlayState int

const (
	OverlayClosed OverlayState = iota
	OverlayOpen
)

func (s OverlayState) String() string {
	if s == OverlayOpen {
		return "open"
	}
	return "closed"
}

// Overlay is the exercise detail modal. It is either closed, or open showing
// one exercise. Not safe for concurrent use.
type Overlay struct {
	state  OverlayState
	detail view.Node
}

func (o *Overlay) State() OverlayState {
	return o.state
}

// Open renders the detail of ex and opens the overlay. Opening an already
// open overlay replaces the shown exercise.
func (o *Overlay) Open(ex fitapi.ExerciseInfo) {
	o.detail = ExerciseDetail(ex)
	o.state = OverlayOpen
}

// Close closes the overlay, whichever exercise it was showing.
func (o *Overlay) Close() {
	o.state = OverlayClosed
}

func (o *Overlay) View() view.Node {
	modal := view.Element("div").WithID(ExerciseModalID).WithClass("modal")
	if o.state == OverlayClosed {
		return modal.WithHidden(true)
	}
	return modal.WithChildren(
		o.detail,
		view.Element("form",
			view.TextElement("button", closeOverlayLabel).WithAttr("type", "submit").WithClass("modal-close"),
		).WithAttr("method", "post").WithAttr("action", CloseOverlayPath),
	)
}
