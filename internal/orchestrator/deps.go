package orchestrator

import (
	"context"

	"github.com/2beens/fitmentor/internal/fitapi"
	"github.com/2beens/fitmentor/internal/form"
	"github.com/2beens/fitmentor/internal/view"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=orchestrator_test

type ApiClient interface {
	CalculateCalories(ctx context.Context, req fitapi.CalorieRequest) (*fitapi.CalorieResponse, error)
	SuggestWorkout(ctx context.Context, req fitapi.WorkoutRequest) (*fitapi.WorkoutResponse, error)
}

// LoadingIndicator is shown while a request to the calculation service is in flight.
type LoadingIndicator interface {
	Show()
	Hide()
}

type Notifier interface {
	Notify(notice Notice)
}

// ResultArea holds the rendered view of one kind of result, and the
// response it was rendered from. Apply replaces both wholesale.
type ResultArea interface {
	Apply(node view.Node, response any)
}

type UnitSource interface {
	ActiveUnit() form.UnitSystem
}
