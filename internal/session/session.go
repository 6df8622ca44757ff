package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/2beens/fitmentor/internal/builder"
	"github.com/2beens/fitmentor/internal/fitapi"
	"github.com/2beens/fitmentor/internal/form"
	"github.com/2beens/fitmentor/internal/orchestrator"
	"github.com/2beens/fitmentor/internal/render"
	"github.com/2beens/fitmentor/internal/telemetry/metrics"
	"github.com/2beens/fitmentor/internal/view"
)

var ErrExerciseNotFound = errors.New("exercise not found")

type Options struct {
	Client         orchestrator.ApiClient
	Layout         render.Layout
	WorkoutOptions builder.WorkoutOptions
	RequestTimeout time.Duration
	MetricsManager *metrics.Manager
}

// Session is the page state of one browser: the calculator form, the last
// applied results, the exercise overlay and pending notices. All methods are
// safe for concurrent use; submissions do not hold the session lock while
// waiting for the calculation service.
type Session struct {
	ID        string
	CreatedAt time.Time

	orchestrator *orchestrator.Orchestrator
	dispatcher   *orchestrator.Dispatcher

	mutex       sync.Mutex
	form        *form.State
	calorieView *view.Node
	workoutView *view.Node
	workout     *fitapi.WorkoutResponse
	overlay     render.Overlay
	fields      map[string]url.Values
	notices     []orchestrator.Notice
	loading     int
}

// PageState is a snapshot of a session, taken under its lock.
type PageState struct {
	ActiveUnit     form.UnitSystem
	RequiredFields []string
	CalorieView    *view.Node
	WorkoutView    *view.Node
	Overlay        view.Node
	OverlayOpen    bool
	Fields         map[string]url.Values
	Loading        bool
	SubmitDisabled map[string]bool
}

func New(id string, opts Options) (*Session, error) {
	s := &Session{
		ID:         id,
		CreatedAt:  time.Now(),
		form:       form.NewState(),
		fields:     make(map[string]url.Values),
		dispatcher: orchestrator.NewDispatcher(),
	}

	s.orchestrator = orchestrator.New(orchestrator.Params{
		Client:         opts.Client,
		Units:          s,
		Loading:        s,
		Notifier:       s,
		CalorieArea:    calorieArea{s},
		WorkoutArea:    workoutArea{s},
		Layout:         opts.Layout,
		WorkoutOptions: opts.WorkoutOptions,
		RequestTimeout: opts.RequestTimeout,
		MetricsManager: opts.MetricsManager,
	})
	if err := s.orchestrator.Register(s.dispatcher); err != nil {
		return nil, fmt.Errorf("register form handlers: %w", err)
	}

	return s, nil
}

// Submit dispatches the fields of the form with the given id. The values are
// kept, rounded, to refill the form on the next page render.
func (s *Session) Submit(ctx context.Context, formID string, fields url.Values) error {
	s.rememberFields(formID, fields)
	return s.dispatcher.Dispatch(ctx, formID, fields)
}

func (s *Session) rememberFields(formID string, fields url.Values) {
	kept := make(url.Values, len(fields))
	for name, values := range fields {
		kept[name] = append([]string(nil), values...)
	}
	for _, name := range form.NumericFields {
		if v := kept.Get(name); v != "" {
			kept.Set(name, form.RoundOnBlur(v))
		}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.fields[formID] = kept
}

func (s *Session) ActiveUnit() form.UnitSystem {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.form.ActiveUnit()
}

func (s *Session) SwitchUnits(target form.UnitSystem) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.form.SwitchUnits(target)
}

func (s *Session) Show() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.loading++
}

func (s *Session) Hide() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.loading > 0 {
		s.loading--
	}
}

func (s *Session) Notify(notice orchestrator.Notice) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.notices = append(s.notices, notice)
}

// TakeNotices returns the pending notices and clears them, each notice is shown once.
func (s *Session) TakeNotices() []orchestrator.Notice {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	notices := s.notices
	s.notices = nil
	return notices
}

// OpenExercise opens the overlay for the exercise at index of the given day
// of the last applied workout plan.
func (s *Session) OpenExercise(day, index int) (fitapi.ExerciseInfo, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.workout == nil || day < 0 || day >= len(s.workout.Workouts) {
		return fitapi.ExerciseInfo{}, fmt.Errorf("%w: day %d", ErrExerciseNotFound, day)
	}
	exercises := s.workout.Workouts[day].Exercises
	if index < 0 || index >= len(exercises) || exercises[index].Exercise == nil {
		return fitapi.ExerciseInfo{}, fmt.Errorf("%w: day %d, index %d", ErrExerciseNotFound, day, index)
	}

	ex := *exercises[index].Exercise
	s.overlay.Open(ex)
	return ex, nil
}

func (s *Session) CloseExercise() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.overlay.Close()
}

func (s *Session) Snapshot() PageState {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	fields := make(map[string]url.Values, len(s.fields))
	for formID, values := range s.fields {
		fields[formID] = values
	}

	return PageState{
		ActiveUnit:     s.form.ActiveUnit(),
		RequiredFields: s.form.RequiredFields(),
		CalorieView:    s.calorieView,
		WorkoutView:    s.workoutView,
		Overlay:        s.overlay.View(),
		OverlayOpen:    s.overlay.State() == render.OverlayOpen,
		Fields:         fields,
		Loading:        s.loading > 0,
		SubmitDisabled: map[string]bool{
			orchestrator.FormCalories: s.orchestrator.SubmitDisabled(orchestrator.FormCalories),
			orchestrator.FormWorkout:  s.orchestrator.SubmitDisabled(orchestrator.FormWorkout),
		},
	}
}

type calorieArea struct {
	s *Session
}

func (a calorieArea) Apply(node view.Node, _ any) {
	a.s.mutex.Lock()
	defer a.s.mutex.Unlock()
	a.s.calorieView = &node
}

type workoutArea struct {
	s *Session
}

// Apply keeps the response next to its view, the overlay looks exercises up in it.
// A new plan closes the overlay of the previous one.
func (a workoutArea) Apply(node view.Node, response any) {
	a.s.mutex.Lock()
	defer a.s.mutex.Unlock()
	a.s.workoutView = &node
	if resp, ok := response.(*fitapi.WorkoutResponse); ok {
		a.s.workout = resp
	}
	a.s.overlay.Close()
}
