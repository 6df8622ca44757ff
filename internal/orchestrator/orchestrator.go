package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/2beens/fitmentor/internal/builder"
	"github.com/2beens/fitmentor/internal/fitapi"
	"github.com/2beens/fitmentor/internal/render"
	"github.com/2beens/fitmentor/internal/telemetry/metrics"
	"github.com/2beens/fitmentor/internal/telemetry/tracing"
	"github.com/2beens/fitmentor/internal/view"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	FormCalories = "calorieForm"
	FormWorkout  = "workoutForm"

	DefaultRequestTimeout = 15 * time.Second

	calorieFailureMessage = "Error calculating calories. Please make sure the backend server is running."
	workoutFailureMessage = "Error generating workout plan. Please make sure the backend server is running."
)

var (
	// ErrSubmissionInFlight is returned when a form is submitted again before
	// the response to its previous submission arrived.
	ErrSubmissionInFlight = errors.New("submission already in flight")
	// ErrStaleResponse means a response arrived after a newer request was
	// issued for the same result area, and was dropped.
	ErrStaleResponse = errors.New("stale response discarded")
)

type Params struct {
	Client         ApiClient
	Units          UnitSource
	Loading        LoadingIndicator
	Notifier       Notifier
	CalorieArea    ResultArea
	WorkoutArea    ResultArea
	Layout         render.Layout
	WorkoutOptions builder.WorkoutOptions
	RequestTimeout time.Duration
	// AllowConcurrentSubmissions lifts the one submission per form guard.
	// Responses are then ordered by request tokens only.
	AllowConcurrentSubmissions bool
	MetricsManager             *metrics.Manager
}

// Orchestrator runs form submissions: build the request, send it, render the
// response and apply it to the result area of the form.
type Orchestrator struct {
	client         ApiClient
	units          UnitSource
	loading        LoadingIndicator
	notifier       Notifier
	layout         render.Layout
	workoutOptions builder.WorkoutOptions
	requestTimeout time.Duration
	allowParallel  bool
	metricsManager *metrics.Manager

	calorieArea *area
	workoutArea *area

	inFlightMutex sync.Mutex
	inFlight      map[string]bool
}

type area struct {
	name   string
	target ResultArea
	token  atomic.Uint64

	// held while comparing the token and applying, so an older response
	// can never land after a newer one
	applyMutex sync.Mutex
}

// apply hands node to the target if token is still the latest one issued.
func (a *area) apply(token uint64, node view.Node, response any) (latest uint64, applied bool) {
	a.applyMutex.Lock()
	defer a.applyMutex.Unlock()
	if latest = a.token.Load(); latest != token {
		return latest, false
	}
	a.target.Apply(node, response)
	return latest, true
}

func New(params Params) *Orchestrator {
	timeout := params.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	layout := params.Layout
	if layout == "" {
		layout = render.LayoutRich
	}

	return &Orchestrator{
		client:         params.Client,
		units:          params.Units,
		loading:        params.Loading,
		notifier:       params.Notifier,
		layout:         layout,
		workoutOptions: params.WorkoutOptions,
		requestTimeout: timeout,
		allowParallel:  params.AllowConcurrentSubmissions,
		metricsManager: params.MetricsManager,
		calorieArea:    &area{name: "calories", target: params.CalorieArea},
		workoutArea:    &area{name: "workout", target: params.WorkoutArea},
		inFlight:       make(map[string]bool),
	}
}

// Register wires the submit handlers of both forms into d.
func (o *Orchestrator) Register(d *Dispatcher) error {
	if err := d.OnSubmit(FormCalories, o.SubmitCalories); err != nil {
		return err
	}
	return d.OnSubmit(FormWorkout, o.SubmitWorkout)
}

func (o *Orchestrator) SubmitCalories(ctx context.Context, fields url.Values) error {
	return submit(ctx, o, submission[fitapi.CalorieRequest, *fitapi.CalorieResponse]{
		formID:         FormCalories,
		area:           o.calorieArea,
		failureMessage: calorieFailureMessage,
		build: func() (fitapi.CalorieRequest, error) {
			return builder.BuildCalorieRequest(fields, o.units.ActiveUnit())
		},
		send: o.client.CalculateCalories,
		render: func(resp *fitapi.CalorieResponse) (view.Node, error) {
			return render.CalorieResult(resp, o.layout)
		},
	})
}

func (o *Orchestrator) SubmitWorkout(ctx context.Context, fields url.Values) error {
	return submit(ctx, o, submission[fitapi.WorkoutRequest, *fitapi.WorkoutResponse]{
		formID:         FormWorkout,
		area:           o.workoutArea,
		failureMessage: workoutFailureMessage,
		build: func() (fitapi.WorkoutRequest, error) {
			return builder.BuildWorkoutRequest(fields, o.workoutOptions)
		},
		send: o.client.SuggestWorkout,
		render: func(resp *fitapi.WorkoutResponse) (view.Node, error) {
			return render.WorkoutResult(resp, o.layout)
		},
	})
}

// SubmitDisabled reports whether the submit control of the form is disabled,
// which is the case while a submission of that form is in flight.
func (o *Orchestrator) SubmitDisabled(formID string) bool {
	if o.allowParallel {
		return false
	}
	o.inFlightMutex.Lock()
	defer o.inFlightMutex.Unlock()
	return o.inFlight[formID]
}

type submission[Req any, Resp any] struct {
	formID         string
	area           *area
	failureMessage string
	build          func() (Req, error)
	send           func(ctx context.Context, req Req) (Resp, error)
	render         func(resp Resp) (view.Node, error)
}

func submit[Req any, Resp any](ctx context.Context, o *Orchestrator, s submission[Req, Resp]) (err error) {
	submissionID := uuid.NewString()
	ctx, span := tracing.GlobalTracer.Start(ctx, "orchestrator.submit")
	defer span.End()
	span.SetAttributes(
		attribute.String("form", s.formID),
		attribute.String("submission.id", submissionID),
	)

	outcome := "ok"
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "applied")
		}
		if o.metricsManager != nil {
			o.metricsManager.CounterSubmissions.WithLabelValues(s.formID, outcome).Inc()
		}
	}()

	if !o.begin(s.formID) {
		outcome = "rejected"
		log.Debugf("submission %s of %s rejected, previous one still in flight", submissionID, s.formID)
		return ErrSubmissionInFlight
	}
	defer o.end(s.formID)

	req, err := s.build()
	if err != nil {
		outcome = "invalid"
		o.notify(Notice{Kind: NoticeValidation, FormID: s.formID, Message: validationMessage(err)})
		return err
	}

	token := s.area.token.Add(1)

	o.loading.Show()
	defer o.loading.Hide()

	sendCtx, cancel := context.WithTimeout(ctx, o.requestTimeout)
	defer cancel()

	resp, err := s.send(sendCtx, req)
	if err != nil {
		outcome = "failed"
		log.Errorf("submission %s of %s: %s", submissionID, s.formID, err)
		o.notify(Notice{Kind: NoticeBackendUnavailable, FormID: s.formID, Message: s.failureMessage})
		return err
	}

	node, err := s.render(resp)
	if err != nil {
		outcome = "malformed"
		log.Errorf("submission %s of %s, render response: %s", submissionID, s.formID, err)
		o.notify(Notice{Kind: NoticeBackendUnavailable, FormID: s.formID, Message: s.failureMessage})
		return err
	}

	if latest, applied := s.area.apply(token, node, resp); !applied {
		outcome = "stale"
		if o.metricsManager != nil {
			o.metricsManager.CounterStaleResponses.Inc()
		}
		log.Debugf("submission %s of %s: token %d superseded by %d", submissionID, s.formID, token, latest)
		return ErrStaleResponse
	}

	log.Tracef("submission %s of %s applied to %s area", submissionID, s.formID, s.area.name)

	return nil
}

func (o *Orchestrator) begin(formID string) bool {
	if o.allowParallel {
		return true
	}
	o.inFlightMutex.Lock()
	defer o.inFlightMutex.Unlock()
	if o.inFlight[formID] {
		return false
	}
	o.inFlight[formID] = true
	return true
}

func (o *Orchestrator) end(formID string) {
	if o.allowParallel {
		return
	}
	o.inFlightMutex.Lock()
	defer o.inFlightMutex.Unlock()
	delete(o.inFlight, formID)
}

func (o *Orchestrator) notify(notice Notice) {
	if o.notifier != nil {
		o.notifier.Notify(notice)
	}
}

func validationMessage(err error) string {
	var validationErr *builder.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	return fmt.Sprintf("Invalid form input: %s", err)
}
