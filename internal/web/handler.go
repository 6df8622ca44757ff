package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/fitmentor/internal/builder"
	"github.com/2beens/fitmentor/internal/connectivity"
	"github.com/2beens/fitmentor/internal/fitapi"
	"github.com/2beens/fitmentor/internal/form"
	"github.com/2beens/fitmentor/internal/middleware"
	"github.com/2beens/fitmentor/internal/orchestrator"
	"github.com/2beens/fitmentor/internal/render"
	"github.com/2beens/fitmentor/internal/session"
	"github.com/2beens/fitmentor/internal/telemetry/metrics"
	"github.com/2beens/fitmentor/internal/telemetry/tracing"
	"github.com/2beens/fitmentor/internal/view"
	"github.com/2beens/fitmentor/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const maxFormSize = 64 * 1024

type ExerciseLister interface {
	ListExercises(ctx context.Context) ([]fitapi.ExerciseInfo, error)
}

type Handler struct {
	sessions       *session.Store
	exercises      ExerciseLister
	watcher        *connectivity.Watcher
	redisClient    redis.Cmdable
	workoutOptions builder.WorkoutOptions
	secureCookies  bool
	trustedProxies []string
}

type NewHandlerParams struct {
	Sessions       *session.Store
	Exercises      ExerciseLister
	Watcher        *connectivity.Watcher
	RedisClient    redis.Cmdable // optional, only checked in /healthz
	WorkoutOptions builder.WorkoutOptions
	SecureCookies  bool
	TrustedProxies []string
}

func NewHandler(params NewHandlerParams) *Handler {
	return &Handler{
		sessions:       params.Sessions,
		exercises:      params.Exercises,
		watcher:        params.Watcher,
		redisClient:    params.RedisClient,
		workoutOptions: params.WorkoutOptions,
		secureCookies:  params.SecureCookies,
		trustedProxies: params.TrustedProxies,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	submitsAllowedPerMin int,
) {
	mainRouter.HandleFunc("/", handler.handlePage).Methods("GET").Name("page")
	mainRouter.HandleFunc("/units/{unit}", handler.handleSwitchUnits).Methods("POST").Name("switch-units")
	mainRouter.HandleFunc("/exercise/close", handler.handleCloseExercise).Methods("POST").Name("close-exercise")
	mainRouter.HandleFunc("/exercise/{day:[0-9]+}/{index:[0-9]+}", handler.handleOpenExercise).Methods("GET").Name("open-exercise")
	mainRouter.HandleFunc("/exercises", handler.handleExercises).Methods("GET").Name("exercises")
	mainRouter.HandleFunc("/healthz", handler.handleHealth).Methods("GET").Name("healthz")

	// submissions reach the calculation service, rate limit them per client
	submitRouter := mainRouter.NewRoute().Subrouter()
	submitRouter.HandleFunc("/calories", handler.handleSubmitPage(orchestrator.FormCalories)).Methods("POST").Name("submit-calories")
	submitRouter.HandleFunc("/workout", handler.handleSubmitPage(orchestrator.FormWorkout)).Methods("POST").Name("submit-workout")
	submitRouter.HandleFunc("/view/calories", handler.handleSubmitView(orchestrator.FormCalories)).Methods("POST", "OPTIONS").Name("view-calories")
	submitRouter.HandleFunc("/view/workout", handler.handleSubmitView(orchestrator.FormWorkout)).Methods("POST", "OPTIONS").Name("view-workout")
	if rateLimiter != nil {
		submitRouter.Use(middleware.RateLimit(rateLimiter, "submit", submitsAllowedPerMin, handler.trustedProxies, metricsManager))
	}
}

// sessionFor returns the session of the browser, a new one is created and
// its cookie set when the request carries none or an expired one.
func (handler *Handler) sessionFor(w http.ResponseWriter, r *http.Request) (*session.Session, error) {
	var id string
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		id = cookie.Value
	}

	s, created, err := handler.sessions.GetOrCreate(id)
	if err != nil {
		return nil, err
	}
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     session.CookieName,
			Value:    s.ID,
			Path:     "/",
			HttpOnly: true,
			Secure:   handler.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return s, nil
}

func (handler *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "webHandler.page")
	defer span.End()

	s, err := handler.sessionFor(w, r)
	if err != nil {
		log.Errorf("page: get session: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := handler.newPageData(s)
	span.SetAttributes(
		attribute.String("session.unit", data.ActiveUnit),
		attribute.Int("notices", len(data.Notices)),
	)

	w.Header().Set("Cache-Control", "no-store")
	if err := pkg.WriteTemplate(w, pageTemplate, "index.html", data, http.StatusOK); err != nil {
		log.Errorf("page: %s", err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func (handler *Handler) handleSwitchUnits(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	unit, err := form.ParseUnitSystem(vars["unit"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s, err := handler.sessionFor(w, r)
	if err != nil {
		log.Errorf("switch units: get session: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if err := s.SwitchUnits(unit); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Tracef("session %s switched to %s units", s.ID, unit)

	http.Redirect(w, r, "/#"+orchestrator.FormCalories, http.StatusSeeOther)
}

// handleSubmitPage runs the submission of a page form and redirects back to
// the page, which shows the result or the notice the submission produced.
func (handler *Handler) handleSubmitPage(formID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := handler.sessionFor(w, r)
		if err != nil {
			log.Errorf("submit %s: get session: %s", formID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		if err := s.Submit(r.Context(), formID, r.PostForm); err != nil {
			log.Debugf("submit %s, session %s: %s", formID, s.ID, err)
			if errors.Is(err, orchestrator.ErrSubmissionInFlight) {
				http.Error(w, "submission already in progress", http.StatusConflict)
				return
			}
		}

		http.Redirect(w, r, "/#"+resultAnchor(formID), http.StatusSeeOther)
	}
}

type viewResponse struct {
	Applied  bool                  `json:"applied"`
	View     *view.Node            `json:"view,omitempty"`
	Notices  []orchestrator.Notice `json:"notices"`
	Disabled bool                  `json:"submitDisabled"`
}

// handleSubmitView runs the submission and answers with the view tree of the
// result area as JSON, for pages that patch the result in place.
func (handler *Handler) handleSubmitView(formID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		s, err := handler.sessionFor(w, r)
		if err != nil {
			log.Errorf("view %s: get session: %s", formID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		submitErr := s.Submit(r.Context(), formID, r.PostForm)

		state := s.Snapshot()
		resp := viewResponse{
			Applied:  submitErr == nil,
			Notices:  s.TakeNotices(),
			Disabled: state.SubmitDisabled[formID],
		}
		if resp.Notices == nil {
			resp.Notices = []orchestrator.Notice{}
		}
		switch formID {
		case orchestrator.FormCalories:
			resp.View = state.CalorieView
		case orchestrator.FormWorkout:
			resp.View = state.WorkoutView
		}

		if err := pkg.WriteJSON(w, resp, submitStatus(submitErr)); err != nil {
			log.Errorf("view %s: %s", formID, err)
		}
	}
}

func submitStatus(err error) int {
	switch {
	case err == nil, errors.Is(err, orchestrator.ErrStaleResponse):
		return http.StatusOK
	case errors.Is(err, builder.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, orchestrator.ErrSubmissionInFlight):
		return http.StatusConflict
	case errors.Is(err, fitapi.ErrTransport), errors.Is(err, fitapi.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (handler *Handler) handleOpenExercise(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	day, err := strconv.Atoi(vars["day"])
	if err != nil {
		http.Error(w, "invalid day", http.StatusBadRequest)
		return
	}
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}

	s, err := handler.sessionFor(w, r)
	if err != nil {
		log.Errorf("open exercise: get session: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	ex, err := s.OpenExercise(day, index)
	if err != nil {
		if errors.Is(err, session.ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("open exercise: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	log.Tracef("session %s opened exercise %s", s.ID, ex.Name)

	http.Redirect(w, r, "/#"+render.ExerciseModalID, http.StatusSeeOther)
}

func (handler *Handler) handleCloseExercise(w http.ResponseWriter, r *http.Request) {
	s, err := handler.sessionFor(w, r)
	if err != nil {
		log.Errorf("close exercise: get session: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.CloseExercise()
	http.Redirect(w, r, "/#"+render.WorkoutResultsID, http.StatusSeeOther)
}

func (handler *Handler) handleExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "webHandler.exercises")
	defer span.End()

	exercises, err := handler.exercises.ListExercises(ctx)
	if err != nil {
		log.Errorf("list exercises: %s", err)
		span.SetStatus(codes.Error, err.Error())
		http.Error(w, "exercise database unavailable, please make sure the backend server is running", http.StatusBadGateway)
		return
	}
	span.SetAttributes(attribute.Int("exercises.count", len(exercises)))

	data := catalogPageData{
		Catalog: render.ExerciseCatalog(exercises),
		Count:   len(exercises),
	}

	if err := pkg.WriteTemplate(w, pageTemplate, "exercises.html", data, http.StatusOK); err != nil {
		log.Errorf("exercises: %s", err)
		span.SetStatus(codes.Error, err.Error())
	}
}

type healthResponse struct {
	Status           string    `json:"status"`
	BackendReachable bool      `json:"backendReachable"`
	BackendLastSeen  time.Time `json:"backendLastSeen,omitempty"`
	Redis            string    `json:"redis,omitempty"`
	Sessions         int       `json:"sessions"`
}

func (handler *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:   "ok",
		Sessions: handler.sessions.Count(),
	}
	if handler.watcher != nil {
		resp.BackendReachable = handler.watcher.Online()
		resp.BackendLastSeen = handler.watcher.LastSeen()
	}
	if handler.redisClient != nil {
		if err := handler.redisClient.Ping(r.Context()).Err(); err != nil {
			log.Warnf("healthz: redis ping: %s", err)
			resp.Redis = "unavailable"
		} else {
			resp.Redis = "ok"
		}
	}

	if err := pkg.WriteJSON(w, resp, http.StatusOK); err != nil {
		log.Errorf("healthz: %s", err)
	}
}

func resultAnchor(formID string) string {
	switch formID {
	case orchestrator.FormCalories:
		return render.CalorieResultsID
	case orchestrator.FormWorkout:
		return render.WorkoutResultsID
	default:
		return ""
	}
}
