package web

import (
	"embed"
	"html/template"
	"net/url"
	"slices"

	"github.com/2beens/fitmentor/internal/form"
	"github.com/2beens/fitmentor/internal/orchestrator"
	"github.com/2beens/fitmentor/internal/session"
	"github.com/2beens/fitmentor/internal/view"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(
	template.New("pages").Funcs(template.FuncMap{
		"node":     renderNode,
		"value":    fieldValue,
		"checked":  fieldHasValue,
		"required": isRequired,
	}).ParseFS(templatesFS, "templates/*.html"),
)

type option struct {
	Value string
	Label string
}

var (
	genderOptions = []option{{"male", "Male"}, {"female", "Female"}}

	activityOptions = []option{
		{"sedentary", "Sedentary (little or no exercise)"},
		{"light", "Light (1-3 days/week)"},
		{"moderate", "Moderate (3-5 days/week)"},
		{"active", "Active (6-7 days/week)"},
		{"very_active", "Very active (physical job or 2x training)"},
	}

	calorieGoalOptions = []option{{"lose", "Lose weight"}, {"maintain", "Maintain weight"}, {"gain", "Gain muscle"}}

	workoutGoalOptions = []option{
		{"strength", "Strength"},
		{"hypertrophy", "Hypertrophy"},
		{"endurance", "Endurance"},
		{"weight_loss", "Weight Loss"},
	}

	experienceOptions = []option{{"beginner", "Beginner"}, {"intermediate", "Intermediate"}, {"advanced", "Advanced"}}

	equipmentOptions = []option{
		{"barbell", "Barbell"},
		{"dumbbell", "Dumbbells"},
		{"machine", "Machines"},
		{"cable", "Cables"},
		{"bench", "Bench"},
		{"bodyweight", "Bodyweight"},
	}
)

type pageData struct {
	ActiveUnit     string
	Metric         bool
	Required       []string
	CalorieFields  url.Values
	WorkoutFields  url.Values
	CalorieView    *view.Node
	WorkoutView    *view.Node
	Overlay        view.Node
	OverlayOpen    bool
	Loading        bool
	SubmitDisabled map[string]bool
	Notices        []orchestrator.Notice
	BackendOnline  bool

	IncludeGender          bool
	IncludeSessionDuration bool
	DefaultSessionDuration int

	GenderOptions      []option
	ActivityOptions    []option
	CalorieGoalOptions []option
	WorkoutGoalOptions []option
	ExperienceOptions  []option
	EquipmentOptions   []option
}

type catalogPageData struct {
	Catalog view.Node
	Count   int
}

func (handler *Handler) newPageData(s *session.Session) pageData {
	state := s.Snapshot()

	data := pageData{
		ActiveUnit:     state.ActiveUnit.String(),
		Metric:         state.ActiveUnit == form.Metric,
		Required:       state.RequiredFields,
		CalorieFields:  state.Fields[orchestrator.FormCalories],
		WorkoutFields:  state.Fields[orchestrator.FormWorkout],
		CalorieView:    state.CalorieView,
		WorkoutView:    state.WorkoutView,
		Overlay:        state.Overlay,
		OverlayOpen:    state.OverlayOpen,
		Loading:        state.Loading,
		SubmitDisabled: state.SubmitDisabled,
		Notices:        s.TakeNotices(),
		BackendOnline:  true,

		IncludeGender:          handler.workoutOptions.IncludeGender,
		IncludeSessionDuration: handler.workoutOptions.IncludeSessionDurationField,
		DefaultSessionDuration: handler.workoutOptions.DefaultSessionDuration,

		GenderOptions:      genderOptions,
		ActivityOptions:    activityOptions,
		CalorieGoalOptions: calorieGoalOptions,
		WorkoutGoalOptions: workoutGoalOptions,
		ExperienceOptions:  experienceOptions,
		EquipmentOptions:   equipmentOptions,
	}
	if handler.watcher != nil {
		data.BackendOnline = handler.watcher.Online()
	}

	return data
}

// renderNode is safe to mark as HTML: the renderer escapes all text and
// attribute values of the tree.
func renderNode(n view.Node) (template.HTML, error) {
	s, err := view.RenderString(n)
	if err != nil {
		return "", err
	}
	return template.HTML(s), nil
}

func fieldValue(fields url.Values, name string) string {
	return fields.Get(name)
}

func fieldHasValue(fields url.Values, name, value string) bool {
	return slices.Contains(fields[name], value)
}

func isRequired(required []string, name string) bool {
	return slices.Contains(required, name)
}
