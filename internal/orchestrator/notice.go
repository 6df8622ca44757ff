package orchestrator

type NoticeKind string

const (
	NoticeValidation         NoticeKind = "validation"
	NoticeBackendUnavailable NoticeKind = "backend_unavailable"
	NoticeOffline            NoticeKind = "offline"
)

// Notice is a message for the user, shown next to the form it concerns.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	FormID  string     `json:"formId,omitempty"`
	Message string     `json:"message"`
}
