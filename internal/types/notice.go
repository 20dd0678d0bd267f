package types

import "time"

type NoticeKind string

const (
	NoticeError   NoticeKind = "error"
	NoticeWarning NoticeKind = "warning"
)

const (
	// ErrorNoticeTTL is how long an error notice stays visible.
	ErrorNoticeTTL = 5 * time.Minute
	// WarningNoticeTTL is how long a warning notice stays visible.
	WarningNoticeTTL = time.Minute
)

// Notice is a live error or warning entry. Entries past ExpiresAt are
// never visible and get purged by the periodic sweep.
type Notice struct {
	ID        string     `json:"id"`
	Kind      NoticeKind `json:"kind"`
	Message   string     `json:"message"`
	Stage     string     `json:"stage,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

func (n Notice) Expired(at time.Time) bool {
	return !n.ExpiresAt.After(at)
}

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// SeverityForEvent maps a terminal event type to the severity of the
// status message it produces.
func SeverityForEvent(t EventType) Severity {
	switch t {
	case EventError:
		return SeverityError
	case EventComplete:
		return SeveritySuccess
	case EventWarning:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}

// StatusMessage is an ephemeral feed entry, auto-dismissed shortly
// after creation.
type StatusMessage struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}
