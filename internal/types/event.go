package types

import (
	"encoding/json"
	"strings"
)

type ChannelName string

const (
	ChannelChat   ChannelName = "chat"
	ChannelImage  ChannelName = "image"
	ChannelStatus ChannelName = "status"
)

// ChannelNames lists every declared channel in connection order.
func ChannelNames() []ChannelName {
	return []ChannelName{ChannelChat, ChannelImage, ChannelStatus}
}

type EventType string

const (
	EventProgress  EventType = "progress"
	EventComplete  EventType = "complete"
	EventError     EventType = "error"
	EventWarning   EventType = "warning"
	EventInfo      EventType = "info"
	EventPause     EventType = "pause"
	EventPaused    EventType = "paused"
	EventResume    EventType = "resume"
	EventResumed   EventType = "resumed"
	EventCancel    EventType = "cancel"
	EventCancelled EventType = "cancelled"
)

func ParseEventType(raw string) (EventType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "progress":
		return EventProgress, true
	case "complete", "completed", "done":
		return EventComplete, true
	case "error", "failed":
		return EventError, true
	case "warning", "warn":
		return EventWarning, true
	case "info":
		return EventInfo, true
	case "pause":
		return EventPause, true
	case "paused":
		return EventPaused, true
	case "resume":
		return EventResume, true
	case "resumed":
		return EventResumed, true
	case "cancel":
		return EventCancel, true
	case "cancelled", "canceled":
		return EventCancelled, true
	default:
		return "", false
	}
}

// IsControl reports whether the type mutates the session control state
// instead of a stage.
func (t EventType) IsControl() bool {
	switch t {
	case EventPause, EventPaused, EventResume, EventResumed, EventCancel, EventCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the type ends a stage's lifecycle. Cancel
// events are routed through the control state machine first and never
// reach terminal handling.
func (t EventType) IsTerminal() bool {
	switch t {
	case EventComplete, EventError, EventWarning:
		return true
	default:
		return false
	}
}

// InboundEvent is the wire shape delivered on every channel. The stage
// name travels in the "state" field; Data is left opaque for the
// consumer that owns the channel.
type InboundEvent struct {
	ID        string          `json:"id,omitempty"`
	Type      string          `json:"type"`
	Stage     string          `json:"state,omitempty"`
	Progress  *float64        `json:"progress,omitempty"`
	Content   string          `json:"content,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// ControlSignal is the outbound counterpart to control events.
type ControlSignal struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversation_id,omitempty"`
}
