package types

import "time"

// ConsoleState is the small piece of UI state persisted between runs.
type ConsoleState struct {
	LastConversationID string    `json:"last_conversation_id,omitempty"`
	UpdatedAt          time.Time `json:"updated_at,omitempty"`
}
