package types

import "time"

// Stage is a unit of in-progress work reported over a channel,
// identified by event id with the stage name as fallback key.
type Stage struct {
	ID        string      `json:"id,omitempty"`
	Name      string      `json:"name,omitempty"`
	Progress  float64     `json:"progress"`
	Channel   ChannelName `json:"channel,omitempty"`
	StartedAt time.Time   `json:"started_at"`
	Promoted  bool        `json:"promoted,omitempty"`
}

// Key returns the identity used for matching follow-up events.
func (s Stage) Key() string {
	if s.ID != "" {
		return s.ID
	}
	return s.Name
}
