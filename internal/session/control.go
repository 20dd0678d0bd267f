package session

import "atelier/internal/types"

// nextControlState applies a control event to the session-wide control
// state. The second result is false when the event type is not a
// control type. No transition out of cancelled is defined here; that
// policy belongs to the caller.
func nextControlState(current types.ControlState, t types.EventType) (types.ControlState, bool) {
	switch t {
	case types.EventPause, types.EventPaused:
		return types.ControlPaused, true
	case types.EventResume, types.EventResumed:
		return types.ControlRunning, true
	case types.EventCancel, types.EventCancelled:
		return types.ControlCancelled, true
	default:
		return current, false
	}
}
