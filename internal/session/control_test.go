package session

import (
	"testing"

	"atelier/internal/types"
)

func TestControlTransitions(t *testing.T) {
	cases := []struct {
		from  types.ControlState
		event types.EventType
		want  types.ControlState
	}{
		{types.ControlRunning, types.EventPause, types.ControlPaused},
		{types.ControlRunning, types.EventPaused, types.ControlPaused},
		{types.ControlPaused, types.EventResume, types.ControlRunning},
		{types.ControlPaused, types.EventResumed, types.ControlRunning},
		{types.ControlRunning, types.EventCancel, types.ControlCancelled},
		{types.ControlPaused, types.EventCancelled, types.ControlCancelled},
		{types.ControlCancelled, types.EventPause, types.ControlPaused},
	}
	for _, tc := range cases {
		got, ok := nextControlState(tc.from, tc.event)
		if !ok {
			t.Fatalf("%s from %s: expected a control transition", tc.event, tc.from)
		}
		if got != tc.want {
			t.Fatalf("%s from %s = %s, want %s", tc.event, tc.from, got, tc.want)
		}
	}
}

func TestNonControlEventsDoNotTransition(t *testing.T) {
	for _, ev := range []types.EventType{types.EventProgress, types.EventComplete, types.EventError, types.EventWarning, types.EventInfo} {
		got, ok := nextControlState(types.ControlPaused, ev)
		if ok {
			t.Fatalf("%s should not be a control transition", ev)
		}
		if got != types.ControlPaused {
			t.Fatalf("%s must leave state untouched, got %s", ev, got)
		}
	}
}
