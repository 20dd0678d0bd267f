package types

type ControlState string

const (
	ControlRunning   ControlState = "running"
	ControlPaused    ControlState = "paused"
	ControlCancelled ControlState = "cancelled"
)
