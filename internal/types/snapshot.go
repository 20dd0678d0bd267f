package types

// ChannelState is the connection state of one SSE channel as exposed
// in the snapshot.
type ChannelState string

const (
	ChannelConnected   ChannelState = "connected"
	ChannelUnavailable ChannelState = "unavailable"
)

// Snapshot is the read-only view of one session exposed to the UI.
type Snapshot struct {
	ControlState ControlState
	Active       []Stage
	LongRunning  []Stage
	Errors       []Notice
	Warnings     []Notice
	StatusFeed   []StatusMessage
	Records      []Record
	Unread       int
	LastChat     string
	Channels     map[ChannelName]ChannelState
}
