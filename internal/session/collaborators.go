package session

import (
	"context"

	"atelier/internal/types"
)

// Channel is one authenticated, named event stream. Events() closes
// when the underlying transport ends; the orchestrator does not
// reconnect on its own.
type Channel interface {
	Events() <-chan types.InboundEvent
	Send(ctx context.Context, signal types.ControlSignal) error
	Close() error
}

// ChannelDialer opens a channel for the current session identity. The
// conversation id is only meaningful for the chat channel.
type ChannelDialer interface {
	Dial(ctx context.Context, name types.ChannelName, token, conversationID string) (Channel, error)
}

// TokenSource authenticates channel connects and record API calls.
type TokenSource interface {
	Token(ctx context.Context, user string) (string, error)
}

// RecordAPI lists and deletes persisted records on the backend.
type RecordAPI interface {
	ListRecords(ctx context.Context, token string) ([]types.Record, error)
	DeleteRecord(ctx context.Context, token, id string) error
}

// ToastSink receives status messages for ephemeral display. The sink
// must not call back into the orchestrator.
type ToastSink interface {
	ShowToast(msg types.StatusMessage)
}

// ToastFunc adapts a function to the ToastSink interface.
type ToastFunc func(msg types.StatusMessage)

func (f ToastFunc) ShowToast(msg types.StatusMessage) { f(msg) }
