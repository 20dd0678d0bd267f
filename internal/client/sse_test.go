package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"atelier/internal/types"
)

func TestDialChannelParsesEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/channels/status/events" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher, _ := w.(http.Flusher)

		event := types.InboundEvent{ID: "s1", Type: "info", Content: "warmed up"}
		data, _ := json.Marshal(event)
		_, _ = w.Write(append([]byte("data: "), data...))
		_, _ = w.Write([]byte("\n\n"))
		if flusher != nil {
			flusher.Flush()
		}
	}))
	defer server.Close()

	c := NewWithBaseURL(server.URL, "token")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stream, err := c.DialChannel(ctx, types.ChannelStatus, "token", "")
	if err != nil {
		t.Fatalf("DialChannel: %v", err)
	}
	defer stream.Close()

	select {
	case event := <-stream.Events():
		if event.ID != "s1" || event.Content != "warmed up" {
			t.Fatalf("unexpected event: %+v", event)
		}
	case <-time.After(1 * time.Second):
		t.Fatalf("timeout waiting for event")
	}
}

func TestDialChannelScopesChatToConversation(t *testing.T) {
	var gotConversation string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotConversation = r.URL.Query().Get("conversation_id")
		w.Header().Set("Content-Type", "text/event-stream")
	}))
	defer server.Close()

	c := NewWithBaseURL(server.URL, "token")
	stream, err := c.DialChannel(context.Background(), types.ChannelChat, "token", "conv-7")
	if err != nil {
		t.Fatalf("DialChannel: %v", err)
	}
	defer stream.Close()

	if gotConversation != "conv-7" {
		t.Fatalf("conversation_id = %q, want conv-7", gotConversation)
	}
}

func TestDialChannelRejectsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := NewWithBaseURL(server.URL, "token")
	if _, err := c.DialChannel(context.Background(), types.ChannelImage, "token", ""); err == nil {
		t.Fatalf("expected error on non-2xx status")
	}
	if _, err := c.DialChannel(context.Background(), types.ChannelImage, " ", ""); err == nil {
		t.Fatalf("expected error on blank token")
	}
}

func TestChannelStreamCloseEndsEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
		<-r.Context().Done()
	}))
	defer server.Close()

	c := NewWithBaseURL(server.URL, "token")
	stream, err := c.DialChannel(context.Background(), types.ChannelStatus, "token", "")
	if err != nil {
		t.Fatalf("DialChannel: %v", err)
	}
	if err := stream.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	select {
	case _, ok := <-stream.Events():
		if ok {
			t.Fatalf("expected closed event channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for channel close")
	}
}
