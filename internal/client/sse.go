package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"atelier/internal/types"
)

// ChannelStream is one live SSE channel. Events are decoded off the
// stream on a dedicated goroutine; a full buffer drops rather than
// blocks, matching at-least-once delivery on the gateway side.
type ChannelStream struct {
	name           types.ChannelName
	conversationID string
	token          string
	client         *Client
	events         chan types.InboundEvent
	cancel         context.CancelFunc
}

// DialChannel opens the named event channel. The chat channel is
// scoped to a conversation; the others stream session-wide.
func (c *Client) DialChannel(ctx context.Context, name types.ChannelName, token, conversationID string) (*ChannelStream, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("token required for %s channel", name)
	}

	ctx, cancel := context.WithCancel(ctx)
	streamURL := fmt.Sprintf("%s/v1/channels/%s/events?follow=1", c.baseURL, name)
	if name == types.ChannelChat && conversationID != "" {
		streamURL += "&conversation_id=" + url.QueryEscape(conversationID)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "text/event-stream")

	// No client timeout: the stream stays open until cancelled.
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		cancel()
		return nil, decodeAPIError(resp)
	}

	stream := &ChannelStream{
		name:           name,
		conversationID: conversationID,
		token:          token,
		client:         c,
		events:         make(chan types.InboundEvent, 256),
		cancel:         cancel,
	}
	go func() {
		defer close(stream.events)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		var dataLines []string

		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				if len(dataLines) == 0 {
					continue
				}
				payload := strings.Join(dataLines, "\n")
				dataLines = dataLines[:0]
				var event types.InboundEvent
				if err := json.Unmarshal([]byte(payload), &event); err == nil {
					select {
					case stream.events <- event:
					default:
					}
				}
				continue
			}
			if strings.HasPrefix(line, "data:") {
				dataLines = append(dataLines, strings.TrimSpace(line[len("data:"):]))
			}
		}
	}()
	return stream, nil
}

func (s *ChannelStream) Events() <-chan types.InboundEvent {
	return s.events
}

// Send posts an outbound control signal on this channel's signal
// endpoint.
func (s *ChannelStream) Send(ctx context.Context, signal types.ControlSignal) error {
	if signal.ConversationID == "" {
		signal.ConversationID = s.conversationID
	}
	path := fmt.Sprintf("/v1/channels/%s/signal", s.name)
	return s.client.doJSON(ctx, http.MethodPost, path, signal, s.token, nil)
}

// Close tears the stream down; the reader goroutine closes the event
// channel once the response body unwinds.
func (s *ChannelStream) Close() error {
	s.cancel()
	return nil
}
