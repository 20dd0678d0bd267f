package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"atelier/internal/app"
	"atelier/internal/client"
	"atelier/internal/config"
	"atelier/internal/logging"
	"atelier/internal/session"
	"atelier/internal/store"
	"atelier/internal/types"
)

// toastRelay lets the session start before the model exists; toasts
// arriving in between are dropped.
type toastRelay struct {
	mu sync.Mutex
	fn func(types.StatusMessage)
}

func (r *toastRelay) bind(fn func(types.StatusMessage)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fn = fn
}

func (r *toastRelay) ShowToast(msg types.StatusMessage) {
	r.mu.Lock()
	fn := r.fn
	r.mu.Unlock()
	if fn != nil {
		fn(msg)
	}
}

type channelDialer struct {
	c *client.Client
}

func (d channelDialer) Dial(ctx context.Context, name types.ChannelName, token, conversationID string) (session.Channel, error) {
	return d.c.DialChannel(ctx, name, token, conversationID)
}

func runUI(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	conversation := fs.String("conversation", "", "conversation id for the chat channel")
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	logger := openUILogger(settings)

	gateway, err := client.New(&settings)
	if err != nil {
		return err
	}

	cachePath, err := config.CachePath()
	if err != nil {
		return err
	}
	cache, err := store.OpenCache(cachePath)
	if err != nil {
		return err
	}
	defer cache.Close()

	ctx := context.Background()
	user := settings.User()

	conversationID := strings.TrimSpace(*conversation)
	if conversationID == "" {
		conversationID = strings.TrimSpace(settings.Session.ConversationID)
	}
	if conversationID == "" {
		if state, err := cache.LoadConsoleState(ctx, user); err == nil {
			conversationID = state.LastConversationID
		}
	}

	relay := &toastRelay{}
	sess, err := session.Start(ctx, session.Options{
		Dialer:         channelDialer{c: gateway},
		Tokens:         gateway,
		Records:        gateway,
		Toasts:         relay,
		Logger:         logger,
		User:           user,
		ConversationID: conversationID,
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	model := app.NewModel(sess, logger, time.Duration(settings.TickMillis())*time.Millisecond)
	relay.bind(model.EnqueueToast)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	// Persist the last known state so records/ui cold-start warm.
	snapshot := sess.Snapshot()
	if err := cache.SaveRecords(ctx, user, snapshot.Records); err != nil {
		logger.Warn("cache records save failed", logging.F("err", err))
	}
	state := &types.ConsoleState{LastConversationID: conversationID, UpdatedAt: time.Now().UTC()}
	if err := cache.SaveConsoleState(ctx, user, state); err != nil {
		logger.Warn("console state save failed", logging.F("err", err))
	}
	return nil
}

func openUILogger(settings config.Settings) logging.Logger {
	path, err := config.LogPath()
	if err != nil {
		return logging.Nop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return logging.Nop()
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return logging.Nop()
	}
	return logging.New(file, logging.ParseLevel(settings.LogLevel()))
}
