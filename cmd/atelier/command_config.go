package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"atelier/internal/config"
)

type effectiveConfig struct {
	SettingsPath string                 `toml:"settings_path"`
	Gateway      effectiveGatewayConfig `toml:"gateway"`
	Session      effectiveSessionConfig `toml:"session"`
	Logging      effectiveLoggingConfig `toml:"logging"`
	UI           effectiveUIConfig      `toml:"ui"`
}

type effectiveGatewayConfig struct {
	Address string `toml:"address"`
	BaseURL string `toml:"base_url"`
	User    string `toml:"user,omitempty"`
}

type effectiveSessionConfig struct {
	ConversationID string `toml:"conversation_id,omitempty"`
}

type effectiveLoggingConfig struct {
	Level string `toml:"level"`
	Path  string `toml:"path,omitempty"`
}

type effectiveUIConfig struct {
	ShowThumbnails bool `toml:"show_thumbnails"`
	TickMillis     int  `toml:"tick_millis"`
}

func runConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	return writeEffectiveConfig(os.Stdout, settings)
}

func writeEffectiveConfig(w io.Writer, settings config.Settings) error {
	settingsPath, err := config.SettingsPath()
	if err != nil {
		return err
	}
	logPath, _ := config.LogPath()

	out := effectiveConfig{
		SettingsPath: settingsPath,
		Gateway: effectiveGatewayConfig{
			Address: settings.GatewayAddress(),
			BaseURL: settings.GatewayBaseURL(),
			User:    settings.User(),
		},
		Session: effectiveSessionConfig{
			ConversationID: settings.Session.ConversationID,
		},
		Logging: effectiveLoggingConfig{
			Level: settings.LogLevel(),
			Path:  logPath,
		},
		UI: effectiveUIConfig{
			ShowThumbnails: settings.UI.ShowThumbnails,
			TickMillis:     settings.TickMillis(),
		},
	}
	encoded, err := toml.Marshal(out)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(encoded))
	return err
}
