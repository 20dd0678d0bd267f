package config

import (
	"errors"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultGatewayAddress = "127.0.0.1:8787"

type Settings struct {
	Gateway GatewaySettings `toml:"gateway"`
	Session SessionSettings `toml:"session"`
	Logging LoggingSettings `toml:"logging"`
	UI      UISettings      `toml:"ui"`
}

type GatewaySettings struct {
	Address string `toml:"address"`
	User    string `toml:"user"`
}

type SessionSettings struct {
	ConversationID string `toml:"conversation_id"`
}

type LoggingSettings struct {
	Level string `toml:"level"`
}

type UISettings struct {
	ShowThumbnails bool `toml:"show_thumbnails"`
	TickMillis     int  `toml:"tick_millis"`
}

func DefaultSettings() Settings {
	return Settings{
		Gateway: GatewaySettings{
			Address: defaultGatewayAddress,
		},
		Logging: LoggingSettings{
			Level: "info",
		},
		UI: UISettings{
			ShowThumbnails: true,
			TickMillis:     200,
		},
	}
}

func LoadSettings() (Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return Settings{}, err
	}
	return loadSettingsFromPath(path)
}

func loadSettingsFromPath(path string) (Settings, error) {
	cfg := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Settings{}, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

func (s Settings) GatewayAddress() string {
	addr := strings.TrimSpace(s.Gateway.Address)
	if addr == "" {
		return defaultGatewayAddress
	}
	addr = strings.TrimPrefix(addr, "http://")
	addr = strings.TrimPrefix(addr, "https://")
	addr = strings.TrimRight(addr, "/")
	if addr == "" {
		return defaultGatewayAddress
	}
	return addr
}

func (s Settings) GatewayBaseURL() string {
	return "http://" + s.GatewayAddress()
}

func (s Settings) User() string {
	return strings.TrimSpace(s.Gateway.User)
}

func (s Settings) LogLevel() string {
	level := strings.TrimSpace(s.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func (s Settings) TickMillis() int {
	if s.UI.TickMillis <= 0 {
		return 200
	}
	return s.UI.TickMillis
}
