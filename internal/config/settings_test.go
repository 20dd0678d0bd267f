package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsDefaults(t *testing.T) {
	t.Setenv("HOME", filepath.Join(t.TempDir(), "home"))
	cfg, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if cfg.GatewayAddress() != "127.0.0.1:8787" {
		t.Fatalf("unexpected gateway address: %q", cfg.GatewayAddress())
	}
	if cfg.GatewayBaseURL() != "http://127.0.0.1:8787" {
		t.Fatalf("unexpected base url: %q", cfg.GatewayBaseURL())
	}
	if cfg.LogLevel() != "info" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel())
	}
	if cfg.TickMillis() != 200 {
		t.Fatalf("unexpected tick interval: %d", cfg.TickMillis())
	}
}

func TestLoadSettingsFromTOML(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)

	dataDir := filepath.Join(home, ".atelier")
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := []byte("[gateway]\naddress = \"http://127.0.0.1:9999/\"\nuser = \"maya\"\n\n[session]\nconversation_id = \"conv-12\"\n")
	if err := os.WriteFile(filepath.Join(dataDir, "settings.toml"), content, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if cfg.GatewayAddress() != "127.0.0.1:9999" {
		t.Fatalf("unexpected gateway address: %q", cfg.GatewayAddress())
	}
	if cfg.User() != "maya" {
		t.Fatalf("unexpected user: %q", cfg.User())
	}
	if cfg.Session.ConversationID != "conv-12" {
		t.Fatalf("unexpected conversation id: %q", cfg.Session.ConversationID)
	}
}

func TestPathsUnderDataDir(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv("HOME", home)

	token, err := TokenPath()
	if err != nil {
		t.Fatalf("TokenPath: %v", err)
	}
	if want := filepath.Join(home, ".atelier", "token"); token != want {
		t.Fatalf("token path = %q, want %q", token, want)
	}
	cache, err := CachePath()
	if err != nil {
		t.Fatalf("CachePath: %v", err)
	}
	if want := filepath.Join(home, ".atelier", "cache.db"); cache != want {
		t.Fatalf("cache path = %q, want %q", cache, want)
	}
}
