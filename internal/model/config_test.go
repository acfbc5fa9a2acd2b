package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q, want default", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSec != 30 {
		t.Errorf("TimeoutSec = %d, want 30", cfg.Server.TimeoutSec)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  base_url: https://todos.example.com/api
  timeout_sec: 10
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.BaseURL != "https://todos.example.com/api" {
		t.Errorf("BaseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.Server.TimeoutSec != 10 {
		t.Errorf("TimeoutSec = %d, want 10", cfg.Server.TimeoutSec)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  base_url: https://todos.example.com/api
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.TimeoutSec != 30 {
		t.Errorf("TimeoutSec = %d, want default 30", cfg.Server.TimeoutSec)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want default info", cfg.Log.Level)
	}
}

func TestLoadConfigInvalidTimeoutFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  timeout_sec: -5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.TimeoutSec != 30 {
		t.Errorf("TimeoutSec = %d, want fallback 30", cfg.Server.TimeoutSec)
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &AppConfig{
		Server: ServerConfig{BaseURL: "https://example.com", TimeoutSec: 15},
		Log:    LogConfig{Level: "warn"},
	}

	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if loaded.Server.BaseURL != cfg.Server.BaseURL {
		t.Errorf("BaseURL = %q, want %q", loaded.Server.BaseURL, cfg.Server.BaseURL)
	}
	if loaded.Server.TimeoutSec != cfg.Server.TimeoutSec {
		t.Errorf("TimeoutSec = %d, want %d", loaded.Server.TimeoutSec, cfg.Server.TimeoutSec)
	}
	if loaded.Log.Level != cfg.Log.Level {
		t.Errorf("Log.Level = %q, want %q", loaded.Log.Level, cfg.Log.Level)
	}
}
