package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/jot/internal/config"
)

func TestConfigService_GetAndPath(t *testing.T) {
	cfg := config.DefaultConfig()
	svc := NewConfigService("/tmp/test/config.toml", cfg)

	if svc.GetPath() != "/tmp/test/config.toml" {
		t.Errorf("GetPath() = %q", svc.GetPath())
	}
	if svc.Get().Format != cfg.Format {
		t.Errorf("Get().Format = %q, expected %q", svc.Get().Format, cfg.Format)
	}
}

func TestConfigService_Init(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	if svc.Exists() {
		t.Fatal("Exists() = true before Init")
	}
	if err := svc.Init(); err != nil {
		t.Fatalf("Init() returned unexpected error: %v", err)
	}
	if !svc.Exists() {
		t.Error("Exists() = false after Init")
	}

	// the sample must load cleanly
	if _, err := config.Load(configPath); err != nil {
		t.Errorf("sample config does not load: %v", err)
	}

	if err := svc.Init(); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("second Init() error = %v, expected already exists", err)
	}
}

func TestConfigService_UpdateAndReload(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.DefaultConfig()
	cfg.GeminiToken = "secret-token"
	svc := NewConfigService(configPath, cfg)

	updated := config.DefaultConfig()
	updated.Format = "MARKDOWN"
	updated.QueueSize = 8
	updated.GitHubToken = "ghp-secret"
	if err := svc.Update(updated); err != nil {
		t.Fatalf("Update() returned unexpected error: %v", err)
	}
	if svc.Get().Format != "markdown" {
		t.Errorf("Update() did not normalize format: %q", svc.Get().Format)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if strings.Contains(string(data), "ghp-secret") {
		t.Error("secret written to config file")
	}

	svc.config.QueueSize = 1
	if err := svc.Reload(); err != nil {
		t.Fatalf("Reload() returned unexpected error: %v", err)
	}
	got := svc.Get()
	if got.QueueSize != 8 || got.Format != "markdown" {
		t.Errorf("Reload() = queue %d format %q", got.QueueSize, got.Format)
	}
	if got.GitHubToken != "ghp-secret" {
		t.Error("Reload() dropped secrets from the environment")
	}
}

func TestConfigService_UpdateInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	svc := NewConfigService(configPath, config.DefaultConfig())

	bad := config.DefaultConfig()
	bad.Format = "rst"
	if err := svc.Update(bad); err == nil {
		t.Error("Update() expected error for invalid format")
	}
	if svc.Exists() {
		t.Error("invalid config was written")
	}
}
