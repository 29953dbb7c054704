package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConfig(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		level    zapcore.Level
		encoding string
		wantErr  bool
	}{
		{"defaults", Options{}, zapcore.InfoLevel, "json", false},
		{"console warn", Options{Level: "warn", Format: "console"}, zapcore.WarnLevel, "console", false},
		{"verbose overrides level", Options{Level: "error", Verbose: true}, zapcore.DebugLevel, "json", false},
		{"bad level", Options{Level: "loud"}, 0, "", true},
		{"bad format", Options{Format: "xml"}, 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Config(tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Error("Config() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Config() returned unexpected error: %v", err)
			}
			if cfg.Level.Level() != tt.level {
				t.Errorf("level = %v, expected %v", cfg.Level.Level(), tt.level)
			}
			if cfg.Encoding != tt.encoding {
				t.Errorf("encoding = %q, expected %q", cfg.Encoding, tt.encoding)
			}
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, Options{Level: "info"})
	if err != nil {
		t.Fatalf("New() returned unexpected error: %v", err)
	}

	log.Debug("hidden")
	log.Info("entry appended", zap.String("type", "journal"))
	_ = log.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec["msg"] != "entry appended" || rec["type"] != "journal" || rec["level"] != "info" {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, Options{Format: "console", Verbose: true})
	if err != nil {
		t.Fatalf("New() returned unexpected error: %v", err)
	}

	log.Debug("queue drained")
	_ = log.Sync()

	if !strings.Contains(buf.String(), "queue drained") || !strings.Contains(buf.String(), "DEBUG") {
		t.Errorf("unexpected console output: %q", buf.String())
	}
}
