package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if cfg.OutputDir != "" || cfg.ProbeTimeoutSeconds != 0 || cfg.TopConnected != 0 {
		t.Errorf("missing file should yield zero config, got %+v", cfg)
	}
	if cfg.ProbeTimeout() != 0 {
		t.Errorf("ProbeTimeout() = %v, want 0 so callers apply the default", cfg.ProbeTimeout())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `output_dir = "/tmp/tldr-out"
probe_timeout_seconds = 10
top_connected = 5

[ui]
accent = "#FF5500"
code_theme = "dracula"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OutputDir != "/tmp/tldr-out" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if cfg.ProbeTimeout() != 10*time.Second {
		t.Errorf("ProbeTimeout() = %v, want 10s", cfg.ProbeTimeout())
	}
	if cfg.TopConnected != 5 {
		t.Errorf("TopConnected = %d", cfg.TopConnected)
	}
	if cfg.UI.Accent != "#FF5500" || cfg.UI.CodeTheme != "dracula" {
		t.Errorf("UI = %+v", cfg.UI)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("output_dir = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed TOML")
	}
}
