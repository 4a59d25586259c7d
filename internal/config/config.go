// Package config handles global tldrgen configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the global tldrgen configuration. Every field is
// optional; flags override config values.
type Config struct {
	// OutputDir is where generated artifacts are written (defaults to the
	// current directory).
	OutputDir string `toml:"output_dir"`

	// ProbeTimeoutSeconds bounds each introspection subprocess call.
	ProbeTimeoutSeconds int `toml:"probe_timeout_seconds"`

	// TopConnected caps the most-connected ranking in analytics output.
	TopConnected int `toml:"top_connected"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// CodeTheme sets the Glamour/Chroma theme used for rendered markdown
	// code blocks in --preview mode.
	CodeTheme string `toml:"code_theme"`
}

// ProbeTimeout returns the configured per-call timeout, or zero when unset
// so callers apply their own default.
func (c *Config) ProbeTimeout() time.Duration {
	if c.ProbeTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.ProbeTimeoutSeconds) * time.Second
}

// DefaultPath returns the config file location.
// Checks ~/.config/tldrgen/config.toml first (XDG style), then falls back to
// the platform config dir.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "tldrgen", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "tldrgen", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// Load reads the config file at path. A missing file is not an error: the
// zero Config is returned so defaults apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
