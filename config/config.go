// Package config loads the TOML settings file and merges it with the
// environment and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/chat"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables read by Resolve.
const (
	EnvAPIKey = "GEMINI_API_KEY"
	EnvModel  = "GEMINI_MODEL"
)

// Config is the resolved application configuration.
type Config struct {
	Model        string      `toml:"model"`
	BaseURL      string      `toml:"base_url"`
	SystemPrompt string      `toml:"system_prompt"`
	DebugLog     string      `toml:"debug_log"`
	Theme        ThemeConfig `toml:"theme"`

	// APIKey is never read from the file.
	APIKey string `toml:"-"`
	// Source is the file the config was loaded from, if any.
	Source string `toml:"-"`
}

// ThemeConfig overrides individual ANSI indices of the default theme.
// Absent keys keep their default.
type ThemeConfig struct {
	User      *int `toml:"user"`
	Assistant *int `toml:"assistant"`
	System    *int `toml:"system"`
	Error     *int `toml:"error"`
	Muted     *int `toml:"muted"`
	Accent    *int `toml:"accent"`
}

// Resolve applies the overrides on top of base.
func (tc ThemeConfig) Resolve(base chat.Theme) chat.Theme {
	set := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	set(&base.User, tc.User)
	set(&base.Assistant, tc.Assistant)
	set(&base.System, tc.System)
	set(&base.Error, tc.Error)
	set(&base.Muted, tc.Muted)
	set(&base.Accent, tc.Accent)
	return base
}

// Overrides holds command-line values. Empty fields are ignored.
type Overrides struct {
	Model        string
	APIKey       string
	BaseURL      string
	DebugLog     string
	SystemPrompt string
}

// DefaultPath returns ~/.config/chat/config.toml, or "" when the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "chat", "config.toml")
}

// Load reads the config file at path. A missing file is not an error.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// Resolve loads the file at path and layers the environment and overrides
// on top: flags win over the environment, which wins over the file.
func Resolve(path string, getenv func(string) string, o Overrides) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}

	pick := func(dst *string, vals ...string) {
		for _, v := range vals {
			if v = strings.TrimSpace(v); v != "" {
				*dst = v
				return
			}
		}
	}
	pick(&cfg.APIKey, o.APIKey, getenv(EnvAPIKey))
	pick(&cfg.Model, o.Model, getenv(EnvModel))
	pick(&cfg.BaseURL, o.BaseURL)
	pick(&cfg.DebugLog, o.DebugLog)
	pick(&cfg.SystemPrompt, o.SystemPrompt)
	return cfg, nil
}
