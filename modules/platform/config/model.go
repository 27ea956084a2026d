package config

import "time"

// Config is the root configuration structure
type Config struct {
	Backend *BackendConfig `yaml:"backend,omitempty"`
	UI      *UIConfig      `yaml:"ui,omitempty"`
	Logger  *LoggerConfig  `yaml:"logger,omitempty"`
}

// BackendConfig describes how to reach the lab operations API
type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	PushEnabled    bool   `yaml:"push_enabled"` // websocket change feed
}

// Timeout returns the request timeout as a duration
func (b *BackendConfig) Timeout() time.Duration {
	if b == nil || b.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// UIConfig holds persisted UI preferences
type UIConfig struct {
	// Mode is the card/table preference inside tabbed views
	Mode string `yaml:"mode"` // "table" or "cards"

	// CompactBreakpoint is the terminal width (columns) below which the
	// compact dashboard variant is forced
	CompactBreakpoint int `yaml:"compact_breakpoint"`

	// WelcomeDismissed persists the one-time welcome banner dismissal
	WelcomeDismissed bool `yaml:"welcome_dismissed"`

	// DefaultTab is the tab shown on startup
	DefaultTab string `yaml:"default_tab"`
}

// LoggerConfig configures the zap logger
type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
	Path   string `yaml:"path"`
}
