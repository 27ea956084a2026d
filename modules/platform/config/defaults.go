package config

import (
	"os"
	"path/filepath"
)

const (
	// DefaultBaseURL points at a local development backend
	DefaultBaseURL = "http://localhost:8000"

	// DefaultCompactBreakpoint is the terminal width below which the
	// compact dashboard takes over
	DefaultCompactBreakpoint = 100
)

// DefaultConfig returns a configuration with all defaults applied
func DefaultConfig() *Config {
	return &Config{
		Backend: DefaultBackendConfig(),
		UI:      DefaultUIConfig(),
		Logger:  DefaultLoggerConfig(),
	}
}

// DefaultBackendConfig returns the default backend settings
func DefaultBackendConfig() *BackendConfig {
	return &BackendConfig{
		BaseURL:        DefaultBaseURL,
		TimeoutSeconds: 15,
		PushEnabled:    true,
	}
}

// DefaultUIConfig returns the default UI preferences
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Mode:              "table",
		CompactBreakpoint: DefaultCompactBreakpoint,
		DefaultTab:        "dashboard",
	}
}

// DefaultLoggerConfig returns the default logger settings
func DefaultLoggerConfig() *LoggerConfig {
	logPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		logPath = filepath.Join(home, ".config", "labops", "labops.log")
	}
	return &LoggerConfig{
		Level:  "info",
		Format: "console",
		Path:   logPath,
	}
}
