package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFileName is the default config file name
	DefaultConfigFileName = "labops.yaml"
)

// Loader handles configuration loading and saving
type Loader struct {
	configPath string
}

// NewLoader creates a new config loader
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath: configPath,
	}
}

// Load loads configuration from file
func (l *Loader) Load() (*Config, error) {
	return l.LoadWithCreate(false)
}

// LoadWithCreate loads configuration from file, optionally creating it if missing
func (l *Loader) LoadWithCreate(createIfMissing bool) (*Config, error) {
	if _, err := os.Stat(l.configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if createIfMissing {
			if err := l.Save(cfg); err != nil {
				return nil, fmt.Errorf("failed to create config file: %w", err)
			}
		}
		return cfg, nil
	}

	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for missing sections
	if cfg.Backend == nil {
		cfg.Backend = DefaultBackendConfig()
	}
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = DefaultBaseURL
	}
	if cfg.UI == nil {
		cfg.UI = DefaultUIConfig()
	}
	if cfg.UI.CompactBreakpoint <= 0 {
		cfg.UI.CompactBreakpoint = DefaultCompactBreakpoint
	}
	if cfg.UI.Mode == "" {
		cfg.UI.Mode = "table"
	}
	if cfg.Logger == nil {
		cfg.Logger = DefaultLoggerConfig()
	}

	return &cfg, nil
}

// Save saves configuration to file
func (l *Loader) Save(cfg *Config) error {
	dir := filepath.Dir(l.configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(l.configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetPath returns the config file path
func (l *Loader) GetPath() string {
	return l.configPath
}

// Exists checks if config file exists
func (l *Loader) Exists() bool {
	_, err := os.Stat(l.configPath)
	return err == nil
}

// FindConfigFile searches for config file in standard locations
func FindConfigFile() string {
	// Priority order:
	// 1. Current directory
	// 2. Executable directory
	// 3. User config directory

	cwd, err := os.Getwd()
	if err == nil {
		configPath := filepath.Join(cwd, DefaultConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}

	execPath, err := os.Executable()
	if err == nil {
		configPath := filepath.Join(filepath.Dir(execPath), DefaultConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "labops", DefaultConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}

	// Default to the user config directory so a first Save lands somewhere
	// sensible even when no file exists yet
	if homeDir != "" {
		return filepath.Join(homeDir, ".config", "labops", DefaultConfigFileName)
	}
	return DefaultConfigFileName
}
