package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidLogLevel is returned by Validate for an unknown log_level
var ErrInvalidLogLevel = errors.New("invalid log level")

// Config represents the application configuration
type Config struct {
	DatabasePath    string      `yaml:"database_path"`
	SocketPath      string      `yaml:"socket_path"`
	LogPath         string      `yaml:"log_path"`
	LogLevel        string      `yaml:"log_level"`
	HTTPAddr        string      `yaml:"http_addr"`
	EventDebounceMS int         `yaml:"event_debounce_ms"`
	KeyMappings     KeyMappings `yaml:"key_mappings"`
	Theme           Theme       `yaml:"theme"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads config from the user's config directory.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		// Return default config if we can't determine config path
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile reads the config at path, filling in defaults
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := Path()
	if err != nil {
		return err
	}
	return c.SaveFile(configPath)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Validate checks values that have no sensible fallback
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
}

// EventDebounce is the batching window for daemon notifications
func (c *Config) EventDebounce() time.Duration {
	return time.Duration(c.EventDebounceMS) * time.Millisecond
}

// Path returns the path to the config file.
// MYTASKS_CONFIG wins, then XDG_CONFIG_HOME, then ~/.config.
func Path() (string, error) {
	if override := os.Getenv("MYTASKS_CONFIG"); override != "" {
		return override, nil
	}

	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "mytasks", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "mytasks", "config.yaml"), nil
}

// DataDir is where the database, socket and logs live by default
func DataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "mytasks")
	}
	return filepath.Join(homeDir, ".mytasks")
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	dir := DataDir()

	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(dir, "tasks.db")
	}
	if c.SocketPath == "" {
		c.SocketPath = filepath.Join(dir, "mytasks.sock")
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(dir, "logs", "mytasks.log")
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.HTTPAddr == "" {
		c.HTTPAddr = "127.0.0.1:8080"
	}
	if c.EventDebounceMS <= 0 {
		c.EventDebounceMS = 100
	}
	c.KeyMappings.applyDefaults()
	c.Theme.applyDefaults()
}
