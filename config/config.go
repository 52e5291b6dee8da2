// Package config provides configuration loading and management for the
// address book.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete address book configuration
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// DataConfig configures where the address book is persisted
type DataConfig struct {
	// Path is the address book JSON file (default: data/addressbook.json)
	Path string `yaml:"path" env:"ADDRESSBOOK_DATA_PATH"`
	// WatchDebounce is how long `addressbook watch` waits after a write
	// before re-checking the file
	WatchDebounce time.Duration `yaml:"watch_debounce" env:"ADDRESSBOOK_WATCH_DEBOUNCE"`
}

// LogConfig configures diagnostic logging
type LogConfig struct {
	// Level is one of debug, info, warn, error (default: warn)
	Level string `yaml:"level" env:"ADDRESSBOOK_LOG_LEVEL"`
	// Format is text or json (default: text)
	Format string `yaml:"format" env:"ADDRESSBOOK_LOG_FORMAT"`
}

// MetricsConfig configures the Prometheus textfile export
type MetricsConfig struct {
	// File is written on exit when set (empty = disabled)
	File string `yaml:"file" env:"ADDRESSBOOK_METRICS_FILE"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Path:          filepath.Join("data", "addressbook.json"),
			WatchDebounce: 300 * time.Millisecond,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Metrics: MetricsConfig{
			File: "", // Disabled
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return fmt.Errorf("data.path is required")
	}
	if c.Data.WatchDebounce < 0 {
		return fmt.Errorf("data.watch_debounce must not be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	overlay, err := loadOverlay(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	config := DefaultConfig()
	config.Merge(overlay)
	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Data
	if other.Data.Path != "" {
		c.Data.Path = other.Data.Path
	}
	if other.Data.WatchDebounce != 0 {
		c.Data.WatchDebounce = other.Data.WatchDebounce
	}

	// Log
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}

	// Metrics
	if other.Metrics.File != "" {
		c.Metrics.File = other.Metrics.File
	}
}
