/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the bookdb configuration
type Config struct {
	DBPath  string  `yaml:"db_path"`
	Store   Store   `yaml:"store"`
	Logging Logging `yaml:"logging"`
	Metrics Metrics `yaml:"metrics"`
}

// Store contains backing file options
type Store struct {
	Fsync bool `yaml:"fsync"`
}

// Logging contains logging configuration
type Logging struct {
	Level   string `yaml:"level"`
	NoColor bool   `yaml:"no_color"`
}

// Metrics contains metrics export configuration
type Metrics struct {
	// TextfilePath is written in node_exporter textfile format on exit; empty disables export
	TextfilePath string `yaml:"textfile_path"`
}

var validLevels = []string{"debug", "info", "warn", "warning", "error"}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DBPath: "",
		Store: Store{
			Fsync: false,
		},
		Logging: Logging{
			Level: "warn",
		},
	}
}

// Validate checks values that cannot be fixed up later
func (c *Config) Validate() error {
	level := strings.ToLower(c.Logging.Level)
	for _, l := range validLevels {
		if level == l {
			return nil
		}
	}
	return fmt.Errorf("invalid logging level %q", c.Logging.Level)
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so omitted keys keep their default values
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return config, nil
}

// LoadOrDefault loads configPath if it exists and falls back to defaults otherwise.
// Any other failure, such as invalid YAML, is returned.
func LoadOrDefault(configPath string) (*Config, error) {
	if configPath == "" || !ConfigExists(configPath) {
		return DefaultConfig(), nil
	}
	return LoadConfig(configPath)
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ErrConfigExists is returned by BootstrapConfig when it would overwrite a file
var ErrConfigExists = errors.New("config file already exists")

// BootstrapConfig writes a default configuration pointing at dbPath.
// An existing file is only replaced when force is set.
func BootstrapConfig(configPath string, dbPath string, force bool) (*Config, error) {
	if ConfigExists(configPath) && !force {
		return nil, fmt.Errorf("%w: %s", ErrConfigExists, configPath)
	}

	config := DefaultConfig()
	if dbPath != "" {
		absPath, err := filepath.Abs(dbPath)
		if err != nil {
			return nil, fmt.Errorf("invalid database path: %w", err)
		}
		config.DBPath = absPath
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./bookdb.yaml"
	}

	// For Linux/macOS, use ~/.config/bookdb/config.yaml
	configDir := filepath.Join(homeDir, ".config", "bookdb")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
