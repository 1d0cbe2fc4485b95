// Package config handles configuration loading and management for the
// deepwork CLI. It supports XDG config paths, project-level overrides,
// and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the deepwork CLI.
type Config struct {
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Defaults  DefaultsConfig  `mapstructure:"defaults"`
	TUI       TUIConfig       `mapstructure:"tui"`
	Paths     PathsConfig     `mapstructure:"paths"`
}

// AnthropicConfig holds Anthropic API settings for the assistance
// provider.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
	// UseBedrock routes calls through AWS Bedrock instead of the API.
	UseBedrock bool   `mapstructure:"use_bedrock"`
	AWSRegion  string `mapstructure:"aws_region"`
	AWSProfile string `mapstructure:"aws_profile"`
	// Timeout bounds every assistance call; scheduling proceeds without
	// a suggestion once it expires.
	Timeout time.Duration `mapstructure:"timeout"`
}

// DefaultsConfig holds default values for new sessions.
type DefaultsConfig struct {
	DurationMinutes int    `mapstructure:"duration_minutes"`
	Kind            string `mapstructure:"kind"`
}

// TUIConfig holds timer display settings.
type TUIConfig struct {
	RefreshRate time.Duration `mapstructure:"refresh_rate"`
}

// PathsConfig holds data file locations.
type PathsConfig struct {
	// Database is the sqlite file holding task definitions. Empty means
	// the XDG default.
	Database string `mapstructure:"database"`
	// AvailabilityFile is the YAML working-hours/holidays file.
	AvailabilityFile string `mapstructure:"availability_file"`
}

// Load loads configuration from XDG paths, project overrides, and
// environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY)
// 2. Project config (.deepwork.yaml in current directory or parent)
// 3. User config (~/.config/deepwork/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)
	return cfg, nil
}

// Save writes the current configuration to the user config file.
func Save(cfg *Config) error {
	userConfigDir := getUserConfigDir()
	if err := os.MkdirAll(userConfigDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(userConfigDir, "config.yaml")

	v := viper.New()
	v.SetConfigFile(configPath)

	v.Set("anthropic.api_key", cfg.Anthropic.APIKey)
	v.Set("anthropic.model", cfg.Anthropic.Model)
	v.Set("anthropic.use_bedrock", cfg.Anthropic.UseBedrock)
	v.Set("anthropic.aws_region", cfg.Anthropic.AWSRegion)
	v.Set("anthropic.aws_profile", cfg.Anthropic.AWSProfile)
	v.Set("anthropic.timeout", cfg.Anthropic.Timeout.String())
	v.Set("defaults.duration_minutes", cfg.Defaults.DurationMinutes)
	v.Set("defaults.kind", cfg.Defaults.Kind)
	v.Set("tui.refresh_rate", cfg.TUI.RefreshRate.String())
	v.Set("paths.database", cfg.Paths.Database)
	v.Set("paths.availability_file", cfg.Paths.AvailabilityFile)

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// DefaultAvailabilityPath returns the default availability file path.
func DefaultAvailabilityPath() string {
	return filepath.Join(getUserConfigDir(), "availability.yaml")
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "")
	v.SetDefault("anthropic.use_bedrock", false)
	v.SetDefault("anthropic.timeout", "15s")

	v.SetDefault("defaults.duration_minutes", 60)
	v.SetDefault("defaults.kind", "deep_work")

	v.SetDefault("tui.refresh_rate", "250ms")

	v.SetDefault("paths.database", "")
	v.SetDefault("paths.availability_file", DefaultAvailabilityPath())
}

// getUserConfigDir returns the XDG config directory for deepwork.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "deepwork")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "deepwork")
	}
	return filepath.Join(home, ".config", "deepwork")
}

// findProjectConfig searches for .deepwork.yaml in the current
// directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".deepwork.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Anthropic: AnthropicConfig{
			Timeout: 15 * time.Second,
		},
		Defaults: DefaultsConfig{
			DurationMinutes: 60,
			Kind:            "deep_work",
		},
		TUI: TUIConfig{
			RefreshRate: 250 * time.Millisecond,
		},
		Paths: PathsConfig{
			AvailabilityFile: DefaultAvailabilityPath(),
		},
	}
}
