// Package config handles configuration loading and management for coscribe.
// It supports XDG config paths, project-level overrides, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/coscribe/coscribe/pkg/models"
)

// Config holds all configuration for coscribe.
type Config struct {
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Defaults  DefaultsConfig  `mapstructure:"defaults"`
	Board     BoardConfig     `mapstructure:"board"`
}

// AnthropicConfig holds Anthropic API settings for the plan proposer.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// DatabaseConfig holds the state database settings.
type DatabaseConfig struct {
	// Path is the sqlite database file. Empty means the XDG data path.
	Path string `mapstructure:"path"`
}

// DefaultsConfig holds default values for new runs.
type DefaultsConfig struct {
	// WorkspaceID identifies the workspace when none is given on the command line.
	WorkspaceID string `mapstructure:"workspace_id"`
	// MaxParallelAgents is the admission cap applied to new runs.
	MaxParallelAgents int `mapstructure:"max_parallel_agents"`
}

// BoardConfig holds board display settings.
type BoardConfig struct {
	RefreshRate time.Duration `mapstructure:"refresh_rate"`
}

// Load loads configuration from XDG paths, project overrides, and environment variables.
// Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY, COSCRIBE_DB)
// 2. Project config (.coscribe.yaml in current directory or parent)
// 3. User config (~/.config/coscribe/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Load user config from XDG path
	userConfigDir := getUserConfigDir()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(userConfigDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	// Load project config if present
	projectConfig := findProjectConfig()
	if projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			// Merge project config (takes precedence)
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	// Environment variable overrides
	v.AutomaticEnv()
	v.SetEnvPrefix("")

	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("database.path", "COSCRIBE_DB")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand ${VAR} references
	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)
	cfg.Database.Path = expandEnv(cfg.Database.Path)

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

	cfg.Anthropic.APIKey = expandEnv(cfg.Anthropic.APIKey)
	cfg.Database.Path = expandEnv(cfg.Database.Path)

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
	v.Set("database.path", cfg.Database.Path)
	v.Set("defaults.workspace_id", cfg.Defaults.WorkspaceID)
	v.Set("defaults.max_parallel_agents", cfg.Defaults.MaxParallelAgents)
	v.Set("board.refresh_rate", cfg.Board.RefreshRate.String())

	return v.WriteConfig()
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it exists.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5")

	v.SetDefault("database.path", "")

	v.SetDefault("defaults.workspace_id", "default")
	v.SetDefault("defaults.max_parallel_agents", 3)

	v.SetDefault("board.refresh_rate", "1s")
}

// getUserConfigDir returns the XDG config directory for coscribe.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "coscribe")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "coscribe")
	}
	return filepath.Join(home, ".config", "coscribe")
}

// findProjectConfig searches for .coscribe.yaml in the current directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".coscribe.yaml")
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

func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Anthropic: AnthropicConfig{
			APIKey: "",
			Model:  "claude-sonnet-4-5",
		},
		Database: DatabaseConfig{
			Path: "",
		},
		Defaults: DefaultsConfig{
			WorkspaceID:       "default",
			MaxParallelAgents: 3,
		},
		Board: BoardConfig{
			RefreshRate: time.Second,
		},
	}
}

// Validate checks that configured values fall inside the ranges the
// engine will accept.
func (c *Config) Validate() error {
	if c.Defaults.MaxParallelAgents < models.MinParallelAgents ||
		c.Defaults.MaxParallelAgents > models.MaxParallelAgents {
		return fmt.Errorf("defaults.max_parallel_agents must be between %d and %d",
			models.MinParallelAgents, models.MaxParallelAgents)
	}
	if c.Board.RefreshRate <= 0 {
		return fmt.Errorf("board.refresh_rate must be positive")
	}
	return nil
}
