// Package config handles configuration management for prbridge.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Repository RepositoryConfig `mapstructure:"repository"`
	Forge      ForgeConfig      `mapstructure:"forge"`
	Git        GitConfig        `mapstructure:"git"`
	State      StateConfig      `mapstructure:"state"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// RepositoryConfig holds repository-related configuration.
type RepositoryConfig struct {
	Path string `mapstructure:"path"`
}

// ForgeConfig holds the hosting-service configuration. Owner and Repo are
// normally derived from the origin remote and only set here to override.
type ForgeConfig struct {
	Owner      string `mapstructure:"owner"`
	Repo       string `mapstructure:"repo"`
	BaseBranch string `mapstructure:"base_branch"`
	APIBaseURL string `mapstructure:"api_base_url"` // empty for github.com
}

// GitConfig holds Git configuration.
type GitConfig struct {
	Command string `mapstructure:"command"`
}

// StateConfig holds persisted-state configuration.
type StateConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from files and environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default search paths
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.prbridge")
		v.AddConfigPath("/etc/prbridge")
	}

	// Environment variable prefix
	v.SetEnvPrefix("PRBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Read config file (optional - not an error if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	// Post-process configuration
	if err := postProcess(&cfg); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8799)

	// Repository defaults
	v.SetDefault("repository.path", "")

	// Forge defaults
	v.SetDefault("forge.owner", "")
	v.SetDefault("forge.repo", "")
	v.SetDefault("forge.base_branch", "main")
	v.SetDefault("forge.api_base_url", "")

	// Git defaults
	v.SetDefault("git.command", "git")

	// State defaults
	v.SetDefault("state.path", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// postProcess applies post-processing to configuration.
func postProcess(cfg *Config) error {
	// If repository path is empty, use current directory
	if cfg.Repository.Path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
		cfg.Repository.Path = cwd
	}

	// Resolve to absolute path
	absPath, err := filepath.Abs(cfg.Repository.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve repository path: %w", err)
	}
	cfg.Repository.Path = absPath

	return nil
}

// GetConfigDir returns the user config directory for prbridge.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".prbridge"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
