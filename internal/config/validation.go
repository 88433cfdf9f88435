package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Validate validates the configuration.
func Validate(cfg *Config) error {
	if err := validateServer(&cfg.Server); err != nil {
		return err
	}

	if err := validateRepository(&cfg.Repository); err != nil {
		return err
	}

	if err := validateForge(&cfg.Forge); err != nil {
		return err
	}

	if err := validateLogging(&cfg.Logging); err != nil {
		return err
	}

	return nil
}

func validateServer(cfg *ServerConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.Host == "" {
		return fmt.Errorf("server.host must not be empty")
	}
	return nil
}

func validateRepository(cfg *RepositoryConfig) error {
	info, err := os.Stat(cfg.Path)
	if err != nil {
		return fmt.Errorf("repository.path %q: %w", cfg.Path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("repository.path %q is not a directory", cfg.Path)
	}
	return nil
}

func validateForge(cfg *ForgeConfig) error {
	// Owner and repo must be set together; both empty means derive from
	// the origin remote.
	if (cfg.Owner == "") != (cfg.Repo == "") {
		return fmt.Errorf("forge.owner and forge.repo must both be set or both be empty")
	}

	if cfg.BaseBranch == "" {
		return fmt.Errorf("forge.base_branch must not be empty")
	}

	if cfg.APIBaseURL != "" {
		u, err := url.Parse(cfg.APIBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("forge.api_base_url %q is not a valid URL", cfg.APIBaseURL)
		}
	}

	return nil
}

func validateLogging(cfg *LoggingConfig) error {
	switch strings.ToLower(cfg.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "":
	default:
		return fmt.Errorf("logging.level %q is not a valid level", cfg.Level)
	}

	switch strings.ToLower(cfg.Format) {
	case "console", "json", "":
	default:
		return fmt.Errorf("logging.format %q must be console or json", cfg.Format)
	}

	return nil
}
