package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/prbridge/prbridge/internal/config"
)

var (
	configInitLocal bool
	configInitForce bool
)

// configCmd displays or manages configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display and manage configuration",
	Long: `Display and manage prbridge configuration.

Without subcommands, shows the current effective configuration.

Examples:
  prbridge config              # Show current config
  prbridge config init         # Create config file with defaults
  prbridge config path         # Show config file location
  prbridge config set <key> <value>  # Set a config value`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		printConfig(cfg)
	},
}

// configInitCmd creates a config file with defaults.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file with default settings",
	Long: `Create a config file with default settings and documentation.

By default, creates ~/.prbridge/config.yaml.
Use --local to create ./config.yaml in the current directory.`,
	RunE: runConfigInit,
}

// configPathCmd shows config file location.
var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file location",
	Run:   runConfigPath,
}

// configSetCmd sets a config value.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value by key.

Creates the config file if it doesn't exist.
Keys use dot notation to access nested values.

Examples:
  prbridge config set server.port 9000
  prbridge config set forge.base_branch develop
  prbridge config set logging.level debug`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)

	configInitCmd.Flags().BoolVar(&configInitLocal, "local", false, "create config in current directory instead of ~/.prbridge/")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite existing config file")
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current Configuration:")
	fmt.Println("----------------------")
	fmt.Printf("Repository Path: %s\n", cfg.Repository.Path)
	fmt.Printf("Host:            %s\n", cfg.Server.Host)
	fmt.Printf("Port:            %d\n", cfg.Server.Port)
	fmt.Printf("Base Branch:     %s\n", cfg.Forge.BaseBranch)
	if cfg.Forge.Owner != "" || cfg.Forge.Repo != "" {
		fmt.Printf("Repository:      %s/%s\n", cfg.Forge.Owner, cfg.Forge.Repo)
	}
	if cfg.Forge.APIBaseURL != "" {
		fmt.Printf("API Base URL:    %s\n", cfg.Forge.APIBaseURL)
	}
	fmt.Printf("Log Level:       %s\n", cfg.Logging.Level)
	fmt.Printf("Log Format:      %s\n", cfg.Logging.Format)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	var configPath string

	if configInitLocal {
		configPath = "config.yaml"
	} else {
		configDir, err := config.EnsureConfigDir()
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
		configPath = filepath.Join(configDir, "config.yaml")
	}

	if _, err := os.Stat(configPath); err == nil {
		if !configInitForce {
			return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", configPath)
		}
	}

	if err := os.WriteFile(configPath, []byte(defaultConfigYAML), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Created %s\n", configPath)
	fmt.Println("Edit this file to customize prbridge behavior.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) {
	configDir, err := config.GetConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting config dir: %v\n", err)
		os.Exit(1)
	}

	locations := []string{
		"./config.yaml",
		filepath.Join(configDir, "config.yaml"),
		"/etc/prbridge/config.yaml",
	}

	fmt.Println("Config search paths (in order):")
	for i, loc := range locations {
		exists := "not found"
		if _, err := os.Stat(loc); err == nil {
			exists = "exists"
		}
		fmt.Printf("  %d. %s (%s)\n", i+1, loc, exists)
	}

	fmt.Printf("\nConfig directory: %s\n", configDir)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	configDir, err := config.EnsureConfigDir()
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	configPath := filepath.Join(configDir, "config.yaml")

	var data map[string]interface{}

	if content, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(content, &data); err != nil {
			return fmt.Errorf("failed to parse existing config: %w", err)
		}
	}

	if data == nil {
		data = make(map[string]interface{})
	}

	if err := setNestedValue(data, key, value); err != nil {
		return err
	}

	content, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Set %s = %s in %s\n", key, value, configPath)
	return nil
}

func setNestedValue(data map[string]interface{}, key, value string) error {
	parts := strings.Split(key, ".")
	if len(parts) == 0 || parts[0] == "" {
		return fmt.Errorf("invalid key: %s", key)
	}

	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			current[part] = next
		}
		current = next
	}

	current[parts[len(parts)-1]] = value
	return nil
}

const defaultConfigYAML = `# prbridge configuration

server:
  # Interface and port for the WebSocket/HTTP server.
  host: 127.0.0.1
  port: 8799

repository:
  # Path to the git repository to serve. Empty means the current directory.
  path: ""

forge:
  # Owner and repo are normally derived from the origin remote.
  # Set both here only to override the derivation.
  owner: ""
  repo: ""
  # Base branch for new pull requests.
  base_branch: main
  # API base URL for GitHub Enterprise. Leave empty for github.com.
  api_base_url: ""

git:
  command: git

state:
  # Path of the persisted state file (token, notified version).
  # Empty means ~/.prbridge/state.json.
  path: ""

logging:
  level: info   # trace, debug, info, warn, error
  format: console  # console or json
`
