package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/prbridge/prbridge/internal/app"
	"github.com/prbridge/prbridge/internal/config"
)

var (
	repoPath   string
	port       int
	baseBranch string
)

// startCmd represents the start command.
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the prbridge daemon",
	Long: `Start the prbridge daemon to serve pull-request commands to
connected editor clients.

The daemon watches the configured repository, talks to GitHub with the
stored token, and accepts JSON-RPC requests over WebSocket.

Example:
  prbridge start
  prbridge start --repo /path/to/project
  prbridge start --port 8799
  prbridge start --base develop`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().StringVar(&repoPath, "repo", "", "path to repository (default: current directory)")
	startCmd.Flags().IntVar(&port, "port", 0, "server port for HTTP and WebSocket (default: 8799)")
	startCmd.Flags().StringVar(&baseBranch, "base", "", "base branch for new pull requests (default: main)")
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with flags
	if repoPath != "" {
		cfg.Repository.Path = repoPath
	}
	if port != 0 {
		cfg.Server.Port = port
	}
	if baseBranch != "" {
		cfg.Forge.BaseBranch = baseBranch
	}

	// Re-validate after overrides
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	setupLogging(cfg)

	log.Info().
		Str("version", version).
		Str("repo", cfg.Repository.Path).
		Int("port", cfg.Server.Port).
		Msg("starting prbridge")

	application, err := app.New(cfg, version)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	// Graceful shutdown on SIGINT/SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	if err := application.Start(ctx); err != nil {
		return fmt.Errorf("application error: %w", err)
	}

	log.Info().Msg("prbridge stopped")
	return nil
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Logging.Format == "console" || verbose {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}
