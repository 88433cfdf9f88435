// Package cmd contains the CLI commands for prbridge.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version info (set from main)
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"

	// Global flags
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "prbridge",
	Short: "Pull-request bridge daemon for editor clients",
	Long: `prbridge is a lightweight daemon that connects editors to GitHub
pull requests. It exposes pull-request commands (create, checkout, browse)
over JSON-RPC and pushes notifications, status updates and pickers back to
connected editor clients over WebSocket.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets version information from the main package.
func SetVersionInfo(v, bt, gc string) {
	version = v
	buildTime = bt
	gitCommit = gc
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.prbridge/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(tokenCmd)
}

// versionCmd displays version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("prbridge %s\n", version)
		fmt.Printf("  Build time: %s\n", buildTime)
		fmt.Printf("  Git commit: %s\n", gitCommit)
	},
}
