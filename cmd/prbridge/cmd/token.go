package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/prbridge/prbridge/internal/state"
)

// tokenCmd manages the stored GitHub token.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the GitHub token",
}

// tokenSetCmd reads a token from the terminal and stores it.
var tokenSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store a GitHub token",
	Long: `Read a GitHub personal access token from the terminal (input is
hidden) and store it for the daemon to use.

The token is verified against the GitHub API before printing a result;
it is stored either way so a transient network failure does not lose it.`,
	RunE: runTokenSet,
}

// tokenClearCmd removes the stored token.
var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored GitHub token",
	RunE:  runTokenClear,
}

func init() {
	tokenCmd.AddCommand(tokenSetCmd)
	tokenCmd.AddCommand(tokenClearCmd)
}

func runTokenSet(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	fmt.Fprint(os.Stderr, "GitHub token: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}

	token := string(raw)
	if err := store.SetToken(token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	if token == "" {
		fmt.Println("Empty token stored; pull-request commands will stay disabled.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := github.NewClient(nil).WithAuthToken(token)
	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		fmt.Printf("Token stored, but verification failed: %v\n", err)
		return nil
	}

	fmt.Printf("Token stored for %s.\n", user.GetLogin())
	return nil
}

func runTokenClear(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	if err := store.SetToken(""); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	fmt.Println("Token cleared.")
	return nil
}

func openStore() (*state.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	path := cfg.State.Path
	if path == "" {
		path = state.DefaultPath()
	}
	store, err := state.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return store, nil
}
