// Package git implements the Git CLI wrapper for the local working copy.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/prbridge/prbridge/internal/domain"
	"github.com/rs/zerolog/log"
)

// Repo implements the ports.Repo interface by shelling out to the git CLI.
type Repo struct {
	path    string
	command string

	repoRoot string
	repoName string
	isRepo   bool
}

// NewRepo creates a new Repo rooted at path. command is the git binary to
// invoke (usually "git").
func NewRepo(path, command string) *Repo {
	r := &Repo{
		path:    path,
		command: command,
	}

	r.detectRepo()

	return r
}

// detectRepo checks if the path is a git repository.
func (r *Repo) detectRepo() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.command, "rev-parse", "--show-toplevel")
	cmd.Dir = r.path
	output, err := cmd.Output()
	if err != nil {
		r.isRepo = false
		if exitErr, ok := err.(*exec.ExitError); ok {
			log.Warn().
				Str("path", r.path).
				Str("stderr", string(exitErr.Stderr)).
				Err(err).
				Msg("not a git repository")
		} else {
			log.Warn().
				Str("path", r.path).
				Err(err).
				Msg("not a git repository")
		}
		return
	}

	r.repoRoot = strings.TrimSpace(string(output))
	r.repoName = filepath.Base(r.repoRoot)
	r.isRepo = true

	log.Info().
		Str("root", r.repoRoot).
		Str("name", r.repoName).
		Msg("git repository detected")
}

// IsGitRepo checks if the configured path is a git repository.
func (r *Repo) IsGitRepo() bool {
	return r.isRepo
}

// Root returns the root path of the repository. Empty when not a repo.
func (r *Repo) Root() string {
	return r.repoRoot
}

// Name returns the repository name.
func (r *Repo) Name() string {
	return r.repoName
}

// CurrentBranch returns the currently checked out branch.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", domain.NewGitError("current-branch", err)
	}
	return strings.TrimSpace(out), nil
}

// HeadSubject returns the subject line of the latest commit.
func (r *Repo) HeadSubject(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "log", "-1", "--format=%s")
	if err != nil {
		return "", domain.NewGitError("head-subject", err)
	}
	return strings.TrimSpace(out), nil
}

// OriginOwnerRepo parses owner and repo name from the origin remote URL.
func (r *Repo) OriginOwnerRepo(ctx context.Context) (string, string, error) {
	out, err := r.run(ctx, "remote", "get-url", "origin")
	if err != nil {
		return "", "", domain.NewGitError("remote-url", err)
	}

	owner, repo, ok := ParseRemoteURL(strings.TrimSpace(out))
	if !ok {
		return "", "", domain.NewGitError("remote-url", fmt.Errorf("cannot parse origin URL %q", strings.TrimSpace(out)))
	}
	return owner, repo, nil
}

// Checkout fetches the given ref from origin and checks it out.
func (r *Repo) Checkout(ctx context.Context, ref string) error {
	if _, err := r.run(ctx, "fetch", "origin", ref); err != nil {
		return domain.NewGitError("fetch", err)
	}
	if _, err := r.run(ctx, "checkout", ref); err != nil {
		return domain.NewGitError("checkout", err)
	}

	log.Info().Str("ref", ref).Msg("checked out branch")
	return nil
}

// run executes a git subcommand in the repository root.
func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	if !r.isRepo {
		return "", domain.ErrNotGitRepo
	}

	cmd := exec.CommandContext(ctx, r.command, args...)
	cmd.Dir = r.repoRoot

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("%s: %s", args[0], strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(output), nil
}

// ParseRemoteURL extracts owner and repo from a git remote URL. Supports
// both SSH (git@host:owner/repo.git) and HTTP(S) forms.
func ParseRemoteURL(url string) (owner, repo string, ok bool) {
	url = strings.TrimSuffix(url, ".git")

	var path string
	switch {
	case strings.Contains(url, "://"):
		// https://host/owner/repo
		parts := strings.SplitN(url, "://", 2)
		idx := strings.Index(parts[1], "/")
		if idx < 0 {
			return "", "", false
		}
		path = parts[1][idx+1:]
	case strings.Contains(url, "@") && strings.Contains(url, ":"):
		// git@host:owner/repo
		parts := strings.SplitN(url, ":", 2)
		path = parts[1]
	default:
		return "", "", false
	}

	path = strings.Trim(path, "/")
	segments := strings.Split(path, "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return "", "", false
	}
	return segments[0], segments[1], true
}
