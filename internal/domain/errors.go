// Package domain contains domain errors used throughout the application.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	ErrNotGitRepo       = errors.New("not a git repository")
	ErrNotConnected     = errors.New("not connected: no token configured")
	ErrNoWorkspace      = errors.New("no workspace open")
	ErrHubNotRunning    = errors.New("event hub is not running")
	ErrSubscriberClosed = errors.New("subscriber is closed")
	ErrPickPending      = errors.New("pick request already pending")
	ErrPickNotFound     = errors.New("pick request not found")
)

// GitError represents an error from a git CLI operation.
type GitError struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *GitError) Error() string {
	return fmt.Sprintf("git %s: %v", e.Op, e.Err)
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// NewGitError creates a new GitError.
func NewGitError(op string, err error) *GitError {
	return &GitError{Op: op, Err: err}
}
