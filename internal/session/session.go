// Package session holds the authentication state shared by all commands.
package session

import (
	"sync"

	"github.com/prbridge/prbridge/internal/domain/ports"
)

// Session is the in-memory record of the current token and connectivity.
// It is written only by the activation bootstrap and the token provisioning
// flow, and read by every guarded command. Connected is true iff a non-empty
// token has been used to initialize the forge client.
type Session struct {
	mu        sync.RWMutex
	token     string
	connected bool
}

// New creates an empty, disconnected session.
func New() *Session {
	return &Session{}
}

// Establish stores the token and initializes the forge client with it.
// The token is not validated; an empty token leaves the session disconnected.
func (s *Session) Establish(forge ports.Forge, token string) {
	forge.Connect(token)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.connected = forge.Connected()
}

// Token returns the current token (may be empty).
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Connected reports whether the session is connected.
func (s *Session) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// Context is the read-only view supplied to every guarded command.
type Context struct {
	WorkspaceRoot string
	Session       *Session
}

// Ready reports whether guarded commands may run: the session is connected
// and a workspace root is known.
func (c Context) Ready() bool {
	return c.Session != nil && c.Session.Connected() && c.WorkspaceRoot != ""
}
