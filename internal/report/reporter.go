// Package report funnels command failures into the uniform user-facing
// reporting path: one log line plus one notification per failure.
package report

import (
	"errors"

	"github.com/prbridge/prbridge/internal/domain"
	"github.com/prbridge/prbridge/internal/domain/events"
	"github.com/prbridge/prbridge/internal/domain/ports"
	"github.com/prbridge/prbridge/internal/forge"
	"github.com/prbridge/prbridge/internal/rpc/message"
	"github.com/rs/zerolog"
)

// Prefixes for user-facing error notifications.
const (
	RemotePrefix  = "GitHub error: "
	GenericPrefix = "Error: "
)

// Reporter classifies a caught failure and renders it to the log surface
// and a user-visible notification. Nothing is deduplicated, retried, or
// swallowed.
type Reporter struct {
	hub    ports.EventHub
	logger zerolog.Logger
}

// New creates a Reporter publishing on the given hub.
func New(hub ports.EventHub, logger zerolog.Logger) *Reporter {
	return &Reporter{
		hub:    hub,
		logger: logger.With().Str("component", "report").Logger(),
	}
}

// Report appends the failure to the log, then classifies it: a rejection by
// the hosting service additionally emits the raw response detail to the
// diagnostic surface and is prefixed as a remote-service error; everything
// else is prefixed as a generic error. The failure's message text appears
// verbatim in the notification either way.
func (r *Reporter) Report(err error) {
	if err == nil {
		return
	}

	r.logger.Error().Err(err).Msg("command failed")

	var remote *forge.RemoteError
	if errors.As(err, &remote) {
		r.hub.Publish(events.NewRemoteErrorEvent(remote.StatusCode, remote.Message, remote.Payload))
		r.hub.Publish(events.NewNotificationEvent(events.LevelError, RemotePrefix+err.Error()))
		return
	}

	r.hub.Publish(events.NewNotificationEvent(events.LevelError, GenericPrefix+err.Error()))
}

// RPCError maps a reported failure onto the JSON-RPC error returned to the
// invoking client, preserving the remote response payload when present.
func RPCError(err error) *message.Error {
	var remote *forge.RemoteError
	if errors.As(err, &remote) {
		return message.ErrForgeRejected(remote.StatusCode, remote.Message, remote.Payload)
	}

	var gitErr *domain.GitError
	if errors.As(err, &gitErr) {
		return message.ErrGitOperationFailed(gitErr.Op, gitErr.Err.Error())
	}

	return message.ErrForgeUnreachable(err.Error())
}
