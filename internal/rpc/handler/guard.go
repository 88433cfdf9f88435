package handler

import (
	"context"
	"encoding/json"

	"github.com/prbridge/prbridge/internal/domain/events"
	"github.com/prbridge/prbridge/internal/domain/ports"
	"github.com/prbridge/prbridge/internal/rpc/message"
	"github.com/prbridge/prbridge/internal/session"
	"github.com/rs/zerolog/log"
)

// GuardWarning is the single user-facing message emitted when a privileged
// method is invoked without a connected session or an open workspace.
const GuardWarning = "Set up a GitHub token and open a project first"

// Guard returns middleware that gates privileged methods. When the session
// is connected and a workspace root is known, the wrapped handler runs
// unchanged. Otherwise the handler is not invoked: one warning notification
// is published and an empty success result is returned. The gate holds no
// state, so wrapped handlers may be invoked any number of times, interleaved.
func Guard(sctx session.Context, hub ports.EventHub) MiddlewareFunc {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, params json.RawMessage) (interface{}, *message.Error) {
			if !sctx.Ready() {
				log.Warn().
					Bool("connected", sctx.Session != nil && sctx.Session.Connected()).
					Str("workspace_root", sctx.WorkspaceRoot).
					Msg("privileged method blocked")

				hub.Publish(events.NewNotificationEvent(events.LevelWarning, GuardWarning))
				return nil, nil
			}

			return next(ctx, params)
		}
	}
}
