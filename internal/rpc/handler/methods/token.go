package methods

import (
	"context"
	"encoding/json"

	"github.com/prbridge/prbridge/internal/domain/events"
	"github.com/prbridge/prbridge/internal/domain/ports"
	"github.com/prbridge/prbridge/internal/rpc/handler"
	"github.com/prbridge/prbridge/internal/rpc/message"
	"github.com/prbridge/prbridge/internal/session"
	"github.com/rs/zerolog/log"
)

// TokenStore persists the token across restarts.
type TokenStore interface {
	SetToken(token string) error
}

// TokenService provides the token provisioning RPC methods. They are not
// guarded: setting a token must work while disconnected.
type TokenService struct {
	sess  *session.Session
	forge ports.Forge
	store TokenStore
	hub   ports.EventHub
}

// NewTokenService creates a new token service.
func NewTokenService(sess *session.Session, forge ports.Forge, store TokenStore, hub ports.EventHub) *TokenService {
	return &TokenService{
		sess:  sess,
		forge: forge,
		store: store,
		hub:   hub,
	}
}

// RegisterMethods registers all token methods with the registry.
func (s *TokenService) RegisterMethods(r *handler.Registry) {
	r.Register("token/set", s.Set)
}

// SetParams for token/set.
type SetParams struct {
	Token string `json:"token"`
}

// SetResult for token/set.
type SetResult struct {
	Connected bool `json:"connected"`
}

// Set persists the submitted token, including an empty string, and
// initializes the forge client with it. No validation happens here; a bad
// token surfaces when a later command fails.
func (s *TokenService) Set(ctx context.Context, params json.RawMessage) (interface{}, *message.Error) {
	var p SetParams
	if params != nil {
		if err := json.Unmarshal(params, &p); err != nil {
			return nil, message.ErrInvalidParams("invalid params: " + err.Error())
		}
	}

	if err := s.store.SetToken(p.Token); err != nil {
		log.Error().Err(err).Msg("failed to persist token")
		return nil, message.ErrInternalError("failed to persist token: " + err.Error())
	}

	s.sess.Establish(s.forge, p.Token)

	log.Info().Bool("connected", s.sess.Connected()).Msg("token updated")

	s.hub.Publish(events.NewSessionChangedEvent(s.sess.Connected()))

	return SetResult{Connected: s.sess.Connected()}, nil
}
