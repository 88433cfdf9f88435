package methods

import (
	"context"
	"encoding/json"

	"github.com/prbridge/prbridge/internal/rpc/handler"
	"github.com/prbridge/prbridge/internal/rpc/message"
	"github.com/prbridge/prbridge/internal/session"
)

// IndicatorReader exposes the last known indicator value.
type IndicatorReader interface {
	HasOpenPR() bool
}

// StatusService provides the status/get RPC method. Unguarded so editors
// can render connection state before a token exists.
type StatusService struct {
	version   string
	sctx      session.Context
	repoName  string
	indicator IndicatorReader
}

// NewStatusService creates a new status service.
func NewStatusService(version string, sctx session.Context, repoName string, indicator IndicatorReader) *StatusService {
	return &StatusService{
		version:   version,
		sctx:      sctx,
		repoName:  repoName,
		indicator: indicator,
	}
}

// RegisterMethods registers all status methods with the registry.
func (s *StatusService) RegisterMethods(r *handler.Registry) {
	r.Register("status/get", s.Get)
}

// StatusResult for status/get.
type StatusResult struct {
	Version       string `json:"version"`
	Connected     bool   `json:"connected"`
	WorkspaceRoot string `json:"workspace_root"`
	RepoName      string `json:"repo_name,omitempty"`
	HasOpenPR     bool   `json:"has_open_pr"`
}

// Get returns daemon and session state.
func (s *StatusService) Get(ctx context.Context, params json.RawMessage) (interface{}, *message.Error) {
	return StatusResult{
		Version:       s.version,
		Connected:     s.sctx.Session.Connected(),
		WorkspaceRoot: s.sctx.WorkspaceRoot,
		RepoName:      s.repoName,
		HasOpenPR:     s.indicator.HasOpenPR(),
	}, nil
}
