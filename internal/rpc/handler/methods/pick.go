package methods

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/prbridge/prbridge/internal/domain"
	"github.com/prbridge/prbridge/internal/rpc/handler"
	"github.com/prbridge/prbridge/internal/rpc/message"
)

// PickResolver completes a pending pick request with the client's answer.
type PickResolver interface {
	Resolve(requestID string, index *int) error
}

// PickService provides the ui/pick RPC method, the answering half of the
// pick_request event.
type PickService struct {
	resolver PickResolver
}

// NewPickService creates a new pick service.
func NewPickService(resolver PickResolver) *PickService {
	return &PickService{resolver: resolver}
}

// RegisterMethods registers all pick methods with the registry.
func (s *PickService) RegisterMethods(r *handler.Registry) {
	r.Register("ui/pick", s.Resolve)
}

// ResolveParams for ui/pick. Index absent means the selection was cancelled.
type ResolveParams struct {
	RequestID string `json:"request_id"`
	Index     *int   `json:"index,omitempty"`
}

// ResolveResult for ui/pick.
type ResolveResult struct {
	Status string `json:"status"`
}

// Resolve answers a pending pick request.
func (s *PickService) Resolve(ctx context.Context, params json.RawMessage) (interface{}, *message.Error) {
	var p ResolveParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, message.ErrInvalidParams("invalid params: " + err.Error())
	}

	if p.RequestID == "" {
		return nil, message.ErrInvalidParams("request_id is required")
	}

	if err := s.resolver.Resolve(p.RequestID, p.Index); err != nil {
		if errors.Is(err, domain.ErrPickNotFound) {
			return nil, message.ErrPickNotFound(p.RequestID)
		}
		return nil, message.ErrInternalError(err.Error())
	}

	return ResolveResult{Status: "resolved"}, nil
}
