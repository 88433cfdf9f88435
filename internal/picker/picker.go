// Package picker implements the server-driven selection flow: the daemon
// publishes a pick_request event to connected editors and waits for one of
// them to answer via the ui/pick method.
package picker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prbridge/prbridge/internal/domain"
	"github.com/prbridge/prbridge/internal/domain/events"
	"github.com/prbridge/prbridge/internal/domain/ports"
	"github.com/rs/zerolog"
)

// DefaultTimeout is how long a pick request stays open before it resolves
// to no selection.
const DefaultTimeout = 5 * time.Minute

type pendingPick struct {
	ch    chan response
	count int
}

type response struct {
	index int
	ok    bool
}

// Picker tracks pick requests awaiting an editor response.
type Picker struct {
	hub     ports.EventHub
	logger  zerolog.Logger
	timeout time.Duration

	mu      sync.Mutex
	pending map[string]*pendingPick
}

// New creates a Picker publishing on the given hub.
func New(hub ports.EventHub, logger zerolog.Logger) *Picker {
	return &Picker{
		hub:     hub,
		logger:  logger.With().Str("component", "picker").Logger(),
		timeout: DefaultTimeout,
		pending: make(map[string]*pendingPick),
	}
}

// SetTimeout overrides the pick timeout. Used in tests.
func (p *Picker) SetTimeout(d time.Duration) {
	p.timeout = d
}

// Pick publishes a selection request and blocks until a client answers, the
// context ends, or the timeout elapses. It returns the selected index and
// whether a selection was made. Cancellation and timeout both resolve to no
// selection, indistinguishable from an empty list at the caller.
func (p *Picker) Pick(ctx context.Context, title string, items []events.PickItem) (int, bool) {
	id := uuid.New().String()
	pick := &pendingPick{
		ch:    make(chan response, 1),
		count: len(items),
	}

	p.mu.Lock()
	p.pending[id] = pick
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		delete(p.pending, id)
		p.mu.Unlock()
	}()

	p.hub.Publish(events.NewPickRequestEvent(id, title, items))

	p.logger.Debug().
		Str("request_id", id).
		Int("items", len(items)).
		Msg("pick request published")

	select {
	case r := <-pick.ch:
		return r.index, r.ok
	case <-ctx.Done():
		return 0, false
	case <-time.After(p.timeout):
		p.logger.Debug().Str("request_id", id).Msg("pick request timed out")
		return 0, false
	}
}

// Resolve answers a pending pick request. A nil index (or one out of range)
// counts as a cancellation. Resolving an unknown request is an error.
func (p *Picker) Resolve(requestID string, index *int) error {
	p.mu.Lock()
	pick, ok := p.pending[requestID]
	if ok {
		delete(p.pending, requestID)
	}
	p.mu.Unlock()

	if !ok {
		return domain.ErrPickNotFound
	}

	r := response{}
	if index != nil && *index >= 0 && *index < pick.count {
		r = response{index: *index, ok: true}
	}

	pick.ch <- r
	return nil
}

// PendingCount returns the number of open pick requests.
func (p *Picker) PendingCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}
