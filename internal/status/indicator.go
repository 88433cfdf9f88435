// Package status maintains the pull-request indicator shown in editor
// status bars.
package status

import (
	"context"
	"sync"

	"github.com/prbridge/prbridge/internal/domain/events"
	"github.com/prbridge/prbridge/internal/domain/ports"
	"github.com/rs/zerolog"
)

// Indicator tracks whether the current branch has an open pull request and
// broadcasts changes to connected editors.
type Indicator struct {
	forge  ports.Forge
	repo   ports.Repo
	hub    ports.EventHub
	logger zerolog.Logger

	mu        sync.RWMutex
	hasOpenPR bool
}

// New creates an Indicator.
func New(forge ports.Forge, repo ports.Repo, hub ports.EventHub, logger zerolog.Logger) *Indicator {
	return &Indicator{
		forge:  forge,
		repo:   repo,
		hub:    hub,
		logger: logger.With().Str("component", "status").Logger(),
	}
}

// Update sets the indicator. A nil value means "recompute": the open pull
// requests are listed and matched against the current branch. A recompute
// failure leaves the indicator unchanged; it is logged, not reported.
func (i *Indicator) Update(ctx context.Context, hasOpenPR *bool) {
	value := false

	if hasOpenPR != nil {
		value = *hasOpenPR
	} else {
		derived, err := i.derive(ctx)
		if err != nil {
			i.logger.Warn().Err(err).Msg("failed to derive pull-request indicator")
			return
		}
		value = derived
	}

	i.mu.Lock()
	i.hasOpenPR = value
	i.mu.Unlock()

	i.hub.Publish(events.NewPRIndicatorEvent(value))
}

// derive checks whether any open pull request's head is the current branch.
func (i *Indicator) derive(ctx context.Context) (bool, error) {
	branch, err := i.repo.CurrentBranch(ctx)
	if err != nil {
		return false, err
	}

	prs, err := i.forge.ListPullRequests(ctx)
	if err != nil {
		return false, err
	}

	for _, pr := range prs {
		if pr.HeadRef == branch {
			return true, nil
		}
	}
	return false, nil
}

// HasOpenPR returns the last known indicator value.
func (i *Indicator) HasOpenPR() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.hasOpenPR
}
