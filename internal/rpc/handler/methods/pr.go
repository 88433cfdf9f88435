package methods

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/browser"
	"github.com/prbridge/prbridge/internal/domain/events"
	"github.com/prbridge/prbridge/internal/domain/ports"
	"github.com/prbridge/prbridge/internal/report"
	"github.com/prbridge/prbridge/internal/rpc/handler"
	"github.com/prbridge/prbridge/internal/rpc/message"
)

// Picker presents a selection to connected editors and waits for an answer.
type Picker interface {
	// Pick returns the selected index and whether a selection was made.
	Pick(ctx context.Context, title string, items []events.PickItem) (int, bool)
}

// Indicator is the status-bar pull-request indicator.
type Indicator interface {
	// Update sets the indicator; nil means recompute from current state.
	Update(ctx context.Context, hasOpenPR *bool)
}

// Reporter funnels a caught failure into the uniform reporting path.
type Reporter interface {
	Report(err error)
}

// PRService provides the pull-request RPC methods. All of its methods are
// privileged: the guard middleware is applied at registration.
type PRService struct {
	forge      ports.Forge
	repo       ports.Repo
	picker     Picker
	indicator  Indicator
	reporter   Reporter
	hub        ports.EventHub
	baseBranch string
	guard      handler.MiddlewareFunc

	// openURL is swapped out in tests.
	openURL func(url string) error
}

// NewPRService creates a new pull-request service.
func NewPRService(forge ports.Forge, repo ports.Repo, picker Picker, indicator Indicator, reporter Reporter, hub ports.EventHub, baseBranch string, guard handler.MiddlewareFunc) *PRService {
	return &PRService{
		forge:      forge,
		repo:       repo,
		picker:     picker,
		indicator:  indicator,
		reporter:   reporter,
		hub:        hub,
		baseBranch: baseBranch,
		guard:      guard,
		openURL:    browser.OpenURL,
	}
}

// RegisterMethods registers all pull-request methods with the registry.
func (s *PRService) RegisterMethods(r *handler.Registry) {
	r.Register("pr/create", s.guard(s.Create))
	r.Register("pr/list", s.guard(s.List))
	r.Register("pr/checkout", s.guard(s.Checkout))
	r.Register("pr/browse", s.guard(s.Browse))
}

// CreateResult for pr/create.
type CreateResult struct {
	Created     bool                      `json:"created"`
	PullRequest *ports.PullRequestSummary `json:"pull_request,omitempty"`
}

// Create opens a pull request for the current branch. A nil result from the
// forge means there was nothing to submit and no further action is taken.
func (s *PRService) Create(ctx context.Context, params json.RawMessage) (interface{}, *message.Error) {
	head, err := s.repo.CurrentBranch(ctx)
	if err != nil {
		s.reporter.Report(err)
		return nil, report.RPCError(err)
	}

	// Best effort title; the forge falls back to the branch name.
	title, _ := s.repo.HeadSubject(ctx)

	summary, err := s.forge.CreatePullRequest(ctx, head, s.baseBranch, title)
	if err != nil {
		s.reporter.Report(err)
		return nil, report.RPCError(err)
	}

	if summary == nil {
		return CreateResult{Created: false}, nil
	}

	hasOpen := true
	s.indicator.Update(ctx, &hasOpen)

	s.hub.Publish(events.NewPRCreatedEvent(summary.Number, summary.Title, summary.HeadRef, summary.HTMLURL))
	s.hub.Publish(events.NewNotificationEvent(events.LevelInfo,
		fmt.Sprintf("Pull request #%d created", summary.Number)))

	return CreateResult{Created: true, PullRequest: summary}, nil
}

// ListResult for pr/list.
type ListResult struct {
	PullRequests []ports.PullRequestSummary `json:"pull_requests"`
}

// List returns the open pull requests.
func (s *PRService) List(ctx context.Context, params json.RawMessage) (interface{}, *message.Error) {
	prs, err := s.forge.ListPullRequests(ctx)
	if err != nil {
		s.reporter.Report(err)
		return nil, report.RPCError(err)
	}

	return ListResult{PullRequests: prs}, nil
}

// pick lists the open pull requests and presents them for selection.
// An empty list and a cancelled selection are indistinguishable: both
// return a nil summary. A listing failure is reported.
func (s *PRService) pick(ctx context.Context, title string) (*ports.PullRequestSummary, *message.Error) {
	prs, err := s.forge.ListPullRequests(ctx)
	if err != nil {
		s.reporter.Report(err)
		return nil, report.RPCError(err)
	}

	items := make([]events.PickItem, 0, len(prs))
	for _, pr := range prs {
		items = append(items, events.PickItem{
			Label:       pr.Title,
			Description: fmt.Sprintf("#%d", pr.Number),
		})
	}

	idx, ok := s.picker.Pick(ctx, title, items)
	if !ok {
		return nil, nil
	}
	return &prs[idx], nil
}

// CheckoutResult for pr/checkout.
type CheckoutResult struct {
	CheckedOut bool   `json:"checked_out"`
	Number     int    `json:"number,omitempty"`
	Branch     string `json:"branch,omitempty"`
}

// Checkout lists the open pull requests, lets the user select one and checks
// out its head branch, then re-derives the indicator. A failure during the
// checkout step itself is returned to the caller without going through the
// reporter; only the listing stage reports.
func (s *PRService) Checkout(ctx context.Context, params json.RawMessage) (interface{}, *message.Error) {
	pr, rpcErr := s.pick(ctx, "Checkout pull request")
	if rpcErr != nil {
		return nil, rpcErr
	}
	if pr == nil {
		return CheckoutResult{CheckedOut: false}, nil
	}

	if err := s.repo.Checkout(ctx, pr.HeadRef); err != nil {
		return nil, report.RPCError(err)
	}

	s.indicator.Update(ctx, nil)

	s.hub.Publish(events.NewPRCheckedOutEvent(pr.Number, pr.HeadRef))

	return CheckoutResult{CheckedOut: true, Number: pr.Number, Branch: pr.HeadRef}, nil
}

// BrowseResult for pr/browse.
type BrowseResult struct {
	Opened  bool   `json:"opened"`
	Number  int    `json:"number,omitempty"`
	HTMLURL string `json:"html_url,omitempty"`
}

// Browse lists the open pull requests, lets the user select one and opens
// its web URL in the local browser.
func (s *PRService) Browse(ctx context.Context, params json.RawMessage) (interface{}, *message.Error) {
	pr, rpcErr := s.pick(ctx, "Open pull request")
	if rpcErr != nil {
		return nil, rpcErr
	}
	if pr == nil {
		return BrowseResult{Opened: false}, nil
	}

	if err := s.openURL(pr.HTMLURL); err != nil {
		s.reporter.Report(err)
		return nil, report.RPCError(err)
	}

	s.hub.Publish(events.NewPROpenedEvent(pr.Number, pr.HTMLURL))

	return BrowseResult{Opened: true, Number: pr.Number, HTMLURL: pr.HTMLURL}, nil
}
