// Package forge implements the GitHub client used by the command handlers.
package forge

import (
	"context"
	"sync"

	"github.com/google/go-github/v57/github"
	"github.com/prbridge/prbridge/internal/domain/ports"
	"github.com/rs/zerolog"
)

// Client talks to the GitHub REST API for one owner/repo pair.
// It implements the ports.Forge interface.
type Client struct {
	owner   string
	repo    string
	baseURL string
	logger  zerolog.Logger

	mu    sync.RWMutex
	gh    *github.Client
	token string
}

// New creates a client for the given repository. baseURL is empty for
// github.com, or the API root of a GitHub Enterprise instance.
func New(owner, repo, baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		owner:   owner,
		repo:    repo,
		baseURL: baseURL,
		logger:  logger.With().Str("component", "forge").Logger(),
	}
}

// OwnerRepo returns the owner and repository this client is bound to.
func (c *Client) OwnerRepo() (string, string) {
	return c.owner, c.repo
}

// Connect initializes the underlying GitHub client with the token.
// The token is not validated here and an empty token is accepted; a bad
// token surfaces when a later call fails.
func (c *Client) Connect(token string) {
	gh := github.NewClient(nil)
	if token != "" {
		gh = gh.WithAuthToken(token)
	}

	if c.baseURL != "" {
		enterprise, err := gh.WithEnterpriseURLs(c.baseURL, c.baseURL)
		if err != nil {
			c.logger.Warn().Str("base_url", c.baseURL).Err(err).
				Msg("invalid enterprise URL, falling back to github.com")
		} else {
			gh = enterprise
		}
	}

	c.mu.Lock()
	c.gh = gh
	c.token = token
	c.mu.Unlock()

	c.logger.Debug().
		Str("owner", c.owner).
		Str("repo", c.repo).
		Bool("has_token", token != "").
		Msg("forge client initialized")
}

// Connected reports whether a non-empty token has been used to initialize
// the client.
func (c *Client) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gh != nil && c.token != ""
}

func (c *Client) client() *github.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gh
}

// CreatePullRequest opens a pull request from head into base. When head and
// base are the same branch there is nothing to submit and (nil, nil) is
// returned.
func (c *Client) CreatePullRequest(ctx context.Context, head, base, title string) (*ports.PullRequestSummary, error) {
	if head == "" || head == base {
		c.logger.Debug().Str("head", head).Str("base", base).Msg("nothing to submit")
		return nil, nil
	}

	if title == "" {
		title = head
	}

	pr, _, err := c.client().PullRequests.Create(ctx, c.owner, c.repo, &github.NewPullRequest{
		Title: github.String(title),
		Head:  github.String(head),
		Base:  github.String(base),
	})
	if err != nil {
		return nil, classify("create pull request", err)
	}

	summary := summarize(pr)
	c.logger.Info().Int("number", summary.Number).Str("head", head).Msg("pull request created")
	return &summary, nil
}

// ListPullRequests returns the open pull requests, freshly fetched on every
// call.
func (c *Client) ListPullRequests(ctx context.Context) ([]ports.PullRequestSummary, error) {
	prs, _, err := c.client().PullRequests.List(ctx, c.owner, c.repo, &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	})
	if err != nil {
		return nil, classify("list pull requests", err)
	}

	// Empty slice (not nil) so JSON marshals to [] not null
	summaries := make([]ports.PullRequestSummary, 0, len(prs))
	for _, pr := range prs {
		summaries = append(summaries, summarize(pr))
	}
	return summaries, nil
}

func summarize(pr *github.PullRequest) ports.PullRequestSummary {
	return ports.PullRequestSummary{
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		HeadRef: pr.Head.GetRef(),
		HTMLURL: pr.GetHTMLURL(),
	}
}
