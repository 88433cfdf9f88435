package ports

import "context"

// PullRequestSummary is the read-only projection of a remote pull request.
type PullRequestSummary struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	HeadRef string `json:"head_ref"`
	HTMLURL string `json:"html_url"`
}

// Forge defines the contract for the remote hosting service.
type Forge interface {
	// Connect initializes the client with a token. The token is not
	// validated here; a bad token surfaces when a later call fails.
	Connect(token string)

	// Connected reports whether a non-empty token has been used to
	// initialize the client.
	Connected() bool

	// CreatePullRequest opens a pull request for the given head branch.
	// Returns nil (and no error) when there is nothing to submit.
	CreatePullRequest(ctx context.Context, head, base, title string) (*PullRequestSummary, error)

	// ListPullRequests returns the open pull requests, freshly fetched.
	ListPullRequests(ctx context.Context) ([]PullRequestSummary, error)
}
