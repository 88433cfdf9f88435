package ports

import "context"

// Repo defines the contract for the local git working copy.
type Repo interface {
	// IsGitRepo checks if the configured path is a git repository.
	IsGitRepo() bool

	// Root returns the root path of the repository.
	Root() string

	// Name returns the repository name.
	Name() string

	// CurrentBranch returns the currently checked out branch.
	CurrentBranch(ctx context.Context) (string, error)

	// HeadSubject returns the subject line of the latest commit.
	HeadSubject(ctx context.Context) (string, error)

	// OriginOwnerRepo parses owner and repo name from the origin remote.
	OriginOwnerRepo(ctx context.Context) (owner, repo string, err error)

	// Checkout fetches and checks out the given branch ref.
	Checkout(ctx context.Context, ref string) error
}
