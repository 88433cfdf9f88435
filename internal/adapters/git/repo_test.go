package git

import (
	"context"
	"testing"
)

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
		wantOK    bool
	}{
		{"https", "https://github.com/octo/project.git", "octo", "project", true},
		{"https without suffix", "https://github.com/octo/project", "octo", "project", true},
		{"ssh", "git@github.com:octo/project.git", "octo", "project", true},
		{"ssh without suffix", "git@github.com:octo/project", "octo", "project", true},
		{"enterprise https", "https://github.example.com/team/tool.git", "team", "tool", true},
		{"nested path keeps first two segments", "https://github.com/octo/project/extra", "octo", "project", true},
		{"trailing slash", "https://github.com/octo/project/", "octo", "project", true},
		{"no path", "https://github.com", "", "", false},
		{"missing repo", "https://github.com/octo", "", "", false},
		{"local path", "/srv/git/project.git", "", "", false},
		{"empty", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, ok := ParseRemoteURL(tt.url)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("ParseRemoteURL(%q) = %s/%s, want %s/%s", tt.url, owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}

func TestNewRepo_NotARepo(t *testing.T) {
	r := NewRepo(t.TempDir(), "git")

	if r.IsGitRepo() {
		t.Error("IsGitRepo() = true for an empty directory")
	}
	if r.Root() != "" {
		t.Errorf("Root() = %q, want empty", r.Root())
	}

	// Operations fail fast without invoking git.
	if _, err := r.CurrentBranch(context.Background()); err == nil {
		t.Error("CurrentBranch() should fail outside a repository")
	}
}
