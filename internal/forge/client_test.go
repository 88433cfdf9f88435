package forge

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestClient_ConnectedStates(t *testing.T) {
	c := New("octo", "project", "", zerolog.Nop())

	if c.Connected() {
		t.Error("new client should not be connected")
	}

	c.Connect("")
	if c.Connected() {
		t.Error("an empty token must leave the client disconnected")
	}

	c.Connect("ghp_token")
	if !c.Connected() {
		t.Error("client should be connected after a non-empty token")
	}

	// Reconnecting with an empty token disconnects again.
	c.Connect("")
	if c.Connected() {
		t.Error("client should be disconnected after clearing the token")
	}
}

func TestClient_OwnerRepo(t *testing.T) {
	c := New("octo", "project", "", zerolog.Nop())

	owner, repo := c.OwnerRepo()
	if owner != "octo" || repo != "project" {
		t.Errorf("OwnerRepo() = %s/%s, want octo/project", owner, repo)
	}
}

func TestClient_CreatePullRequest_NothingToSubmit(t *testing.T) {
	c := New("octo", "project", "", zerolog.Nop())
	c.Connect("ghp_token")

	tests := []struct {
		name string
		head string
		base string
	}{
		{"empty head", "", "main"},
		{"head equals base", "main", "main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := c.CreatePullRequest(context.Background(), tt.head, tt.base, "title")
			if err != nil {
				t.Fatalf("CreatePullRequest() error = %v", err)
			}
			if summary != nil {
				t.Errorf("summary = %+v, want nil", summary)
			}
		})
	}
}

func TestClient_InvalidEnterpriseURL(t *testing.T) {
	c := New("octo", "project", "://not-a-url", zerolog.Nop())

	// Must not panic; the client falls back to github.com.
	c.Connect("ghp_token")
	if !c.Connected() {
		t.Error("client should still connect with the fallback URL")
	}
}
