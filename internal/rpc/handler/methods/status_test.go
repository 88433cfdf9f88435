package methods

import (
	"context"
	"testing"

	"github.com/prbridge/prbridge/internal/session"
)

type fixedIndicator struct {
	value bool
}

func (i *fixedIndicator) HasOpenPR() bool { return i.value }

func TestStatusService_Get(t *testing.T) {
	forge := &connectableForge{}
	sess := session.New()
	sess.Establish(forge, "ghp_token")
	sctx := session.Context{WorkspaceRoot: "/tmp/project", Session: sess}

	svc := NewStatusService("1.2.0", sctx, "project", &fixedIndicator{value: true})

	result, rpcErr := svc.Get(context.Background(), nil)
	if rpcErr != nil {
		t.Fatalf("Get() error = %v", rpcErr)
	}

	status := result.(StatusResult)
	if status.Version != "1.2.0" {
		t.Errorf("Version = %q", status.Version)
	}
	if !status.Connected {
		t.Error("Connected = false, want true")
	}
	if status.WorkspaceRoot != "/tmp/project" {
		t.Errorf("WorkspaceRoot = %q", status.WorkspaceRoot)
	}
	if status.RepoName != "project" {
		t.Errorf("RepoName = %q", status.RepoName)
	}
	if !status.HasOpenPR {
		t.Error("HasOpenPR = false, want true")
	}
}

func TestStatusService_Get_Disconnected(t *testing.T) {
	sctx := session.Context{WorkspaceRoot: "", Session: session.New()}
	svc := NewStatusService("dev", sctx, "", &fixedIndicator{})

	result, rpcErr := svc.Get(context.Background(), nil)
	if rpcErr != nil {
		t.Fatalf("Get() error = %v", rpcErr)
	}

	status := result.(StatusResult)
	if status.Connected {
		t.Error("Connected = true, want false")
	}
	if status.HasOpenPR {
		t.Error("HasOpenPR = true, want false")
	}
}
