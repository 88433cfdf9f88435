package handler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/prbridge/prbridge/internal/domain/events"
	"github.com/prbridge/prbridge/internal/domain/ports"
	"github.com/prbridge/prbridge/internal/rpc/message"
	"github.com/prbridge/prbridge/internal/session"
	"github.com/prbridge/prbridge/internal/testutil"
)

// connectedForge reports connected for any non-empty token.
type connectedForge struct {
	token string
}

func (f *connectedForge) Connect(token string) { f.token = token }
func (f *connectedForge) Connected() bool      { return f.token != "" }
func (f *connectedForge) CreatePullRequest(ctx context.Context, head, base, title string) (*ports.PullRequestSummary, error) {
	return nil, nil
}
func (f *connectedForge) ListPullRequests(ctx context.Context) ([]ports.PullRequestSummary, error) {
	return nil, nil
}

func readySessionContext(root string, token string) session.Context {
	sess := session.New()
	sess.Establish(&connectedForge{}, token)
	return session.Context{WorkspaceRoot: root, Session: sess}
}

func countingHandler(calls *int) HandlerFunc {
	return func(ctx context.Context, params json.RawMessage) (interface{}, *message.Error) {
		*calls++
		return map[string]string{"ok": "yes"}, nil
	}
}

func TestGuard_BlocksWhenDisconnected(t *testing.T) {
	hub := testutil.NewMockEventHub()
	sctx := readySessionContext("/tmp/project", "")

	calls := 0
	guarded := Guard(sctx, hub)(countingHandler(&calls))

	result, rpcErr := guarded(context.Background(), nil)

	if calls != 0 {
		t.Errorf("handler invoked %d times, want 0", calls)
	}
	if result != nil || rpcErr != nil {
		t.Errorf("guarded call = (%v, %v), want (nil, nil)", result, rpcErr)
	}
	testutil.RequireNotification(t, hub, events.LevelWarning, GuardWarning)
}

func TestGuard_BlocksWhenNoWorkspace(t *testing.T) {
	hub := testutil.NewMockEventHub()
	sctx := readySessionContext("", "ghp_token")

	calls := 0
	guarded := Guard(sctx, hub)(countingHandler(&calls))

	if _, rpcErr := guarded(context.Background(), nil); rpcErr != nil {
		t.Fatalf("unexpected error: %v", rpcErr)
	}

	if calls != 0 {
		t.Errorf("handler invoked %d times, want 0", calls)
	}
	testutil.RequireNotification(t, hub, events.LevelWarning, GuardWarning)
}

func TestGuard_OneWarningPerBlockedCall(t *testing.T) {
	hub := testutil.NewMockEventHub()
	sctx := readySessionContext("", "")

	calls := 0
	guarded := Guard(sctx, hub)(countingHandler(&calls))

	for i := 0; i < 3; i++ {
		_, _ = guarded(context.Background(), nil)
	}

	if calls != 0 {
		t.Errorf("handler invoked %d times, want 0", calls)
	}
	if got := len(hub.Notifications()); got != 3 {
		t.Errorf("notifications = %d, want 3 (one per blocked call)", got)
	}
}

func TestGuard_PassesThroughWhenReady(t *testing.T) {
	hub := testutil.NewMockEventHub()
	sctx := readySessionContext("/tmp/project", "ghp_token")

	calls := 0
	guarded := Guard(sctx, hub)(countingHandler(&calls))

	result, rpcErr := guarded(context.Background(), nil)

	if calls != 1 {
		t.Errorf("handler invoked %d times, want 1", calls)
	}
	if rpcErr != nil {
		t.Errorf("unexpected error: %v", rpcErr)
	}
	if result == nil {
		t.Error("expected handler result, got nil")
	}
	if got := len(hub.Notifications()); got != 0 {
		t.Errorf("notifications = %d, want 0", got)
	}
}

func TestGuard_ReflectsLaterSessionChanges(t *testing.T) {
	hub := testutil.NewMockEventHub()
	fakeForge := &connectedForge{}
	sess := session.New()
	sctx := session.Context{WorkspaceRoot: "/tmp/project", Session: sess}

	calls := 0
	guarded := Guard(sctx, hub)(countingHandler(&calls))

	_, _ = guarded(context.Background(), nil)
	if calls != 0 {
		t.Fatalf("handler invoked before token was set")
	}

	// The guard holds no state: connecting the shared session unblocks it.
	sess.Establish(fakeForge, "ghp_token")

	_, _ = guarded(context.Background(), nil)
	if calls != 1 {
		t.Errorf("handler invoked %d times after connect, want 1", calls)
	}
}
