package handler

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/prbridge/prbridge/internal/rpc/message"
)

// --- Dispatcher Tests ---

func TestNewDispatcher(t *testing.T) {
	registry := NewRegistry()
	dispatcher := NewDispatcher(registry)

	if dispatcher == nil {
		t.Fatal("NewDispatcher returned nil")
	}
	if dispatcher.Registry() != registry {
		t.Error("Registry() should return the same registry")
	}
}

func TestDispatcher_Dispatch_ValidRequest(t *testing.T) {
	registry := NewRegistry()
	registry.Register("test/echo", func(ctx context.Context, params json.RawMessage) (interface{}, *message.Error) {
		return map[string]string{"echo": string(params)}, nil
	})

	dispatcher := NewDispatcher(registry)

	req, _ := message.NewRequest(message.StringID("1"), "test/echo", map[string]string{"msg": "hello"})
	resp := dispatcher.Dispatch(context.Background(), req)

	if resp == nil {
		t.Fatal("expected response, got nil")
	}
	if resp.IsError() {
		t.Errorf("expected success, got error: %v", resp.Error)
	}
	if resp.ID.String() != "1" {
		t.Errorf("ID = %s, want '1'", resp.ID.String())
	}
}

func TestDispatcher_Dispatch_MethodNotFound(t *testing.T) {
	registry := NewRegistry()
	dispatcher := NewDispatcher(registry)

	req, _ := message.NewRequest(message.StringID("1"), "nonexistent/method", nil)
	resp := dispatcher.Dispatch(context.Background(), req)

	if resp == nil {
		t.Fatal("expected response, got nil")
	}
	if !resp.IsError() {
		t.Error("expected error response")
	}
	if resp.Error.Code != message.MethodNotFound {
		t.Errorf("Error.Code = %d, want %d", resp.Error.Code, message.MethodNotFound)
	}
}

func TestDispatcher_Dispatch_Notification(t *testing.T) {
	called := false
	registry := NewRegistry()
	registry.Register("event/notify", func(ctx context.Context, params json.RawMessage) (interface{}, *message.Error) {
		called = true
		return nil, nil
	})

	dispatcher := NewDispatcher(registry)

	// Notification has nil ID
	req, _ := message.NewRequest(nil, "event/notify", map[string]string{"event": "test"})
	resp := dispatcher.Dispatch(context.Background(), req)

	if resp != nil {
		t.Error("notifications should not return response")
	}
	if !called {
		t.Error("notification handler should be called")
	}
}

func TestDispatcher_Dispatch_HandlerError(t *testing.T) {
	registry := NewRegistry()
	registry.Register("test/fail", func(ctx context.Context, params json.RawMessage) (interface{}, *message.Error) {
		return nil, message.ErrInvalidParams("bad params")
	})

	dispatcher := NewDispatcher(registry)

	req, _ := message.NewRequest(message.NumberID(7), "test/fail", nil)
	resp := dispatcher.Dispatch(context.Background(), req)

	if resp == nil {
		t.Fatal("expected response, got nil")
	}
	if !resp.IsError() {
		t.Fatal("expected error response")
	}
	if resp.Error.Code != message.InvalidParams {
		t.Errorf("Error.Code = %d, want %d", resp.Error.Code, message.InvalidParams)
	}
}

func TestDispatcher_DispatchBytes_ParseError(t *testing.T) {
	dispatcher := NewDispatcher(NewRegistry())

	out, err := dispatcher.DispatchBytes(context.Background(), []byte("{not json"))
	if err != nil {
		t.Fatalf("DispatchBytes() error = %v", err)
	}

	resp, err := message.ParseResponse(out)
	if err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !resp.IsError() || resp.Error.Code != message.ParseError {
		t.Errorf("expected parse error response, got %+v", resp)
	}
}

func TestDispatcher_HandleMessage_Batch(t *testing.T) {
	registry := NewRegistry()
	registry.Register("test/echo", func(ctx context.Context, params json.RawMessage) (interface{}, *message.Error) {
		return "ok", nil
	})

	dispatcher := NewDispatcher(registry)

	batch := `[
		{"jsonrpc":"2.0","id":1,"method":"test/echo"},
		{"jsonrpc":"2.0","id":2,"method":"test/echo"}
	]`

	out, err := dispatcher.HandleMessage(context.Background(), []byte(batch))
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}

	var responses []message.Response
	if err := json.Unmarshal(out, &responses); err != nil {
		t.Fatalf("failed to unmarshal batch response: %v", err)
	}
	if len(responses) != 2 {
		t.Errorf("batch responses = %d, want 2", len(responses))
	}
}

func TestDispatcher_HandleMessage_EmptyBatch(t *testing.T) {
	dispatcher := NewDispatcher(NewRegistry())

	out, err := dispatcher.HandleMessage(context.Background(), []byte("[]"))
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}

	resp, err := message.ParseResponse(out)
	if err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !resp.IsError() || resp.Error.Code != message.InvalidRequest {
		t.Errorf("expected invalid request response, got %+v", resp)
	}
}

// --- Registry Tests ---

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry()

	registry.Register("a/b", func(ctx context.Context, params json.RawMessage) (interface{}, *message.Error) {
		return nil, nil
	})

	if !registry.Has("a/b") {
		t.Error("Has(a/b) = false, want true")
	}
	if registry.Get("a/b") == nil {
		t.Error("Get(a/b) returned nil")
	}
	if registry.Get("missing") != nil {
		t.Error("Get(missing) should return nil")
	}
}

func TestRegistry_MiddlewareOrder(t *testing.T) {
	registry := NewRegistry()

	var order []string
	mw := func(name string) MiddlewareFunc {
		return func(next HandlerFunc) HandlerFunc {
			return func(ctx context.Context, params json.RawMessage) (interface{}, *message.Error) {
				order = append(order, name)
				return next(ctx, params)
			}
		}
	}

	registry.Register("test/mw", func(ctx context.Context, params json.RawMessage) (interface{}, *message.Error) {
		order = append(order, "handler")
		return nil, nil
	})
	registry.Use(mw("first"))
	registry.Use(mw("second"))

	_, _ = registry.Get("test/mw")(context.Background(), nil)

	want := []string{"first", "second", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestRegistry_Unregister(t *testing.T) {
	registry := NewRegistry()
	registry.Register("a/b", func(ctx context.Context, params json.RawMessage) (interface{}, *message.Error) {
		return nil, nil
	})

	registry.Unregister("a/b")

	if registry.Has("a/b") {
		t.Error("method should be unregistered")
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	registry := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			registry.Register("test/method", func(ctx context.Context, params json.RawMessage) (interface{}, *message.Error) {
				return n, nil
			})
		}(i)
		go func() {
			defer wg.Done()
			_ = registry.Get("test/method")
		}()
	}

	wg.Wait()
}
