// Package testutil provides shared test doubles for prbridge tests.
package testutil

import (
	"sync"
	"testing"

	"github.com/prbridge/prbridge/internal/domain/events"
	"github.com/prbridge/prbridge/internal/domain/ports"
)

// MockSubscriber implements ports.Subscriber and records every event it
// receives.
type MockSubscriber struct {
	id      string
	mu      sync.Mutex
	events  []events.Event
	closed  bool
	sendErr error
	done    chan struct{}
}

// NewMockSubscriber creates a new mock subscriber.
func NewMockSubscriber(id string) *MockSubscriber {
	return &MockSubscriber{
		id:   id,
		done: make(chan struct{}),
	}
}

// ID returns the subscriber ID.
func (m *MockSubscriber) ID() string {
	return m.id
}

// Send records the event and returns any configured error.
func (m *MockSubscriber) Send(e events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.events = append(m.events, e)
	return nil
}

// Close marks the subscriber as closed.
func (m *MockSubscriber) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

// Done returns a channel that's closed when the subscriber is done.
func (m *MockSubscriber) Done() <-chan struct{} {
	return m.done
}

// Events returns all received events.
func (m *MockSubscriber) Events() []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]events.Event, len(m.events))
	copy(result, m.events)
	return result
}

// EventCount returns the number of received events.
func (m *MockSubscriber) EventCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

// IsClosed returns whether the subscriber was closed.
func (m *MockSubscriber) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// SetSendError configures an error to return on Send.
func (m *MockSubscriber) SetSendError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendErr = err
}

var _ ports.Subscriber = (*MockSubscriber)(nil)

// MockEventHub implements ports.EventHub and records every published event
// synchronously, so tests can assert on notifications and other surfaces
// without running the real hub loop.
type MockEventHub struct {
	mu          sync.Mutex
	events      []events.Event
	subscribers []ports.Subscriber
	started     bool
	stopped     bool
}

// NewMockEventHub creates a new mock event hub.
func NewMockEventHub() *MockEventHub {
	return &MockEventHub{}
}

// Start marks the hub as started.
func (m *MockEventHub) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
	return nil
}

// Stop marks the hub as stopped.
func (m *MockEventHub) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	return nil
}

// Publish records the event.
func (m *MockEventHub) Publish(e events.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
}

// Subscribe records the subscriber.
func (m *MockEventHub) Subscribe(sub ports.Subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, sub)
}

// Unsubscribe removes a subscriber by ID.
func (m *MockEventHub) Unsubscribe(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, sub := range m.subscribers {
		if sub.ID() == id {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			return
		}
	}
}

// SubscriberCount returns the number of subscribers.
func (m *MockEventHub) SubscriberCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subscribers)
}

// PublishedEvents returns all published events.
func (m *MockEventHub) PublishedEvents() []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]events.Event, len(m.events))
	copy(result, m.events)
	return result
}

// EventsOfType returns the published events with the given type, in order.
func (m *MockEventHub) EventsOfType(t events.EventType) []events.Event {
	var result []events.Event
	for _, e := range m.PublishedEvents() {
		if e.Type() == t {
			result = append(result, e)
		}
	}
	return result
}

// Notifications returns the payloads of all published notification events.
func (m *MockEventHub) Notifications() []events.NotificationPayload {
	var result []events.NotificationPayload
	for _, e := range m.EventsOfType(events.EventTypeNotification) {
		if base, ok := e.(*events.BaseEvent); ok {
			if p, ok := base.Payload.(events.NotificationPayload); ok {
				result = append(result, p)
			}
		}
	}
	return result
}

var _ ports.EventHub = (*MockEventHub)(nil)

// RequireNotification asserts that exactly one notification with the given
// level and message was published.
func RequireNotification(t *testing.T, hub *MockEventHub, level events.NotificationLevel, message string) {
	t.Helper()

	notes := hub.Notifications()
	if len(notes) != 1 {
		t.Fatalf("expected 1 notification, got %d: %v", len(notes), notes)
	}
	if notes[0].Level != level {
		t.Errorf("notification level = %s, want %s", notes[0].Level, level)
	}
	if notes[0].Message != message {
		t.Errorf("notification message = %q, want %q", notes[0].Message, message)
	}
}
