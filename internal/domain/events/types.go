// Package events defines all event types prbridge sends to editor clients.
package events

import (
	"encoding/json"
	"time"
)

// EventType represents the type of event.
type EventType string

const (
	// Notification events (user-facing messages)
	EventTypeNotification EventType = "notification"

	// Diagnostic events
	EventTypeRemoteError EventType = "remote_error"

	// Pull request events
	EventTypePRIndicator  EventType = "pr_indicator"
	EventTypePRCreated    EventType = "pr_created"
	EventTypePRCheckedOut EventType = "pr_checked_out"
	EventTypePROpened     EventType = "pr_opened"

	// Picker events (server asks a client to choose)
	EventTypePickRequest EventType = "pick_request"

	// Connection events
	EventTypeSessionChanged EventType = "session_changed"
	EventTypeHeartbeat      EventType = "heartbeat"
)

// Event is the base interface for all events.
type Event interface {
	// Type returns the event type.
	Type() EventType

	// Timestamp returns when the event occurred.
	Timestamp() time.Time

	// ToJSON serializes the event to JSON.
	ToJSON() ([]byte, error)
}

// BaseEvent contains common fields for all events.
type BaseEvent struct {
	EventType EventType   `json:"event"`
	EventTime time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
	RequestID string      `json:"request_id,omitempty"`
}

// Type returns the event type.
func (e *BaseEvent) Type() EventType {
	return e.EventType
}

// Timestamp returns when the event occurred.
func (e *BaseEvent) Timestamp() time.Time {
	return e.EventTime
}

// ToJSON serializes the event to JSON.
func (e *BaseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// NewEvent creates a new base event with the given type and payload.
func NewEvent(eventType EventType, payload interface{}) *BaseEvent {
	return &BaseEvent{
		EventType: eventType,
		EventTime: time.Now().UTC(),
		Payload:   payload,
	}
}

// NewEventWithRequestID creates a new event with a request ID for correlation.
func NewEventWithRequestID(eventType EventType, payload interface{}, requestID string) *BaseEvent {
	return &BaseEvent{
		EventType: eventType,
		EventTime: time.Now().UTC(),
		Payload:   payload,
		RequestID: requestID,
	}
}

// NotificationLevel is the severity of a user-facing notification.
type NotificationLevel string

const (
	LevelInfo    NotificationLevel = "info"
	LevelWarning NotificationLevel = "warning"
	LevelError   NotificationLevel = "error"
)

// NotificationPayload is the payload for notification events.
type NotificationPayload struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
}

// NewNotificationEvent creates a new notification event.
func NewNotificationEvent(level NotificationLevel, message string) *BaseEvent {
	return NewEvent(EventTypeNotification, NotificationPayload{
		Level:   level,
		Message: message,
	})
}

// RemoteErrorPayload carries the raw response detail of a remote rejection.
type RemoteErrorPayload struct {
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Detail     json.RawMessage `json:"detail,omitempty"`
}

// NewRemoteErrorEvent creates a new remote_error diagnostic event.
func NewRemoteErrorEvent(statusCode int, message string, detail json.RawMessage) *BaseEvent {
	return NewEvent(EventTypeRemoteError, RemoteErrorPayload{
		StatusCode: statusCode,
		Message:    message,
		Detail:     detail,
	})
}

// NewHeartbeatEvent creates a new heartbeat event.
func NewHeartbeatEvent() *BaseEvent {
	return NewEvent(EventTypeHeartbeat, nil)
}

// SessionChangedPayload is the payload for session_changed events.
type SessionChangedPayload struct {
	Connected bool `json:"connected"`
}

// NewSessionChangedEvent creates a new session_changed event.
func NewSessionChangedEvent(connected bool) *BaseEvent {
	return NewEvent(EventTypeSessionChanged, SessionChangedPayload{Connected: connected})
}
