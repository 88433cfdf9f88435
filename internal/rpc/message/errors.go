package message

import "encoding/json"

// Standard JSON-RPC 2.0 error codes.
const (
	// ParseError indicates invalid JSON was received.
	ParseError = -32700

	// InvalidRequest indicates the JSON is not a valid Request object.
	InvalidRequest = -32600

	// MethodNotFound indicates the method does not exist.
	MethodNotFound = -32601

	// InvalidParams indicates invalid method parameters.
	InvalidParams = -32602

	// InternalError indicates an internal JSON-RPC error.
	InternalError = -32603

	// ServerError codes are reserved for implementation-defined server-errors.
	// Range: -32000 to -32099
)

// prbridge-specific error codes (-32001 to -32050).
const (
	// Session errors
	NotConnected = -32001
	NoWorkspace  = -32002

	// Forge errors
	ForgeRejected    = -32010
	ForgeUnreachable = -32011

	// Git errors
	NotAGitRepo        = -32020
	GitOperationFailed = -32021

	// Picker errors
	PickNotFound = -32030
)

// Error represents a JSON-RPC 2.0 error.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// NewError creates a new JSON-RPC error.
func NewError(code int, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// NewErrorWithData creates a new JSON-RPC error with additional data.
func NewErrorWithData(code int, message string, data interface{}) *Error {
	err := &Error{
		Code:    code,
		Message: message,
	}

	if data != nil {
		if d, e := json.Marshal(data); e == nil {
			err.Data = d
		}
	}

	return err
}

// Standard error constructors.

// ErrParseError creates a parse error.
func ErrParseError(message string) *Error {
	if message == "" {
		message = "Parse error"
	}
	return NewError(ParseError, message)
}

// ErrInvalidRequest creates an invalid request error.
func ErrInvalidRequest(message string) *Error {
	if message == "" {
		message = "Invalid Request"
	}
	return NewError(InvalidRequest, message)
}

// ErrMethodNotFound creates a method not found error.
func ErrMethodNotFound(method string) *Error {
	return NewError(MethodNotFound, "Method not found: "+method)
}

// ErrInvalidParams creates an invalid params error.
func ErrInvalidParams(message string) *Error {
	if message == "" {
		message = "Invalid params"
	}
	return NewError(InvalidParams, message)
}

// ErrInternalError creates an internal error.
func ErrInternalError(message string) *Error {
	if message == "" {
		message = "Internal error"
	}
	return NewError(InternalError, message)
}

// prbridge-specific error constructors.

// ErrNotConnected creates a not connected error.
func ErrNotConnected() *Error {
	return NewError(NotConnected, "Not connected: configure a token first")
}

// ErrNoWorkspace creates a no workspace error.
func ErrNoWorkspace() *Error {
	return NewError(NoWorkspace, "No workspace open")
}

// ErrForgeRejected creates an error for a request the hosting service
// rejected. The raw response payload travels in the error data.
func ErrForgeRejected(statusCode int, msg string, payload json.RawMessage) *Error {
	return &Error{
		Code:    ForgeRejected,
		Message: msg,
		Data:    payload,
	}
}

// ErrForgeUnreachable creates an error for a transport-level failure.
func ErrForgeUnreachable(msg string) *Error {
	return NewError(ForgeUnreachable, msg)
}

// ErrNotAGitRepo creates a not a git repository error.
func ErrNotAGitRepo() *Error {
	return NewError(NotAGitRepo, "Not a git repository")
}

// ErrGitOperationFailed creates a git operation failed error.
func ErrGitOperationFailed(operation, msg string) *Error {
	return NewErrorWithData(GitOperationFailed, "Git operation failed: "+msg, map[string]string{
		"operation": operation,
	})
}

// ErrPickNotFound creates an unknown pick request error.
func ErrPickNotFound(requestID string) *Error {
	return NewErrorWithData(PickNotFound, "Pick request not found", map[string]string{
		"request_id": requestID,
	})
}

// ErrorCodeName returns a human-readable name for an error code.
func ErrorCodeName(code int) string {
	switch code {
	case ParseError:
		return "ParseError"
	case InvalidRequest:
		return "InvalidRequest"
	case MethodNotFound:
		return "MethodNotFound"
	case InvalidParams:
		return "InvalidParams"
	case InternalError:
		return "InternalError"
	case NotConnected:
		return "NotConnected"
	case NoWorkspace:
		return "NoWorkspace"
	case ForgeRejected:
		return "ForgeRejected"
	case ForgeUnreachable:
		return "ForgeUnreachable"
	case NotAGitRepo:
		return "NotAGitRepo"
	case GitOperationFailed:
		return "GitOperationFailed"
	case PickNotFound:
		return "PickNotFound"
	default:
		return "Unknown"
	}
}
