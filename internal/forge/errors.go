package forge

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/go-github/v57/github"
)

// RemoteError is a request the hosting service itself rejected. It carries
// the structured response detail so callers can surface it verbatim.
// Anything else (network error, parse error) stays a plain wrapped error.
type RemoteError struct {
	StatusCode int
	Message    string
	Payload    json.RawMessage
	err        error
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RemoteError) Unwrap() error {
	return e.err
}

// remoteDetail is the shape of the payload preserved from the service response.
type remoteDetail struct {
	Message          string         `json:"message"`
	Status           int            `json:"status"`
	Errors           []github.Error `json:"errors,omitempty"`
	DocumentationURL string         `json:"documentation_url,omitempty"`
}

// classify converts a go-github error into a RemoteError when the service
// rejected the request, and wraps it with the operation name otherwise.
func classify(op string, err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		status := 0
		if ghErr.Response != nil {
			status = ghErr.Response.StatusCode
		}

		detail := remoteDetail{
			Message:          ghErr.Message,
			Status:           status,
			Errors:           ghErr.Errors,
			DocumentationURL: ghErr.DocumentationURL,
		}
		payload, _ := json.Marshal(detail)

		return &RemoteError{
			StatusCode: status,
			Message:    ghErr.Message,
			Payload:    payload,
			err:        err,
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
