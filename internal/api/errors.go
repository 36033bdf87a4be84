package api

import (
	"fmt"
	"strings"

	"invdesk/internal/validation"
)

// AuthError means the session has no usable token: either none was set
// or the backend rejected it. Not retryable without re-authentication.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return "authentication required: " + e.Message }

// NetworkError means the request never produced a response. Transient;
// the caller keeps its state and may retry.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError carries a non-2xx backend response. The message is shown
// to the user verbatim.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string { return e.Message }

// ValidationError carries backend-side field validation failures
// (HTTP 400/422 with an errors payload).
type ValidationError struct {
	Errors []validation.ValidationError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}
