package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"invdesk/internal/models"
	"invdesk/internal/validation"
)

// envelope is the single response schema the backend speaks. Everything
// crossing the network boundary is normalized here; no other code
// branches on response shape.
type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta *models.Meta    `json:"meta,omitempty"`
}

// failure is the error payload on non-2xx responses. Older endpoints use
// the "error" key, newer ones "message"; both are accepted here only.
type failure struct {
	Message string                       `json:"message"`
	Error   string                       `json:"error"`
	Errors  []validation.ValidationError `json:"errors,omitempty"`
}

// decodeEnvelope unwraps {data, meta} into out. A nil out discards the
// body (mutations whose response the caller does not need).
func decodeEnvelope(body []byte, out interface{}) (*models.Meta, error) {
	// 204-style success: no body to unwrap.
	if len(body) == 0 {
		if out == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("empty response body")
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("malformed response envelope: %w", err)
	}
	if out == nil || len(env.Data) == 0 {
		return env.Meta, nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return nil, fmt.Errorf("malformed response data: %w", err)
	}
	return env.Meta, nil
}

// errorFromResponse maps a non-2xx response onto the client error
// taxonomy, passing the backend message through verbatim.
func errorFromResponse(status int, body []byte) error {
	var f failure
	_ = json.Unmarshal(body, &f)
	msg := f.Message
	if msg == "" {
		msg = f.Error
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AuthError{Message: msg}
	case (status == http.StatusBadRequest || status == http.StatusUnprocessableEntity) && len(f.Errors) > 0:
		return &ValidationError{Errors: f.Errors}
	default:
		return &ServerError{Status: status, Message: msg}
	}
}
