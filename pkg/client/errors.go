package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel failures surfaced by the client. Callers branch with errors.Is.
var (
	// ErrNetwork marks transport level failures where no HTTP response arrived.
	ErrNetwork = errors.New("network failure")
	// ErrUnauthorized marks an expired or missing session. Callers should tear
	// the session down rather than retry.
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden marks a role or ownership rule violation.
	ErrForbidden = errors.New("action not permitted")
	// ErrValidation marks input rejected before or by the server.
	ErrValidation = errors.New("invalid input")
	// ErrInvalidTransition marks a verification attempt on an activity that is
	// no longer pending. The first successful decision wins.
	ErrInvalidTransition = errors.New("activity already finalized")
	// ErrNotFound marks a stale activity id.
	ErrNotFound = errors.New("record not found")
)

// APIError carries the server supplied message alongside the sentinel it
// unwraps to, so callers can both branch on the class of failure and show
// the human readable text.
type APIError struct {
	Status  int
	Message string
	kind    error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("request failed with status %d", e.Status)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

func newAPIError(status int, message string) error {
	kind := classify(status)

	return &APIError{Status: status, Message: message, kind: kind}
}

func classify(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		return ErrValidation
	case http.StatusConflict:
		return ErrInvalidTransition
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrNetwork
	}
}
