package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors shared across layers. The upstream client classifies
// backend responses into these; the HTTP error handler maps them back to
// user-visible behaviour.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrUpstream     = errors.New("upstream error")
)

// APIError is the backend's error envelope, annotated with the HTTP status
// it arrived with.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// Unwrap ties an APIError to the sentinel for its status so callers can
// branch with errors.Is without inspecting codes.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return ErrForbidden
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status >= http.StatusInternalServerError:
		return ErrUpstream
	}
	return nil
}
