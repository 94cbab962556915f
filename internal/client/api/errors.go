package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the request never produced a response
	// (connection refused, timeout, DNS failure).
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the server rejected the bearer credential.
	// Callers decide how to react (clear the session, re-prompt for login);
	// the adapter itself never touches session state.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is a structured rejection: the request reached the backend and was
// refused with a user-displayable message. StatusCode is zero when the
// rejection came inside a 200 response envelope (success=false).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("server rejected request (%d): %s", e.StatusCode, e.Message)
	}
	return e.Message
}
