package api

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
)

// StatusError is returned for non-2xx responses that do not map to one of
// the sentinel errors above.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error: status %d", e.Code)
	}
	return fmt.Sprintf("server error: status %d: %s", e.Code, e.Message)
}

// RejectedError is returned when the backend answers 2xx but reports
// success:false, carrying the application-level message.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "request rejected"
	}
	return "request rejected: " + e.Message
}
