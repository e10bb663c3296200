package backend

import (
	"errors"
	"fmt"
)

// Sentinel error kinds returned by Client.
var (
	ErrUnavailable      = errors.New("backend unavailable")
	ErrUnexpectedStatus = errors.New("backend unexpected status")
	ErrDecode           = errors.New("backend response decode failed")
)

// StatusError reports a non-2xx backend response.
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend: GET %s responded with status: %d", e.Path, e.StatusCode)
}

// Unwrap lets errors.Is match ErrUnexpectedStatus.
func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }
