package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a client sentinel error.
type Error string

const (
	ErrNoConnection = Error("no connection to the coffeelab API")
	ErrBadResponse  = Error("malformed API response")
	ErrNotFound     = Error("resource not found")
	ErrInvalidInput = Error("invalid input")
)

func (e Error) Error() string {
	return string(e)
}

// APIError reports a failed API call, either a non-2xx status or a
// response flagged with success false.
type APIError struct {
	Status   int
	Endpoint string
	Message  string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("%s: %s (HTTP %d)", e.Endpoint, e.Message, e.Status)
}

// Is maps well-known statuses to sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrInvalidInput:
		return e.Status == http.StatusBadRequest
	}
	return false
}

// WrapError annotates err with the operation that produced it.
func WrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	switch {
	case errors.Is(err, ErrNoConnection):
		return fmt.Errorf("%s: %w", operation, err)
	case errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound:
		return fmt.Errorf("%s: %w", operation, err)
	case errors.As(err, &apiErr) && apiErr.Status >= http.StatusInternalServerError:
		return fmt.Errorf("server error during %s: %w", operation, err)
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}
