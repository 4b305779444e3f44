package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoActiveOrder    = errors.New("no active order")
	ErrOrderMismatch    = errors.New("order id does not match the pending order")
	ErrAcceptInFlight   = errors.New("an accept request is already in flight")
	ErrPermissionDenied = errors.New("location permission denied")
)

// RequestError is a failed backend call surfaced with the server-provided
// message. The REST adapter produces these for every expected failure path
// so callers can branch without unwrapping transport details.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed (%d): %s", e.StatusCode, e.Message)
}

// UserMessage extracts a message suitable for a user-facing alert, falling
// back to a generic one for transport-level failures.
func UserMessage(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return "Something went wrong. Please try again."
}
