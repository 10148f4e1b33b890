// Package clienterror holds the error taxonomy of the optimizer client and
// the messages shown to users for each kind.
package clienterror

import (
	"errors"
	"fmt"
)

// User-facing messages.
const (
	MsgNoSpending      = "Please enter at least one spending amount"
	MsgTransport       = "Failed to connect to server. Please try again."
	MsgServiceFallback = "An error occurred"
	MsgInFlight        = "A request is already in progress"
)

// ErrNoSpending is returned when no category holds a positive amount.
var ErrNoSpending = &ValidationError{Field: "spending", Reason: MsgNoSpending}

// ErrRequestInFlight is returned when a submission is attempted while another
// is still pending.
var ErrRequestInFlight = errors.New("optimize request already in flight")

// ValidationError is a local input problem caught before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// TransportError means the request could not be completed: DNS, refused
// connection, timeout, open circuit or an unreadable response all end here.
type TransportError struct {
	Endpoint string
	Cause    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ServiceError is a failure reported by the service itself (success=false).
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service reported failure (status %d): %s", e.StatusCode, e.UserMessage())
}

// UserMessage is the service message, or the generic fallback when it sent none.
func (e *ServiceError) UserMessage() string {
	if e.Message == "" {
		return MsgServiceFallback
	}
	return e.Message
}

// ProfileError is a spending profile that could not be decoded.
type ProfileError struct {
	Path string
	Err  error
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("invalid spending profile %s: %v", e.Path, e.Err)
}

func (e *ProfileError) Unwrap() error {
	return e.Err
}

// UserMessage maps any error to the text shown to a user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Reason
	}

	var profileErr *ProfileError
	if errors.As(err, &profileErr) {
		return profileErr.Error()
	}

	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.UserMessage()
	}

	if errors.Is(err, ErrRequestInFlight) {
		return MsgInFlight
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return MsgTransport
	}

	return MsgServiceFallback
}
