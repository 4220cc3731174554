package domain

import (
	"errors"
	"fmt"
)

var (
	ErrBusy              = errors.New("another request is already in flight")
	ErrNoExtensionOffer  = errors.New("no extension offer is open")
	ErrRecordNotFound    = errors.New("session record not found")
	ErrSessionInProgress = errors.New("a session is already in progress")
	ErrSessionNotActive  = errors.New("session is not accepting turns")
)

// ValidationError is raised locally and never reaches the transport
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransportError wraps network and server failures of a remote call
type TransportError struct {
	Cause      error
	Op         string
	StatusCode int // Zero when the request never got a response
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failed with status %d: %v", e.Op, e.StatusCode, e.Cause)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether resubmitting the same request may succeed.
// 4xx responses mean the engine rejected the request itself.
func (e *TransportError) Retryable() bool {
	return e.StatusCode == 0 || e.StatusCode >= 500
}

// ProtocolError means the engine answered with a malformed response
type ProtocolError struct {
	Cause  error
	Op     string
	Reason string
}

func (e *ProtocolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s returned a malformed response: %s: %v", e.Op, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s returned a malformed response: %s", e.Op, e.Reason)
}

func (e *ProtocolError) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether err leaves the operation safe to retry with the same input
func IsRetryable(err error) bool {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Retryable()
	}
	var pe *ProtocolError
	return errors.As(err, &pe) || errors.Is(err, ErrBusy)
}
