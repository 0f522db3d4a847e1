package netprobe

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by a HardwareLookup when the address has no
// resolvable hardware address.
var ErrNotFound = errors.New("hardware address not found")

// ErrorType represents the category of a probe failure
type ErrorType int

const (
	// ErrTypeInvalidAddress indicates the target is not an IPv4 dotted quad
	ErrTypeInvalidAddress ErrorType = iota
	// ErrTypeExec indicates the ping binary could not be run
	ErrTypeExec
	// ErrTypeLookup indicates the hardware address lookup failed unexpectedly
	ErrTypeLookup
	// ErrTypeCanceled indicates the run was cancelled while probing
	ErrTypeCanceled
	// ErrTypePanic indicates a probe collaborator panicked
	ErrTypePanic
	// ErrTypeUnknown indicates an unexpected error
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeInvalidAddress:
		return "Invalid Address"
	case ErrTypeExec:
		return "Ping Error"
	case ErrTypeLookup:
		return "Lookup Error"
	case ErrTypeCanceled:
		return "Cancelled"
	case ErrTypePanic:
		return "Probe Panic"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ProbeError describes why probing a single candidate failed.
type ProbeError struct {
	Type    ErrorType // Category of error
	Address string    // Candidate address
	Message string    // Human-readable error message
	Err     error     // Underlying error (if any)
}

// Error implements the error interface
func (e *ProbeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s %s (caused by: %v)", e.Type, e.Message, e.Address, e.Err)
	}
	return fmt.Sprintf("%s: %s %s", e.Type, e.Message, e.Address)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ProbeError) Unwrap() error {
	return e.Err
}

// NewProbeError creates a ProbeError. Context errors are always classified
// as ErrTypeCanceled regardless of t.
func NewProbeError(t ErrorType, address, message string, err error) *ProbeError {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		t = ErrTypeCanceled
	}
	return &ProbeError{
		Type:    t,
		Address: address,
		Message: message,
		Err:     err,
	}
}

// IsCanceled checks if err is a probe error caused by cancellation
func IsCanceled(err error) bool {
	var probeErr *ProbeError
	if errors.As(err, &probeErr) {
		return probeErr.Type == ErrTypeCanceled
	}
	return false
}

// IsInvalidAddress checks if err is a probe error for a malformed target
func IsInvalidAddress(err error) bool {
	var probeErr *ProbeError
	if errors.As(err, &probeErr) {
		return probeErr.Type == ErrTypeInvalidAddress
	}
	return false
}
