package netprobe

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestProbeError_Error(t *testing.T) {
	err := NewProbeError(ErrTypeExec, "192.168.1.37", "failed to run ping for", errors.New("exec: not found"))
	want := "Ping Error: failed to run ping for 192.168.1.37 (caused by: exec: not found)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := NewProbeError(ErrTypeInvalidAddress, "x", "not an IPv4 address", nil)
	if got := plain.Error(); got != "Invalid Address: not an IPv4 address x" {
		t.Errorf("Error() = %q", got)
	}
}

func TestNewProbeError_ContextIsCanceled(t *testing.T) {
	err := NewProbeError(ErrTypeExec, "192.168.1.37", "ping interrupted", context.Canceled)
	if err.Type != ErrTypeCanceled {
		t.Errorf("Type = %v, want %v", err.Type, ErrTypeCanceled)
	}

	wrapped := fmt.Errorf("probe: %w", err)
	if !IsCanceled(wrapped) {
		t.Error("IsCanceled() = false for wrapped cancel")
	}
	if !errors.Is(wrapped, context.Canceled) {
		t.Error("errors.Is(context.Canceled) = false")
	}
}

func TestErrorType_String(t *testing.T) {
	if got := ErrorType(99).String(); got != "ErrorType(99)" {
		t.Errorf("String() = %q", got)
	}
	if got := ErrTypeLookup.String(); got != "Lookup Error" {
		t.Errorf("String() = %q", got)
	}
}
