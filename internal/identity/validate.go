package identity

import (
	"errors"
	"fmt"
	"net/netip"
	"strconv"
	"strings"
	"unicode/utf8"
)

// SerialLength is the length of a robot serial number.
const SerialLength = 8

// Field names a piece of the robot's identity.
type Field string

const (
	FieldAddress Field = "address"
	FieldSerial  Field = "serial"
)

// ValidationError reports a malformed user-supplied value.
type ValidationError struct {
	Field  Field
	Value  string
	Reason string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// IsValidationError checks if err is a ValidationError
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// ValidateAddress checks that s is an IPv4 address in dotted-quad form.
// Octets with leading zeros are rejected.
func ValidateAddress(s string) error {
	invalid := func(reason string, args ...any) error {
		return &ValidationError{Field: FieldAddress, Value: s, Reason: fmt.Sprintf(reason, args...)}
	}

	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return invalid("expected 4 dot-separated numbers, got %d", len(parts))
	}

	for _, part := range parts {
		if part == "" || strings.TrimLeft(part, "0123456789") != "" {
			return invalid("%q is not a number", part)
		}
		n, err := strconv.Atoi(part)
		if err != nil || n > 255 {
			return invalid("%s is out of range 0-255", part)
		}
	}

	if addr, err := netip.ParseAddr(s); err != nil || !addr.Is4() {
		return invalid("leading zeros are not allowed")
	}

	return nil
}

// ValidateSerial checks that s is exactly SerialLength characters.
func ValidateSerial(s string) error {
	if n := utf8.RuneCountInString(s); n != SerialLength {
		return &ValidationError{
			Field:  FieldSerial,
			Value:  s,
			Reason: fmt.Sprintf("must be exactly %d characters, got %d", SerialLength, n),
		}
	}
	return nil
}
