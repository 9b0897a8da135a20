// Package errs defines the sentinel errors shared by every package of the module.
//
// Callers classify failures with errors.Is; the concrete error returned by an
// operation usually wraps one of these sentinels with additional detail.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTypeConversion is returned when a value cannot be converted to the requested kind.
	ErrInvalidTypeConversion = errors.New("invalid type conversion")
	// ErrValueNotFound is returned when a lookup by name finds nothing.
	ErrValueNotFound = errors.New("value not found")
	// ErrSerialization is returned when a value or container cannot be encoded.
	ErrSerialization = errors.New("serialization error")
	// ErrDeserialization is returned when encoded input cannot be decoded.
	ErrDeserialization = errors.New("deserialization error")
	// ErrInvalidDataFormat is returned when input is structurally malformed.
	ErrInvalidDataFormat = errors.New("invalid data format")
	// ErrCapacityExceeded is returned when a container is already at its value ceiling.
	ErrCapacityExceeded = errors.New("container capacity exceeded")
	// ErrUnknownType is returned for a type tag or type name outside the sixteen kinds.
	ErrUnknownType = errors.New("unknown value type")
	// ErrTruncated is returned when binary input ends before a declared length.
	ErrTruncated = errors.New("truncated input")
	// ErrChecksumMismatch is returned when a binary envelope fails checksum verification.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrUnsupportedFormat is returned when a conversion is requested for an unknown format.
	ErrUnsupportedFormat = errors.New("unsupported serialization format")
	// ErrOutOfRange is returned when a numeric argument does not fit the target kind.
	ErrOutOfRange = errors.New("value out of range")
	// ErrThreadSafety is reserved for lock failures. The current container never returns it.
	ErrThreadSafety = errors.New("thread safety error")
)

// ConversionError describes a failed conversion between two kinds.
//
// errors.Is(err, ErrInvalidTypeConversion) reports true for any ConversionError.
// Err, when set, carries the underlying cause such as ErrOutOfRange.
type ConversionError struct {
	From string
	To   string
	Err  error
}

// NewConversionError creates a ConversionError without a cause.
func NewConversionError(from, to string) *ConversionError {
	return &ConversionError{From: from, To: to}
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: cannot convert %s to %s: %s", ErrInvalidTypeConversion, e.From, e.To, e.Err)
	}

	return fmt.Sprintf("%s: cannot convert %s to %s", ErrInvalidTypeConversion, e.From, e.To)
}

// Is makes every ConversionError match ErrInvalidTypeConversion.
func (e *ConversionError) Is(target error) bool {
	return target == ErrInvalidTypeConversion
}

// Unwrap returns the underlying cause, if any.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// OutOfRange builds a ConversionError for a number n that does not fit kind to.
// The result matches both ErrInvalidTypeConversion and ErrOutOfRange.
func OutOfRange(from, to string, n any) error {
	return &ConversionError{From: from, To: to, Err: fmt.Errorf("%w: %v", ErrOutOfRange, n)}
}

// CapacityExceeded builds the error returned when adding to a full container.
// The result matches both ErrCapacityExceeded and ErrInvalidDataFormat.
func CapacityExceeded(limit int) error {
	return fmt.Errorf("%w: %w: maximum %d values", ErrInvalidDataFormat, ErrCapacityExceeded, limit)
}

// UnknownType builds the error for an unrecognised type tag or name.
// The result matches both ErrUnknownType and ErrInvalidDataFormat.
func UnknownType(what any) error {
	return fmt.Errorf("%w: %w: %v", ErrInvalidDataFormat, ErrUnknownType, what)
}

// NotFound builds the error for a missing value name.
func NotFound(name string) error {
	return fmt.Errorf("%w: %q", ErrValueNotFound, name)
}
