package header

import (
	"errors"
	"fmt"
)

// ErrInvalidHeader is matched by errors.Is for every error that means a
// control line is present but cannot be used: the wrong prefix or a value
// that does not parse. Missing fields are reported separately with a
// MissingFieldError.
var ErrInvalidHeader = errors.New("yenc: invalid control line")

// BadPrefixError is returned when a line handed to a parser does not start
// with the prefix of the requested kind.
type BadPrefixError struct {
	Kind Kind   // the kind of line that was expected
	Line string // the offending line, trimmed
}

// Error returns the error message.
func (err *BadPrefixError) Error() string {
	return fmt.Sprintf("yenc: %s line must start with %q: %q", err.Kind, err.Kind.Prefix(), err.Line)
}

// Is matches ErrInvalidHeader.
func (err *BadPrefixError) Is(target error) bool {
	return target == ErrInvalidHeader
}

// MissingFieldError is returned when a control line lacks a required key.
type MissingFieldError struct {
	Kind  Kind   // which control line
	Field string // the key that is missing
}

// Error returns the error message.
func (err *MissingFieldError) Error() string {
	return fmt.Sprintf("yenc: %s line is missing required field %q", err.Kind, err.Field)
}

// InvalidFieldError is returned when a known key carries a value that cannot
// be parsed or is out of range.
type InvalidFieldError struct {
	Kind  Kind
	Field string
	Value string
	Err   error
}

// Error returns the error message.
func (err *InvalidFieldError) Error() string {
	return fmt.Sprintf("yenc: %s line has invalid %s=%q: %v", err.Kind, err.Field, err.Value, err.Err)
}

// Unwrap returns the parse failure.
func (err *InvalidFieldError) Unwrap() error {
	return err.Err
}

// Is matches ErrInvalidHeader.
func (err *InvalidFieldError) Is(target error) bool {
	return target == ErrInvalidHeader
}
