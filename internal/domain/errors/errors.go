// Package errors provides the typed failures of a compliance run.
// All error types support unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrNoInput is returned when a merge is requested without documents
var ErrNoInput = stdErrors.New("no SBOM documents supplied")

// ErrUnsigned marks a SignatureError raised because an input has no detached signature
var ErrUnsigned = stdErrors.New("input is not signed")

// InputError reports an SBOM document that could not be used.
// Index is the position of the document in the input list, or -1 when the
// failure is not tied to a single document.
type InputError struct {
	Err   error
	Path  string
	Field string
	Index int
}

func (e *InputError) Error() string {
	loc := ""
	switch {
	case e.Index >= 0 && e.Path != "":
		loc = fmt.Sprintf(" #%d (%s)", e.Index, e.Path)
	case e.Index >= 0:
		loc = fmt.Sprintf(" #%d", e.Index)
	case e.Path != "":
		loc = fmt.Sprintf(" (%s)", e.Path)
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid SBOM document%s: field %s: %v", loc, e.Field, e.Err)
	}
	return fmt.Sprintf("invalid SBOM document%s: %v", loc, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// NewInputError builds an InputError for the document at index
func NewInputError(index int, path string, err error) *InputError {
	return &InputError{Index: index, Path: path, Err: err}
}

// ConfigError reports a licensing policy that is missing required fields
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid licensing configuration: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid licensing configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// SignatureError reports a detached signature that failed verification
type SignatureError struct {
	Err  error
	Path string
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("signature verification failed for %s: %v", e.Path, e.Err)
}

func (e *SignatureError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err wraps an InputError
func IsInputError(err error) bool {
	var target *InputError
	return stdErrors.As(err, &target)
}

// IsConfigError reports whether err wraps a ConfigError
func IsConfigError(err error) bool {
	var target *ConfigError
	return stdErrors.As(err, &target)
}

// IsSignatureError reports whether err wraps a SignatureError
func IsSignatureError(err error) bool {
	var target *SignatureError
	return stdErrors.As(err, &target)
}
