package metaerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNameMismatch indicates a merge was attempted between records with different keys.
	ErrNameMismatch = errors.New("name mismatch")

	// ErrKindMismatch indicates documents of different kinds were combined.
	ErrKindMismatch = errors.New("kind mismatch")

	// ErrParse indicates a document could not be decoded.
	ErrParse = errors.New("parse error")

	// ErrValidation indicates a decoded entry is malformed.
	ErrValidation = errors.New("validation error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// NameMismatchError is returned when two records that do not share a merge key
// are merged. It always indicates the caller grouped records incorrectly.
type NameMismatchError struct {
	// Kind names the record type, e.g. "class" or "proxy"
	Kind string
	// Left is the key of the receiver
	Left string
	// Right is the key of the argument
	Right string
}

// Error returns a human-readable error message.
func (e *NameMismatchError) Error() string {
	kind := e.Kind
	if kind == "" {
		kind = "record"
	}
	return fmt.Sprintf("name mismatch: cannot merge %s named %q with %q", kind, e.Left, e.Right)
}

// Is reports whether target matches this error type.
func (e *NameMismatchError) Is(target error) bool {
	return target == ErrNameMismatch
}

// KindMismatchError is returned when documents of different kinds are joined or compared.
type KindMismatchError struct {
	// Expected is the kind of the first document
	Expected string
	// Actual is the kind of the offending document
	Actual string
	// Source identifies the offending document (file path or index)
	Source string
}

// Error returns a human-readable error message.
func (e *KindMismatchError) Error() string {
	msg := fmt.Sprintf("kind mismatch: expected %s document, got %s", e.Expected, e.Actual)
	if e.Source != "" {
		msg += " in " + e.Source
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *KindMismatchError) Is(target error) bool {
	return target == ErrKindMismatch
}

// ParseError represents a failure to decode a metadata document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Format is the detected source format ("json" or "yaml"), if known
	Format string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Format != "" {
		msg += " (" + e.Format + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ValidationError represents a decoded entry that violates the document shape,
// such as a class entry without a name.
type ValidationError struct {
	// Path locates the entry (e.g. "[3].methods[1]")
	Path string
	// Field is the offending field name
	Field string
	// Index is the position of the top-level entry (-1 if not applicable)
	Index int
	// Message describes the problem
	Message string
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Field != "" {
		msg += "." + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
