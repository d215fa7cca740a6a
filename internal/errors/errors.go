// Package errors provides a structured error type hierarchy for the loopr CLI.
//
// This package defines base error types for common error conditions, wrapped
// error types that add contextual information, and helper functions for error
// wrapping and type checking.
//
// # Error Types
//
// Base errors (sentinel errors):
//   - ErrInvalidArgument - a call-site contract was violated
//   - ErrNotFound - resource not found
//   - ErrAlreadyExists - duplicate resource
//   - ErrIO - file I/O error
//
// Wrapped error types (add context):
//   - ProjectError{Path, Err} - project configuration errors
//   - SubmissionError{Op, Err, Sample} - submission errors
//
// # Usage
//
//	// Use sentinel errors directly
//	return errors.ErrNotFound
//
//	// Wrap with context using Wrap
//	return errors.Wrap(err, "readSampleTable")
//
//	// Use structured error types
//	return &errors.ProjectError{Path: cfgPath, Err: errors.ErrNotFound}
//
//	// Check error types
//	if errors.IsInvalidArgument(err) {
//	    // handle contract violation
//	}
package errors

import (
	"errors"
	"fmt"
)

// Base error types (sentinel errors).
var (
	// ErrInvalidArgument indicates a call-site contract was violated.
	// It signals programmer error, not transient failure, and is never
	// worth retrying.
	ErrInvalidArgument = baseError("invalid argument")

	// ErrNotFound indicates a resource was not found.
	ErrNotFound = baseError("not found")

	// ErrAlreadyExists indicates a duplicate resource.
	ErrAlreadyExists = baseError("already exists")

	// ErrIO indicates a file I/O error.
	ErrIO = baseError("I/O error")
)

// baseError is a string that implements error.
type baseError string

func (e baseError) Error() string { return string(e) }

// ProjectError represents an error related to project configuration.
type ProjectError struct {
	// Path is the project configuration file path (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *ProjectError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("project %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("project: %s", e.Err)
}

func (e *ProjectError) Unwrap() error { return e.Err }

// SubmissionError represents an error that occurred while submitting a
// pipeline command for a sample.
type SubmissionError struct {
	// Op is the operation being performed (e.g., "render", "write", "exec").
	Op string
	// Err is the underlying error.
	Err error
	// Sample is the sample name (optional).
	Sample string
}

func (e *SubmissionError) Error() string {
	if e.Sample != "" {
		return fmt.Sprintf("submission %s %q: %s", e.Op, e.Sample, e.Err)
	}
	return fmt.Sprintf("submission %s: %s", e.Op, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// Wrap adds context to an error by wrapping it with an operation name.
// The returned error implements Unwrap() allowing errors.Is and errors.As
// to work with the wrapped error.
func Wrap(err error, op string) error {
	return &wrappedError{op: op, err: err}
}

// wrappedError is an error with an operation context.
type wrappedError struct {
	op  string
	err error
}

func (e *wrappedError) Error() string { return fmt.Sprintf("%s: %s", e.op, e.err) }
func (e *wrappedError) Unwrap() error { return e.err }

// IsInvalidArgument reports whether err is or wraps ErrInvalidArgument.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists reports whether err is or wraps ErrAlreadyExists.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsIO reports whether err is or wraps ErrIO.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// AsProjectError reports whether err can be typed as a *ProjectError.
func AsProjectError(err error) (*ProjectError, bool) {
	var pe *ProjectError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// AsSubmissionError reports whether err can be typed as a *SubmissionError.
func AsSubmissionError(err error) (*SubmissionError, bool) {
	var se *SubmissionError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
