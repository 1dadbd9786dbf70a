// Package errors provides standardized error types and helpers for the SwordFlex codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrInvalidReference indicates a scripture reference matched no accepted grammar
	ErrInvalidReference = errors.New("invalid reference")
	// ErrNoDataFound indicates a passage fetch produced zero verses
	ErrNoDataFound = errors.New("no data found")
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrBackendUnavailable indicates the text or lexicon source could not serve a request
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
)

// ReferenceError represents a scripture reference that matched no accepted grammar.
type ReferenceError struct {
	Input string // The reference string as given
	Hint  string // Usage hint shown to the caller
}

func (e *ReferenceError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("invalid reference %q: %s", e.Input, e.Hint)
	}
	return fmt.Sprintf("invalid reference %q", e.Input)
}

func (e *ReferenceError) Unwrap() error {
	return ErrInvalidReference
}

// BackendError represents a failure of the text or lexicon source for one request.
type BackendError struct {
	Operation string // Operation being performed (e.g., "fetch verse", "lexicon lookup")
	Ref       string // Verse reference or lexicon key involved
	Err       error  // Underlying error, if any
}

func (e *BackendError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("backend error during %s for %s: %v", e.Operation, e.Ref, e.Err)
	}
	return fmt.Sprintf("backend error during %s: %v", e.Operation, e.Err)
}

func (e *BackendError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrBackendUnavailable
}

// NoDataError represents a passage fetch that produced zero verses.
type NoDataError struct {
	Ref string // The requested passage reference
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data found for %s", e.Ref)
}

func (e *NoDataError) Unwrap() error {
	return ErrNoDataFound
}

// DocumentBuildError represents a failure while constructing or writing
// an interchange document. The partially built document is discarded.
type DocumentBuildError struct {
	Stage   string // Stage that failed (e.g., "serialize", "write")
	Path    string // Destination path, if applicable
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *DocumentBuildError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("document build failed during %s at %s: %s", e.Stage, e.Path, e.Message)
	}
	return fmt.Sprintf("document build failed during %s: %s", e.Stage, e.Message)
}

func (e *DocumentBuildError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing or deserialization error
type ParseError struct {
	Format  string // Format being parsed (e.g., "JSON", "XML", "conf")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// Is reports whether any error in err's chain matches target.
// Re-exported so callers don't need to import both this package and stdlib errors.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}
