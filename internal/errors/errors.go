// Package errors provides error types with actionable suggestions for the
// fightsongs dashboard. Domain errors (missing data, insufficient selections,
// stale group references) are recoverable by construction: they describe a
// state to render, never a reason to end the session.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common sentinel errors for use with errors.Is().
var (
	// ErrDataUnavailable indicates the source CSV is missing, empty or unusable.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrInsufficientSelection indicates too few dimensions for a view.
	ErrInsufficientSelection = errors.New("insufficient selection")
	// ErrUnknownGroup indicates a selection references a group that no longer exists.
	ErrUnknownGroup = errors.New("unknown group reference")
	// ErrConfig indicates a configuration error.
	ErrConfig = errors.New("configuration error")
	// ErrInvalidParameter indicates a malformed request or flag value.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrNotFound indicates a resource was not found.
	ErrNotFound = errors.New("not found")
)

// DashboardError is the base error type for fightsongs errors.
// It wraps an underlying error and provides additional context.
type DashboardError struct {
	// Kind is the category of error (e.g., ErrDataUnavailable, ErrConfig).
	Kind error
	// Message is the human-readable error message.
	Message string
	// Suggestion provides actionable advice for resolving the error.
	Suggestion string
	// Cause is the underlying error that caused this error.
	Cause error
	// Details provides additional context (e.g., file path, selection size).
	Details map[string]string
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *DashboardError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Kind
}

// Is reports whether the error's kind matches the target.
func (e *DashboardError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

// Format returns a formatted error message with details and suggestion.
func (e *DashboardError) Format() string {
	var sb strings.Builder

	sb.WriteString("Error: ")
	sb.WriteString(e.Error())
	sb.WriteString("\n")

	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString("\nDetails:\n")
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, e.Details[k]))
		}
	}

	if e.Suggestion != "" {
		sb.WriteString("\nSuggestion: ")
		sb.WriteString(e.Suggestion)
		sb.WriteString("\n")
	}

	return sb.String()
}

// WithDetails adds details to the error.
func (e *DashboardError) WithDetails(key, value string) *DashboardError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying cause of the error.
func (e *DashboardError) WithCause(cause error) *DashboardError {
	e.Cause = cause
	return e
}

// New creates a new DashboardError with the given kind and message.
func New(kind error, message string) *DashboardError {
	return &DashboardError{
		Kind:    kind,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(err error, kind error, message string) *DashboardError {
	return &DashboardError{
		Kind:    kind,
		Message: message,
		Cause:   err,
	}
}

// WithSuggestion creates a new error with a suggestion.
func WithSuggestion(kind error, message, suggestion string) *DashboardError {
	return &DashboardError{
		Kind:       kind,
		Message:    message,
		Suggestion: suggestion,
	}
}

// As is a convenience wrapper around errors.As for *DashboardError.
func As(err error) (*DashboardError, bool) {
	var de *DashboardError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
