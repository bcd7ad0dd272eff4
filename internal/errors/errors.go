// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. Use cases return these errors and handlers map
// them to HTTP status codes by kind only.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error kinds shared by every domain module.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates the request lacks valid authentication credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated account doesn't have permission.
	ErrForbidden = errors.New("forbidden")

	// ErrTooManyRequests indicates the caller exceeded a rate limit.
	ErrTooManyRequests = errors.New("too many requests")
)

// PublicError carries a message that is safe to return to API clients.
// It matches its kind through errors.Is, so the transport layer never needs
// to know the concrete type to pick a status code.
type PublicError struct {
	Kind    error
	Message string
	// Fields holds per-field validation messages, keyed by JSON field name.
	Fields map[string]string
}

// Error implements the error interface.
func (e *PublicError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %s", e.Message, e.Kind)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s (%s): %s", e.Message, strings.Join(parts, "; "), e.Kind)
}

// Unwrap exposes the kind to errors.Is.
func (e *PublicError) Unwrap() error {
	return e.Kind
}

// Public creates an error of the given kind with a client-safe message.
func Public(kind error, message string) error {
	return &PublicError{Kind: kind, Message: message}
}

// Invalid creates an ErrInvalidInput error listing every offending field.
func Invalid(message string, fields map[string]string) error {
	return &PublicError{Kind: ErrInvalidInput, Message: message, Fields: fields}
}

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
