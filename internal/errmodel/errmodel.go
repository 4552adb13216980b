// Package errmodel defines the coded error type shared by the store and
// the reconciliation engine.
//
// Four kinds cover every failure the system can surface:
//
//   - validation: bad input shape before any I/O (malformed URL, empty title)
//   - parse: a blob or response body violated the serialization format
//   - fetch: network/transport failure, including non-2xx HTTP status
//   - persistence: local blob storage read/write failure
//
// Validation, parse, and fetch errors abort an operation before any
// mutation. Persistence errors are logged where they occur and never fail
// the running session.
package errmodel

import (
	"errors"
	"fmt"
)

// Kind categorizes an Error.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindParse       Kind = "parse"
	KindFetch       Kind = "fetch"
	KindPersistence Kind = "persistence"
)

// Error is a categorized error with an optional underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a validation error. The format string is applied to
// args as in fmt.Sprintf.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Parse creates a parse error wrapping cause.
func Parse(message string, cause error) *Error {
	return &Error{Kind: KindParse, Message: message, Err: cause}
}

// Fetch creates a fetch error wrapping cause.
func Fetch(message string, cause error) *Error {
	return &Error{Kind: KindFetch, Message: message, Err: cause}
}

// Persistence creates a persistence error wrapping cause.
func Persistence(message string, cause error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Err: cause}
}

// Is reports whether err is (or wraps) an Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return Is(err, KindValidation) }

// IsParse reports whether err is a parse error.
func IsParse(err error) bool { return Is(err, KindParse) }

// IsFetch reports whether err is a fetch error.
func IsFetch(err error) bool { return Is(err, KindFetch) }

// IsPersistence reports whether err is a persistence error.
func IsPersistence(err error) bool { return Is(err, KindPersistence) }
