// Package apperr defines the error taxonomy shared by all request handlers.
// Internal steps return *Error values; the HTTP boundary maps the kind to a
// status code and serializes only the public message, so wrapped causes stay
// in server-side logs.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP mapping.
type Kind int

const (
	// KindUpstream covers data-store or object-store failures. It is also
	// the default for unclassified errors.
	KindUpstream Kind = iota
	// KindUnauthenticated means no or invalid credential.
	KindUnauthenticated
	// KindForbidden means authenticated but not entitled. Used for both
	// "not found" and "not yours" on enumeration-sensitive lookups.
	KindForbidden
	// KindNotFound is used only where enumeration is not a concern.
	KindNotFound
	// KindInvalidState flags a data-integrity violation or malformed input.
	KindInvalidState
)

// Error carries a public message and an internal cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error without a cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap creates an Error with a cause kept for logs only.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Unauthenticated returns a 401-class error.
func Unauthenticated(msg string) *Error { return New(KindUnauthenticated, msg) }

// Forbidden returns a 403-class error.
func Forbidden(msg string) *Error { return New(KindForbidden, msg) }

// NotFound returns a 404-class error.
func NotFound(msg string) *Error { return New(KindNotFound, msg) }

// InvalidState returns a 400-class error.
func InvalidState(msg string) *Error { return New(KindInvalidState, msg) }

// Upstream wraps a failed upstream call as a 500-class error.
func Upstream(msg string, err error) *Error { return Wrap(KindUpstream, msg, err) }

// KindOf extracts the kind from an error chain, defaulting to KindUpstream.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUpstream
}

// PublicMessage returns the message safe to serialize to clients.
func PublicMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Msg
	}
	return "internal server error"
}

// HTTPStatus maps an error to its response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidState:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
