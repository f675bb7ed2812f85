// Package apperrors defines the error taxonomy shared by the services and
// the HTTP boundary.
//
// Services return errors built with NotFound, Invalid, PermissionDenied or
// Internal; the server maps them to status codes with HTTPStatus. Wrapped
// causes stay reachable through errors.Is/As.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for boundary mapping.
type Kind int

const (
	// KindInternal is an unexpected failure (storage errors and the like).
	// Surfaced as 500 and safe to retry.
	KindInternal Kind = iota
	// KindInvalid is malformed or missing caller input.
	KindInvalid
	// KindNotFound is a referenced entity that does not exist.
	KindNotFound
	// KindPermission is an actor attempting an operation they do not own.
	KindPermission
)

// Error carries a kind and a human-readable message.
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

func (e *Error) Unwrap() error {
	return e.Err
}

// Invalid builds a KindInvalid error.
func Invalid(format string, args ...any) error {
	return &Error{Kind: KindInvalid, Msg: fmt.Sprintf(format, args...)}
}

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// PermissionDenied builds a KindPermission error.
func PermissionDenied(format string, args ...any) error {
	return &Error{Kind: KindPermission, Msg: fmt.Sprintf(format, args...)}
}

// Internal wraps err as a KindInternal error.
func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf extracts the kind from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the caller-safe message for err. Internal errors get a
// generic message so storage details never leak to clients.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal {
		return e.Msg
	}
	return "internal error"
}

// HTTPStatus maps err's kind to an HTTP status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalid:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPermission:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
