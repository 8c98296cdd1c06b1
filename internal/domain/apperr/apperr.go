// Package apperr defines the application error taxonomy. Every failure path
// in the services produces one of these kinds so handlers can map it to a
// distinct HTTP status; nothing is reported as a generic catch-all.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindServerError Kind = iota
	KindUnauthenticated
	KindValidationFailed
	KindNotFound
	KindForbidden
	KindConflict
)

type Error struct {
	Kind   Kind
	Msg    string
	Fields map[string]string // populated for KindValidationFailed
	status int               // optional override of the kind's default
	err    error             // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Msg + ": " + e.err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.err }

// HTTPStatus maps the error to its response code.
func (e *Error) HTTPStatus() int {
	if e.status != 0 {
		return e.status
	}
	switch e.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindValidationFailed:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WithStatus overrides the default status for this error.
func (e *Error) WithStatus(code int) *Error {
	e.status = code
	return e
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Msg: msg}
}

// Validation reports every failing field in one error.
func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidationFailed, Msg: "validation failed", Fields: fields}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Msg: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Msg: msg}
}

// Internal wraps an unexpected storage or precondition failure.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindServerError, Msg: msg, err: err}
}

// From extracts an *Error, treating anything else as a server error.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("server error", err)
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
