// Package apperr defines the application error taxonomy.
//
// Every failure a service returns is an *Error carrying a Kind (the
// classification) and a human-readable message. Controllers translate the
// Kind into an HTTP status; nothing else in the stack inspects messages.
//
//	if err := svc.Delete(ctx, id); err != nil {
//	    c.Error(apperr.Status(err), err.Error())
//	}
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind string

const (
	KindValidation   Kind = "validation"    // bad or missing input fields
	KindNotFound     Kind = "not_found"     // referenced row does not exist
	KindConflict     Kind = "conflict"      // insufficient stock, duplicates, policy violations
	KindUnauthorized Kind = "unauthorized"  // bad credential or token
	KindForbidden    Kind = "forbidden"     // insufficient role
	KindInternal     Kind = "internal"      // everything else
)

// Error is the typed outcome returned by services.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string // field → message, set for validation errors
	Err     error             // wrapped cause, may be nil
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// New creates an error with the given kind and formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error from a field → message map.
func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

// Conflict creates a conflict error.
func Conflict(format string, args ...any) *Error {
	return New(KindConflict, format, args...)
}

// Unauthorized creates an authentication error.
func Unauthorized(format string, args ...any) *Error {
	return New(KindUnauthorized, format, args...)
}

// Internal wraps an unexpected low-level error.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: err}
}

// KindOf returns the Kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// FieldsOf returns the field errors attached to err, or nil.
func FieldsOf(err error) map[string]string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Fields
	}
	return nil
}

// Status maps an error to the HTTP status a controller should return.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
