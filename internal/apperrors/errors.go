// Package apperrors holds the error taxonomy shared by services and handlers
// and the translation of storage errors into it.
package apperrors

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// Kind classifies an error for the client
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindConflict
	KindUnsupportedMedia
)

// Error is a classified error. Message is safe to show to clients; Err is
// the underlying cause and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(msg string) *Error       { return &Error{Kind: KindValidation, Message: msg} }
func Auth(msg string) *Error             { return &Error{Kind: KindAuth, Message: msg} }
func Forbidden(msg string) *Error        { return &Error{Kind: KindForbidden, Message: msg} }
func NotFound(msg string) *Error         { return &Error{Kind: KindNotFound, Message: msg} }
func Conflict(msg string) *Error         { return &Error{Kind: KindConflict, Message: msg} }
func UnsupportedMedia(msg string) *Error { return &Error{Kind: KindUnsupportedMedia, Message: msg} }

// Internal wraps an unexpected failure behind a generic message
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// KindOf returns the Kind of err, KindInternal for unclassified errors
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusCode maps err to the HTTP status returned to clients
func StatusCode(err error) int {
	switch KindOf(err) {
	case KindValidation, KindUnsupportedMedia:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-visible message for err
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "Internal server error"
}

// FromDB translates a storage error. Missing records become NotFound with
// notFoundMsg, unique violations become Conflict with conflictMsg, anything
// else is Internal. A nil err stays nil.
func FromDB(err error, notFoundMsg, conflictMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Kind: KindNotFound, Message: notFoundMsg, Err: err}
	case IsDuplicateKey(err):
		return &Error{Kind: KindConflict, Message: conflictMsg, Err: err}
	default:
		return Internal(err)
	}
}

// IsDuplicateKey reports whether err is a unique constraint violation. gorm
// translates most drivers to ErrDuplicatedKey; the string checks cover
// dialects opened without TranslateError.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
