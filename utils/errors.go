package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures returned across repository and service boundaries.
type ErrorKind string

const (
	KindUnauthenticated  ErrorKind = "UNAUTHENTICATED"
	KindNotFound         ErrorKind = "NOT_FOUND"
	KindPermissionDenied ErrorKind = "PERMISSION_DENIED"
	KindInvalidArgument  ErrorKind = "INVALID_ARGUMENT"
	KindConflict         ErrorKind = "CONFLICT"
	KindUnknown          ErrorKind = "UNKNOWN"
)

// AppError is a tagged failure. Message is what a user sees; Err is the underlying cause.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any *AppError of the same kind, so errors.Is(err, ErrNotFound) works.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrUnauthenticated  = &AppError{Kind: KindUnauthenticated}
	ErrNotFound         = &AppError{Kind: KindNotFound}
	ErrPermissionDenied = &AppError{Kind: KindPermissionDenied}
	ErrInvalidArgument  = &AppError{Kind: KindInvalidArgument}
	ErrConflict         = &AppError{Kind: KindConflict}
)

func newError(kind ErrorKind, format string, args ...any) error {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Unauthenticated(format string, args ...any) error {
	return newError(KindUnauthenticated, format, args...)
}

func NotFound(format string, args ...any) error {
	return newError(KindNotFound, format, args...)
}

func PermissionDenied(format string, args ...any) error {
	return newError(KindPermissionDenied, format, args...)
}

func InvalidArgument(format string, args ...any) error {
	return newError(KindInvalidArgument, format, args...)
}

func Conflict(format string, args ...any) error {
	return newError(KindConflict, format, args...)
}

// Wrap tags err as Unknown with the given context message. An error that already
// carries a kind is returned unchanged.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	return &AppError{Kind: KindUnknown, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, Unknown for untagged errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// HTTPStatus maps an error kind to the response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidArgument:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
