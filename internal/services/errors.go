package services

import "errors"

// ErrorKind classifies service failures for the transport layer.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindUnauthorized
	// KindForbidden is acting on someone else's tweet or comment. Clients
	// expect it as 401, not 403.
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is a failure the caller caused. Anything else returned by a service is
// an unexpected store or host error.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// KindOf returns the kind of a service error, or 0 for unexpected errors.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}
