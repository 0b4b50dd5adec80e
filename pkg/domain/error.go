package domain

import (
	"errors"
	"fmt"
)

// Error wraps an underlying error with a caller-facing message and one of the
// sentinel codes below. Callers branch on Code, users see Error().
type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

func (e *Error) Code() error {
	return e.code
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

var (
	// ErrInternalServerError marks failures inside the engine or its stores
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound marks lookups whose subject does not exist
	ErrNotFound = errors.New("your requested item is not found")
	// ErrBadParamInput marks queries rejected before any search runs
	ErrBadParamInput = errors.New("given param is not valid")
)
