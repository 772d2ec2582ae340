// Package apperr provides formatted application errors that stay comparable
// with errors.Is after formatting or wrapping
package apperr

import (
	"errors"
	"fmt"
)

// Error is a user-facing error. Message may contain fmt verbs that are filled
// in with Fmt.
type Error struct {
	base    *Error
	Err     error
	Message string
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

// Is reports whether target is e or the error e was derived from.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return e == t || e.root() == t.root()
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}

// Fmt returns a copy of e with the message verbs replaced by args.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		base:    e.root(),
		Err:     e.Err,
		Message: fmt.Sprintf(e.Message, args...),
	}
}

// Wrap returns a copy of e that wraps err.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		base:    e.root(),
		Err:     err,
		Message: e.Message,
	}
}
