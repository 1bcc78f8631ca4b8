// Package errors augments the standard errors
// with a Wrap() method, so sentinel errors may be
// declared once and decorated with their cause at
// the call site.
package errors

import (
	stderr "errors"
)

var _ error = New("")

// New Error
func New(msg string) *Error {
	return &Error{msg: msg}
}

// Error augments the standard error interface with a Wrap method.
//
// Wrapping returns a copy: sentinels declared as package variables
// remain untouched and can still be matched with Is.
type Error struct {
	msg    string
	err    error
	parent *Error
}

// Error message, followed by the message of the wrapped cause if any
func (e *Error) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

// Unwrap nested error
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// Wrap a nested error
func (e *Error) Wrap(err error) *Error {
	parent := e
	if e.parent != nil {
		parent = e.parent
	}
	return &Error{msg: e.msg, err: err, parent: parent}
}

// Is of some error type?
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e == t || (e.parent != nil && e.parent == t)
}

// Is reports whether any error in err's chain matches target
// (a shortcut to standard lib errors.Is)
func Is(err, target error) bool {
	return stderr.Is(err, target)
}
