package errors

import (
	goErrors "errors"
	"fmt"
)

// New returns an error with the given message.
func New(msg string) error {
	return goErrors.New(msg)
}

// ContextError annotates an error with the operation that caused it. The
// original error is recoverable via RootCause.
type ContextError struct {
	Context string
	Err     error
}

func (ce ContextError) Error() string {
	return fmt.Sprintf("%s: %s", ce.Context, ce.Err)
}

// WithContext wraps err so that the returned error's message is prefixed
// with `context`.
func WithContext(err error, context string) error {
	return ContextError{Context: context, Err: err}
}

// RootCause unwraps err until it reaches the innermost error.
func RootCause(err error) error {
	for {
		ce, ok := err.(ContextError)
		if !ok {
			return err
		}
		err = ce.Err
	}
}

// FriendlyError is an error whose message is meant to be shown directly to
// end users. Errors of this type are printed without the "FATAL" decoration
// that other errors get.
type FriendlyError struct {
	Message string
}

func (err FriendlyError) Error() string {
	return err.Message
}

// NewFriendlyError creates a new FriendlyError with a formatted message.
func NewFriendlyError(format string, args ...interface{}) FriendlyError {
	return FriendlyError{Message: fmt.Sprintf(format, args...)}
}
