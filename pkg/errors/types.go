package errors

import (
	"fmt"
)

// ErrNoPeers occurs when an operation requires at least one reachable peer
// device, and none responded to the reachability probe.
var ErrNoPeers = New("no reachable peer devices")

// MissingFieldError represents a missing required field.
type MissingFieldError struct {
	Field string
}

func (err MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", err.Field)
}

// FileNotFound represents when we were unable to access a file
// because the path didn't exist.
type FileNotFound struct {
	Path string
}

func (err FileNotFound) Error() string {
	return fmt.Sprintf("%q does not exist", err.Path)
}
