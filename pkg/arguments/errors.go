package arguments

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCommand is returned when a command is not registered.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrDuplicateCommand is returned when registering a name twice.
	ErrDuplicateCommand = errors.New("command already registered")

	// ErrInvalidDeclaration is wrapped by registration failures.
	ErrInvalidDeclaration = errors.New("invalid command declaration")
)

// ArgumentError is a validation failure for a single argument.
type ArgumentError struct {
	Name  string
	Value any
	Err   error
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %q: %v", e.Name, e.Err)
}

// Unwrap returns the underlying validation failure.
func (e *ArgumentError) Unwrap() error {
	return e.Err
}
