package validation

import (
	"errors"
	"fmt"
)

// FailureClass classifies validation failures.
type FailureClass string

const (
	// ClassShapeMismatch indicates a value that does not match a primitive or
	// combinator's structural contract.
	ClassShapeMismatch FailureClass = "shape_mismatch"

	// ClassUnionExhausted indicates that every candidate of a OneOf failed.
	ClassUnionExhausted FailureClass = "union_exhausted"

	// ClassEmpty indicates that Required rejected an absent or empty value.
	ClassEmpty FailureClass = "empty"
)

var (
	// ErrMisconfigured is wrapped by every error caused by building an
	// unusable validator.
	ErrMisconfigured = errors.New("misconfigured validator")

	// ErrNoValidators is returned by OneOf when called without validators.
	ErrNoValidators = fmt.Errorf("%w: you need to use at least one validator", ErrMisconfigured)
)

// Failure is the error returned by Validate for invalid input.
type Failure struct {
	// Class is the failure classification.
	Class FailureClass `json:"class"`

	// Message is the human-readable failure description.
	Message string `json:"message"`
}

// Error returns the failure message unchanged.
func (f *Failure) Error() string {
	return f.Message
}

func mismatch(message string) *Failure {
	return &Failure{Class: ClassShapeMismatch, Message: message}
}

// ClassOf returns the class of a validation failure, or the empty class when
// err is not a *Failure.
func ClassOf(err error) FailureClass {
	var f *Failure
	if errors.As(err, &f) {
		return f.Class
	}
	return ""
}

// IsFailure reports whether err is a validation failure.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}
