package validation

import "github.com/openfroyo/argcheck/pkg/convert"

// TypeDescriptor describes the shape a validator accepts.
type TypeDescriptor struct {
	// Type is a short composable rendering such as "[Integer]".
	Type string `json:"type"`

	// Required reports whether the validator rejects empty values.
	Required bool `json:"required"`

	// Converter, when set, coerces raw input into the accepted kind.
	Converter convert.Converter `json:"-"`
}

// Validator checks values and describes what it accepts.
type Validator interface {
	// Validate returns nil when value is accepted, otherwise a *Failure.
	Validate(value any) error

	// Describe returns the validator's type information. It never depends
	// on any particular value.
	Describe() TypeDescriptor
}

// IsValid validates value with v. A nil validator accepts everything.
func IsValid(value any, v Validator) error {
	if v == nil {
		return nil
	}
	return v.Validate(value)
}

// describe is Describe with nil handled as an empty descriptor.
func describe(v Validator) TypeDescriptor {
	if v == nil {
		return TypeDescriptor{}
	}
	return v.Describe()
}
