// Package validation provides composable validators for configuration values
// and command-line arguments.
//
// # Overview
//
// Every validator implements two operations that share one definition:
//
//   - Validate checks a runtime value and returns nil or a *Failure whose
//     message is meant for humans ("Was not a string!").
//   - Describe reports the accepted shape as a TypeDescriptor, used for
//     documentation and error messages ("[Integer]", "String / Boolean").
//
// Because the descriptor is produced by the same value that enforces the
// check, documentation and enforcement cannot drift apart.
//
// # Components
//
// Primitives: String, Boolean, Integer, Function, Path, RegExp and Promise.
// Boolean and Function accept nil as an explicit "unset" value.
//
// Combinators wrap other validators: ArrayOf, ObjectOf, ArrayOrSingle, OneOf
// and Required. Match validates strings against a regular expression and
// Convert attaches a converter to a validator's descriptor.
//
// IsValid is the dispatcher used for nested checks; a nil validator means
// "unconstrained" and always succeeds.
//
// # Usage Example
//
//	v := validation.Required(validation.ArrayOf(
//	    validation.MustOneOf(validation.String, validation.Boolean),
//	))
//
//	if err := validation.IsValid(input, v); err != nil {
//	    fmt.Println(err) // human readable failure
//	}
//
//	fmt.Println(v.Describe().Type) // [String / Boolean]
//
// Validators can also be declared as text with Parse:
//
//	v, err := validation.Parse(`required(arrayOf(oneOf(string, boolean)))`)
//
// All validators are immutable after construction and safe for concurrent use.
package validation
