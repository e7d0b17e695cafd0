// Package convert coerces raw command-line input into the value kinds that
// validators expect.
//
// Coercion is selected from an explicit table keyed by Kind rather than by
// inspecting values ad hoc. A Kind is either declared on an argument or
// derived from an exemplar such as an argument's default value:
//
//	conv := convert.For(1)     // integer converter
//	v := conv("42")            // int(42)
//	v = conv("abc")            // NaN, rejected later by validation.Integer
//
// Converters only coerce strings. Values that already have a concrete type
// pass through unchanged, so converting twice is harmless.
//
// Unknown kinds have no converter; callers treat a nil Converter as "leave the
// value as it is".
package convert
