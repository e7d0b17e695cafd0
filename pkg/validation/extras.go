package validation

import (
	"fmt"
	"regexp"

	"github.com/openfroyo/argcheck/pkg/convert"
)

// PatternValidator accepts strings matching a regular expression.
type PatternValidator struct {
	re *regexp.Regexp
}

// Match returns a validator for strings matched by re.
func Match(re *regexp.Regexp) *PatternValidator {
	return &PatternValidator{re: re}
}

// Validate implements Validator.
func (p *PatternValidator) Validate(value any) error {
	s, ok := value.(string)
	if !ok || !p.re.MatchString(s) {
		return mismatch(fmt.Sprintf("Was not matching %s!", p.Describe().Type))
	}
	return nil
}

// Describe implements Validator.
func (p *PatternValidator) Describe() TypeDescriptor {
	return TypeDescriptor{Type: "/" + p.re.String() + "/"}
}

// ConvertingValidator attaches a converter to another validator's descriptor.
type ConvertingValidator struct {
	inner     Validator
	converter convert.Converter
}

// Convert returns v with c exposed as its converter. Argument resolution
// applies c to raw input before validating.
func Convert(v Validator, c convert.Converter) *ConvertingValidator {
	return &ConvertingValidator{inner: v, converter: c}
}

// Validate implements Validator.
func (c *ConvertingValidator) Validate(value any) error {
	return IsValid(value, c.inner)
}

// Describe implements Validator.
func (c *ConvertingValidator) Describe() TypeDescriptor {
	desc := describe(c.inner)
	desc.Converter = c.converter
	return desc
}
