package validation

import (
	"math"
	"reflect"
	"regexp"
)

// Primitive is a leaf validator for a scalar kind.
type Primitive struct {
	name    string
	message string
	check   func(value any) bool
}

// Validate implements Validator.
func (p *Primitive) Validate(value any) error {
	if !p.check(value) {
		return mismatch(p.message)
	}
	return nil
}

// Describe implements Validator.
func (p *Primitive) Describe() TypeDescriptor {
	return TypeDescriptor{Type: p.name}
}

// Name returns the type name reported by Describe.
func (p *Primitive) Name() string {
	return p.name
}

var (
	// String accepts strings.
	String = &Primitive{name: "String", message: "Was not a string!", check: isString}

	// Boolean accepts booleans and nil.
	Boolean = &Primitive{name: "Boolean", message: "Was not a boolean!", check: func(v any) bool {
		return v == nil || kindOf(v) == reflect.Bool
	}}

	// Integer accepts integer values, including integral finite floats.
	Integer = &Primitive{name: "Integer", message: "Was not an integer!", check: isInteger}

	// Function accepts func values and nil.
	Function = &Primitive{name: "Function", message: "Was not a function!", check: func(v any) bool {
		return v == nil || kindOf(v) == reflect.Func
	}}

	// Path accepts file paths. Existence is not checked.
	Path = &Primitive{name: "Filepath", message: "Was not a filepath!", check: isString}

	// RegExp accepts compiled regular expressions.
	RegExp = &Primitive{name: "RegExp", message: "Was not a regexp!", check: func(v any) bool {
		switch v.(type) {
		case *regexp.Regexp, regexp.Regexp:
			return true
		}
		return false
	}}

	// Promise accepts values that complete asynchronously: receivable
	// channels and anything with a Done() <-chan struct{} method.
	Promise = &Primitive{name: "Promise", message: "Was not a promise!", check: isPromise}
)

type doner interface {
	Done() <-chan struct{}
}

func kindOf(v any) reflect.Kind {
	if v == nil {
		return reflect.Invalid
	}
	return reflect.TypeOf(v).Kind()
}

func isString(v any) bool {
	return kindOf(v) == reflect.String
}

func isInteger(v any) bool {
	switch kindOf(v) {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	case reflect.Float32, reflect.Float64:
		f := reflect.ValueOf(v).Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0) && math.Trunc(f) == f
	}
	return false
}

func isPromise(v any) bool {
	if _, ok := v.(doner); ok {
		return true
	}
	if kindOf(v) != reflect.Chan {
		return false
	}
	return reflect.TypeOf(v).ChanDir()&reflect.RecvDir != 0
}
