package validation

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/openfroyo/argcheck/pkg/convert"
)

// ArrayValidator accepts sequences whose elements all satisfy an inner
// validator.
type ArrayValidator struct {
	inner Validator
}

// ArrayOf returns a validator for sequences of values accepted by v. A nil v
// accepts any sequence.
func ArrayOf(v Validator) *ArrayValidator {
	return &ArrayValidator{inner: v}
}

// Validate implements Validator.
func (a *ArrayValidator) Validate(value any) error {
	if !isSequence(value) {
		return mismatch("Was not an array!")
	}
	return ArrayOrSingle(a.inner).Validate(value)
}

// Describe implements Validator. An inner converter is lifted to convert
// every element.
func (a *ArrayValidator) Describe() TypeDescriptor {
	inner := describe(a.inner)
	desc := TypeDescriptor{Type: "[" + inner.Type + "]"}
	if inner.Converter != nil {
		desc.Converter = convert.ToArray(inner.Converter)
	}
	return desc
}

// ObjectValidator accepts string keyed maps whose values all satisfy an inner
// validator.
type ObjectValidator struct {
	inner Validator
}

// ObjectOf returns a validator for maps of values accepted by v. A nil v
// accepts any map.
func ObjectOf(v Validator) *ObjectValidator {
	return &ObjectValidator{inner: v}
}

// Validate implements Validator. Keys are checked in sorted order and the
// first failing entry is reported.
func (o *ObjectValidator) Validate(value any) error {
	if !isObject(value) {
		return mismatch("Was not an object!")
	}
	if o.inner == nil {
		return nil
	}

	entries := make(map[string]any)
	iter := reflect.ValueOf(value).MapRange()
	for iter.Next() {
		entries[iter.Key().String()] = iter.Value().Interface()
	}
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := IsValid(entries[key], o.inner); err != nil {
			class := ClassOf(err)
			if class == "" {
				class = ClassShapeMismatch
			}
			return &Failure{Class: class, Message: fmt.Sprintf("Key %q: %s", key, err.Error())}
		}
	}
	return nil
}

// Describe implements Validator.
func (o *ObjectValidator) Describe() TypeDescriptor {
	inner := describe(o.inner)
	desc := TypeDescriptor{Type: "{" + inner.Type + "}"}
	if inner.Converter != nil {
		desc.Converter = convert.ToObject(inner.Converter)
	}
	return desc
}

// ArrayOrSingleValidator accepts a bare value or a sequence of values.
type ArrayOrSingleValidator struct {
	inner Validator
}

// ArrayOrSingle returns a validator accepting either a single value or a
// sequence of values, each checked against v.
func ArrayOrSingle(v Validator) *ArrayOrSingleValidator {
	return &ArrayOrSingleValidator{inner: v}
}

// Validate implements Validator. The first failing element, in sequence
// order, is returned.
func (a *ArrayOrSingleValidator) Validate(value any) error {
	for _, elem := range elements(value) {
		if err := IsValid(elem, a.inner); err != nil {
			return err
		}
	}
	return nil
}

// Describe implements Validator.
func (a *ArrayOrSingleValidator) Describe() TypeDescriptor {
	inner := describe(a.inner).Type
	return TypeDescriptor{Type: inner + " / [" + inner + "]"}
}

// OneOfValidator accepts values matching any of its candidates.
type OneOfValidator struct {
	candidates []Validator
}

// OneOf returns a union of validators. At least one validator is required.
func OneOf(validators ...Validator) (*OneOfValidator, error) {
	if len(validators) == 0 {
		return nil, ErrNoValidators
	}
	return &OneOfValidator{candidates: append([]Validator(nil), validators...)}, nil
}

// MustOneOf is like OneOf but panics on misconfiguration.
func MustOneOf(validators ...Validator) *OneOfValidator {
	v, err := OneOf(validators...)
	if err != nil {
		panic(err)
	}
	return v
}

// Validate implements Validator. Candidates are tried in declaration order.
func (o *OneOfValidator) Validate(value any) error {
	var b strings.Builder
	b.WriteString("Was not any of the possible types:\n")
	for _, candidate := range o.candidates {
		if IsValid(value, candidate) == nil {
			return nil
		}
		b.WriteString("\n")
		b.WriteString(describe(candidate).Type)
	}
	return &Failure{Class: ClassUnionExhausted, Message: b.String()}
}

// Describe implements Validator.
func (o *OneOfValidator) Describe() TypeDescriptor {
	types := make([]string, len(o.candidates))
	for i, candidate := range o.candidates {
		types[i] = describe(candidate).Type
	}
	return TypeDescriptor{Type: strings.Join(types, " / ")}
}

// RequiredValidator rejects empty values before delegating.
type RequiredValidator struct {
	inner Validator
}

// Required marks a value as mandatory. A nil v only applies the emptiness
// check.
func Required(v Validator) *RequiredValidator {
	return &RequiredValidator{inner: v}
}

// Validate implements Validator.
func (r *RequiredValidator) Validate(value any) error {
	if isEmpty(value) {
		return &Failure{Class: ClassEmpty, Message: "A value was required but none was given!"}
	}
	return IsValid(value, r.inner)
}

// Describe implements Validator.
func (r *RequiredValidator) Describe() TypeDescriptor {
	desc := describe(r.inner)
	desc.Required = true
	return desc
}

func isSequence(v any) bool {
	k := kindOf(v)
	return k == reflect.Slice || k == reflect.Array
}

func isObject(v any) bool {
	if kindOf(v) != reflect.Map {
		return false
	}
	return reflect.TypeOf(v).Key().Kind() == reflect.String
}

// elements normalises a bare value into a one element sequence.
func elements(v any) []any {
	if !isSequence(v) {
		return []any{v}
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// isEmpty reports whether a value counts as absent. Boolean false and numeric
// zero are present values.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Array:
		return rv.Len() == 0
	case reflect.Slice, reflect.Map:
		return rv.IsNil() || rv.Len() == 0
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(rv.Float())
	}
	return false
}
