package convert

import (
	"fmt"
	"reflect"
	"strings"
)

// Kind identifies the value kind a converter produces.
type Kind int

const (
	// KindUnknown means no kind was declared or it could not be derived.
	KindUnknown Kind = iota
	KindString
	KindBoolean
	KindInteger
	KindFloat
	KindArray
	KindObject
)

var kindNames = map[Kind]string{
	KindUnknown: "unknown",
	KindString:  "string",
	KindBoolean: "boolean",
	KindInteger: "integer",
	KindFloat:   "float",
	KindArray:   "array",
	KindObject:  "object",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a kind name as written in manifests. The empty string
// parses as KindUnknown.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "unknown", "auto":
		return KindUnknown, nil
	case "string":
		return KindString, nil
	case "boolean", "bool":
		return KindBoolean, nil
	case "integer", "int":
		return KindInteger, nil
	case "float", "number":
		return KindFloat, nil
	case "array", "list":
		return KindArray, nil
	case "object", "map":
		return KindObject, nil
	default:
		return KindUnknown, fmt.Errorf("unknown kind %q", name)
	}
}

// KindOf reports the kind of an exemplar value.
func KindOf(v any) Kind {
	if v == nil {
		return KindUnknown
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInteger
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.Slice, reflect.Array:
		return KindArray
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return KindObject
		}
	}
	return KindUnknown
}
