package convert

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Converter coerces a raw value toward a target kind.
type Converter func(raw any) any

// ToString renders non-string values with fmt.Sprint. nil stays nil.
func ToString(raw any) any {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// ToBoolean accepts the usual spellings of true and false. Anything else is
// returned unchanged so that validation can report it.
func ToBoolean(raw any) any {
	s, ok := raw.(string)
	if !ok {
		return raw
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true
	case "false", "no", "off", "0":
		return false
	default:
		return raw
	}
}

// ToInteger parses integers. Input that is numeric but not integral becomes a
// float64, and input that is not numeric at all becomes NaN.
func ToInteger(raw any) any {
	s, ok := raw.(string)
	if !ok {
		return raw
	}
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return math.NaN()
}

// ToFloat parses floating point numbers, yielding NaN for non-numeric input.
func ToFloat(raw any) any {
	s, ok := raw.(string)
	if !ok {
		return raw
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ToArray returns a converter producing []any. Strings are split on commas;
// sequences are copied. Each element goes through elem when it is non-nil.
func ToArray(elem Converter) Converter {
	return func(raw any) any {
		var items []any
		switch v := raw.(type) {
		case nil:
			return nil
		case string:
			if v == "" {
				return []any{}
			}
			for _, part := range strings.Split(v, ",") {
				items = append(items, strings.TrimSpace(part))
			}
		default:
			rv := reflect.ValueOf(raw)
			if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
				return raw
			}
			items = make([]any, rv.Len())
			for i := range items {
				items[i] = rv.Index(i).Interface()
			}
		}

		if elem != nil {
			for i, item := range items {
				items[i] = elem(item)
			}
		}
		return items
	}
}

// ToObject returns a converter that decodes JSON object text into
// map[string]any. Values go through elem when it is non-nil. Text that is not
// a JSON object is returned unchanged.
func ToObject(elem Converter) Converter {
	return func(raw any) any {
		s, ok := raw.(string)
		if !ok {
			return raw
		}
		var out map[string]any
		if err := json.Unmarshal([]byte(s), &out); err != nil || out == nil {
			return raw
		}
		if elem != nil {
			for k, v := range out {
				out[k] = elem(v)
			}
		}
		return out
	}
}
