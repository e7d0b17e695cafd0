package convert

import "reflect"

// Table selects a converter by kind.
type Table map[Kind]Converter

// DefaultTable holds the built-in converters. Arrays and objects convert their
// elements as strings; For derives a better element converter when it has an
// exemplar to look at.
var DefaultTable = Table{
	KindString:  ToString,
	KindBoolean: ToBoolean,
	KindInteger: ToInteger,
	KindFloat:   ToFloat,
	KindArray:   ToArray(nil),
	KindObject:  ToObject(nil),
}

// Lookup returns the converter registered for kind, or nil.
func (t Table) Lookup(kind Kind) Converter {
	if t == nil || kind == KindUnknown {
		return nil
	}
	return t[kind]
}

// For derives a converter from an exemplar using DefaultTable.
func For(exemplar any) Converter {
	return DefaultTable.For(exemplar)
}

// For derives a converter from an exemplar value. Array exemplars use the
// kind of their first element for element conversion. Returns nil when the
// exemplar's kind has no entry.
func (t Table) For(exemplar any) Converter {
	kind := KindOf(exemplar)
	if kind == KindArray {
		rv := reflect.ValueOf(exemplar)
		if rv.Len() > 0 {
			if elem := t.For(rv.Index(0).Interface()); elem != nil {
				return ToArray(elem)
			}
		}
	}
	return t.Lookup(kind)
}
