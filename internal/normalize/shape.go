package normalize

import (
	"reflect"
	"strings"
)

// Shape is the kind of raw upstream result ExtractPage is looking at.
type Shape int

const (
	ShapeNil Shape = iota
	// ShapeAsync is a channel. It is not drained and yields no items.
	ShapeAsync
	// ShapeNamedField is a struct that exposes the requested items field.
	ShapeNamedField
	// ShapeIterable is a slice, array or range-over-func iterator.
	ShapeIterable
	// ShapeMapping is a map that is looked up by key.
	ShapeMapping
	// ShapeSingle is any other value, treated as a one-item page.
	ShapeSingle
)

func (s Shape) String() string {
	switch s {
	case ShapeNil:
		return "nil"
	case ShapeAsync:
		return "async"
	case ShapeNamedField:
		return "named_field"
	case ShapeIterable:
		return "iterable"
	case ShapeMapping:
		return "mapping"
	case ShapeSingle:
		return "single"
	}
	return "unknown"
}

// Classify reports the shape of result. The checks run in a fixed order and
// the first match wins.
func Classify(result any, itemsField string) Shape {
	return classify(indirect(reflect.ValueOf(result)), itemsField)
}

func classify(rv reflect.Value, itemsField string) Shape {
	switch {
	case !rv.IsValid():
		return ShapeNil
	case rv.Kind() == reflect.Chan:
		return ShapeAsync
	case rv.Kind() == reflect.Struct && hasField(rv, itemsField):
		return ShapeNamedField
	case isIterable(rv):
		return ShapeIterable
	case rv.Kind() == reflect.Map:
		return ShapeMapping
	}
	return ShapeSingle
}

// indirect follows pointers and interfaces. Nil anywhere along the way
// yields the zero Value.
func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	if rv.IsValid() && isNilable(rv.Kind()) && rv.IsNil() {
		return reflect.Value{}
	}
	return rv
}

func isIterable(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Type().Elem().Kind() != reflect.Uint8
	case reflect.Func:
		return rv.Type().CanSeq() || rv.Type().CanSeq2()
	}
	return false
}

func hasField(rv reflect.Value, name string) bool {
	_, ok := fieldByName(rv, name)
	return ok
}

// fieldByName finds a struct field by JSON name, falling back to a
// case-insensitive match on the Go name. Untagged embedded structs are
// searched as well.
func fieldByName(rv reflect.Value, name string) (reflect.Value, bool) {
	if name == "" {
		return reflect.Value{}, false
	}
	t := rv.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		jn, tagged, skip := jsonName(sf)
		if skip {
			continue
		}
		if sf.Anonymous && !tagged {
			if inner := indirect(rv.Field(i)); inner.IsValid() && inner.Kind() == reflect.Struct {
				if fv, ok := fieldByName(inner, name); ok {
					return fv, true
				}
			}
		}
		if !sf.IsExported() {
			continue
		}
		if jn == name || strings.EqualFold(sf.Name, name) {
			return rv.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// lookup reads name from a struct field or a string-keyed map entry.
func lookup(rv reflect.Value, name string) (reflect.Value, bool) {
	switch rv.Kind() {
	case reflect.Struct:
		return fieldByName(rv, name)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, false
		}
		v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		return v, v.IsValid()
	}
	return reflect.Value{}, false
}
