package normalize

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	// MaxDepth is the deepest level ToSerializable descends before it
	// collapses the remaining subtree into text. The root is depth 0.
	MaxDepth = 10

	// CircularReference replaces a value that is already being serialized
	// further up the current path.
	CircularReference = "<circular reference>"
)

var (
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	rawMessageType    = reflect.TypeFor[json.RawMessage]()
	numberType        = reflect.TypeFor[json.Number]()
)

// ToSerializable converts v into a value built only from nil, bool,
// numbers, strings, []any and map[string]any, so it can be handed to
// encoding/json safely. It never panics.
func ToSerializable(v any) (out any) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("<unserializable %T: %v>", v, r)
		}
	}()

	s := &serializer{visiting: make(map[visitKey]struct{})}
	return s.value(reflect.ValueOf(v), 0)
}

// visitKey identifies a reference value on the current path. The length
// separates sub-slices that share a backing array.
type visitKey struct {
	typ reflect.Type
	ptr uintptr
	n   int
}

type serializer struct {
	visiting map[visitKey]struct{}
}

// enter marks k as in progress. The returned leave func must be deferred so
// that siblings sharing the same reference are serialized again.
func (s *serializer) enter(k visitKey) (leave func(), ok bool) {
	if _, seen := s.visiting[k]; seen {
		return nil, false
	}
	s.visiting[k] = struct{}{}
	return func() { delete(s.visiting, k) }, true
}

func (s *serializer) value(rv reflect.Value, depth int) any {
	if !rv.IsValid() {
		return nil
	}
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if isNilable(rv.Kind()) && rv.IsNil() {
		return nil
	}

	if depth > MaxDepth {
		return describe(rv)
	}

	if text, ok := marshalText(rv); ok {
		return text
	}
	if rv.Type() == rawMessageType {
		return s.rawMessage(rv.Bytes(), depth)
	}
	// encoding/json writes a json.Number as a bare number.
	if rv.Type() == numberType {
		return json.Number(rv.String())
	}

	switch rv.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return scalar(rv)

	case reflect.Pointer:
		if elem := rv.Elem(); elem.Kind() == reflect.Struct && len(publicFields(elem)) == 0 {
			return describe(rv)
		}
		leave, ok := s.enter(visitKey{typ: rv.Type(), ptr: rv.Pointer()})
		if !ok {
			return CircularReference
		}
		defer leave()
		return s.value(rv.Elem(), depth)

	case reflect.Map:
		leave, ok := s.enter(visitKey{typ: rv.Type(), ptr: rv.Pointer()})
		if !ok {
			return CircularReference
		}
		defer leave()
		return s.mapping(rv, depth)

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return hexutil.Encode(rv.Bytes())
		}
		if rv.Len() == 0 {
			return []any{}
		}
		leave, ok := s.enter(visitKey{typ: rv.Type(), ptr: rv.Pointer(), n: rv.Len()})
		if !ok {
			return CircularReference
		}
		defer leave()
		return s.sequence(rv, depth)

	case reflect.Array:
		return s.sequence(rv, depth)

	case reflect.Struct:
		if out, ok := s.record(rv, depth); ok {
			return out
		}
		return describe(rv)
	}

	return describe(rv)
}

func (s *serializer) rawMessage(raw []byte, depth int) any {
	if len(raw) == 0 {
		return nil
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return string(raw)
	}
	return s.value(reflect.ValueOf(decoded), depth)
}

func (s *serializer) mapping(rv reflect.Value, depth int) map[string]any {
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[mapKey(iter.Key())] = s.value(iter.Value(), depth+1)
	}
	return out
}

func (s *serializer) sequence(rv reflect.Value, depth int) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = s.value(rv.Index(i), depth+1)
	}
	return out
}

// record renders the public fields of a struct. It reports false when the
// struct has no public fields at all.
func (s *serializer) record(rv reflect.Value, depth int) (any, bool) {
	fields := publicFields(rv)
	if len(fields) == 0 {
		return nil, false
	}
	if len(fields) == 1 && fields[0].payload {
		if out := s.value(fields[0].value, depth+1); isScalar(out) {
			return out, true
		}
	}

	out := make(map[string]any, len(fields))
	for _, f := range fields {
		out[f.name] = s.value(f.value, depth+1)
	}
	return out, true
}

type field struct {
	name    string
	value   reflect.Value
	payload bool
}

// publicFields lists the exported fields of a struct under their JSON
// names, flattening untagged embedded structs. Fields tagged "-" and
// names starting with an underscore are left out, except "_value_".
func publicFields(rv reflect.Value) []field {
	var fields []field
	t := rv.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		name, tagged, skip := jsonName(sf)
		if skip {
			continue
		}

		if sf.Anonymous && !tagged {
			fv := rv.Field(i)
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			}
			if fv.Kind() == reflect.Struct {
				fields = append(fields, publicFields(fv)...)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		if strings.HasPrefix(name, "_") && name != "_value_" {
			continue
		}

		fields = append(fields, field{
			name:    name,
			value:   rv.Field(i),
			payload: name == "_value_" || name == "value" || sf.Name == "Value",
		})
	}
	return fields
}

// jsonName returns the name encoding/json would use for sf, whether the tag
// named it explicitly, and whether the field is excluded.
func jsonName(sf reflect.StructField) (name string, tagged, skip bool) {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name, _, _ = strings.Cut(tag, ",")
	if name != "" {
		return name, true, false
	}
	return sf.Name, false, false
}

func marshalText(rv reflect.Value) (string, bool) {
	if !rv.CanInterface() {
		return "", false
	}
	var tm encoding.TextMarshaler
	switch {
	case rv.Type().Implements(textMarshalerType):
		tm, _ = rv.Interface().(encoding.TextMarshaler)
	case rv.CanAddr() && rv.Addr().Type().Implements(textMarshalerType):
		tm, _ = rv.Addr().Interface().(encoding.TextMarshaler)
	}
	if tm == nil {
		return "", false
	}
	b, err := tm.MarshalText()
	if err != nil {
		return describe(rv), true
	}
	return string(b), true
}

// scalar returns builtin scalars unchanged and converts named scalar types
// (enumerations) to their underlying value.
func scalar(rv reflect.Value) any {
	if rv.Type().PkgPath() == "" && rv.CanInterface() {
		return rv.Interface()
	}
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint()
	default:
		return rv.Float()
	}
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}
	if k.Kind() == reflect.String {
		return k.String()
	}
	if text, ok := marshalText(k); ok {
		return text
	}
	return describe(k)
}

func isNilable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return true
	}
	return false
}

func isScalar(v any) bool {
	switch v.(type) {
	case map[string]any, []any:
		return false
	}
	return true
}
