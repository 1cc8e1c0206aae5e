package normalize

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

const (
	sketchDepth = 32
	sketchWidth = 16
	// sketchBytes caps the rendering of wide cyclic graphs.
	sketchBytes = 4096
)

// describe renders rv as text. Values that know how to print themselves
// are asked to; everything else gets a bounded rendering that terminates
// even on self-referencing maps and slices.
func describe(rv reflect.Value) string {
	if rv.IsValid() && rv.CanInterface() {
		switch x := rv.Interface().(type) {
		case error:
			if s, ok := guarded(x.Error); ok {
				return s
			}
		case fmt.Stringer:
			if s, ok := guarded(x.String); ok {
				return s
			}
		}
	}

	var b strings.Builder
	sketch(&b, rv, 0)
	return b.String()
}

func guarded(fn func() string) (s string, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return fn(), true
}

func sketch(b *strings.Builder, rv reflect.Value, depth int) {
	if !rv.IsValid() {
		b.WriteString("<nil>")
		return
	}

	switch rv.Kind() {
	case reflect.String:
		b.WriteString(rv.String())
		return
	case reflect.Bool:
		b.WriteString(strconv.FormatBool(rv.Bool()))
		return
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(rv.Int(), 10))
		return
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString(strconv.FormatUint(rv.Uint(), 10))
		return
	case reflect.Float32, reflect.Float64:
		b.WriteString(strconv.FormatFloat(rv.Float(), 'g', -1, 64))
		return
	case reflect.Complex64, reflect.Complex128:
		b.WriteString(strconv.FormatComplex(rv.Complex(), 'g', -1, 128))
		return
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		fmt.Fprintf(b, "<%s>", rv.Type())
		return
	}

	if isNilable(rv.Kind()) && rv.IsNil() {
		b.WriteString("<nil>")
		return
	}
	if depth >= sketchDepth || b.Len() >= sketchBytes {
		b.WriteString("...")
		return
	}

	switch rv.Kind() {
	case reflect.Interface:
		sketch(b, rv.Elem(), depth)
	case reflect.Pointer:
		b.WriteByte('&')
		sketch(b, rv.Elem(), depth+1)
	case reflect.Map:
		b.WriteString("map[")
		iter := rv.MapRange()
		for i := 0; iter.Next(); i++ {
			if i == sketchWidth {
				b.WriteString(" ...")
				break
			}
			if i > 0 {
				b.WriteByte(' ')
			}
			sketch(b, iter.Key(), depth+1)
			b.WriteByte(':')
			sketch(b, iter.Value(), depth+1)
		}
		b.WriteByte(']')
	case reflect.Slice, reflect.Array:
		b.WriteByte('[')
		for i := range rv.Len() {
			if i == sketchWidth {
				b.WriteString(" ...")
				break
			}
			if i > 0 {
				b.WriteByte(' ')
			}
			sketch(b, rv.Index(i), depth+1)
		}
		b.WriteByte(']')
	case reflect.Struct:
		b.WriteByte('{')
		for i := range rv.NumField() {
			if i == sketchWidth {
				b.WriteString(" ...")
				break
			}
			if i > 0 {
				b.WriteByte(' ')
			}
			sketch(b, rv.Field(i), depth+1)
		}
		b.WriteByte('}')
	default:
		b.WriteString(rv.Type().String())
	}
}
