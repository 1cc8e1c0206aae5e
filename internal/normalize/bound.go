package normalize

import (
	"reflect"
)

const (
	// DefaultPageSize is used when a request does not ask for a page size.
	DefaultPageSize = 50
	// MaxPageSize caps every page regardless of what was requested.
	MaxPageSize = 100
)

var errorType = reflect.TypeFor[error]()

// EffectiveLimit resolves the number of items a page may hold. A
// non-positive request falls back to def, a non-positive def falls back to
// ceiling, and the result never exceeds ceiling.
func EffectiveLimit(requested, def, ceiling int) int {
	if ceiling <= 0 {
		ceiling = MaxPageSize
	}
	if def <= 0 || def > ceiling {
		def = ceiling
	}
	limit := requested
	if limit <= 0 {
		limit = def
	}
	return min(limit, ceiling)
}

// Bound materializes at most limit items from items. Iterators are consumed
// lazily and never past limit. A failure while draining, either an error
// yielded by an iter.Seq2[T, error] or a panic in the producer, discards
// everything and returns an empty list. Values that are not iterable become
// a one-item list, or an empty one when they are zero or an empty map.
func Bound(items any, limit int) []any {
	return bound(reflect.ValueOf(items), limit)
}

func bound(rv reflect.Value, limit int) (out []any) {
	out = []any{}
	rv = indirect(rv)
	if !rv.IsValid() || limit <= 0 {
		return out
	}

	switch {
	case rv.Kind() == reflect.Chan:
		return out
	case rv.Kind() == reflect.Map && rv.Len() == 0:
		return out
	case rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			break
		}
		n := min(rv.Len(), limit)
		out = make([]any, 0, n)
		for i := range n {
			out = append(out, interfaceOf(rv.Index(i)))
		}
		return out
	case rv.Kind() == reflect.Func && rv.Type().CanSeq():
		return drainSeq(rv, limit)
	case rv.Kind() == reflect.Func && rv.Type().CanSeq2():
		return drainSeq2(rv, limit)
	}

	if rv.IsZero() {
		return out
	}
	return []any{interfaceOf(rv)}
}

func drainSeq(rv reflect.Value, limit int) (out []any) {
	defer func() {
		if recover() != nil {
			out = []any{}
		}
	}()

	out = []any{}
	for v := range rv.Seq() {
		out = append(out, interfaceOf(v))
		if len(out) >= limit {
			break
		}
	}
	return out
}

// drainSeq2 collects the first value of each pair when the second is an
// error, and the second value otherwise (key/value iterators such as
// slices.All).
func drainSeq2(rv reflect.Value, limit int) (out []any) {
	defer func() {
		if recover() != nil {
			out = []any{}
		}
	}()

	failable := rv.Type().In(0).In(1) == errorType

	out = []any{}
	for k, v := range rv.Seq2() {
		if failable {
			if !v.IsNil() {
				return []any{}
			}
			out = append(out, interfaceOf(k))
		} else {
			out = append(out, interfaceOf(v))
		}
		if len(out) >= limit {
			break
		}
	}
	return out
}

func interfaceOf(rv reflect.Value) any {
	if !rv.IsValid() || !rv.CanInterface() {
		return nil
	}
	return rv.Interface()
}
