package normalize

import (
	"reflect"
)

// Options controls how ExtractPage reads a raw result.
type Options struct {
	// ItemsField names the field or key holding the items, e.g. "assets".
	ItemsField string
	// AlternativeFields are tried in order when a mapping has no ItemsField.
	AlternativeFields []string
	// PageSize is the size the caller asked for. Zero means DefaultPageSize.
	PageSize int
	// DefaultPageSize applies when PageSize is not positive. Zero means
	// MaxPageSize.
	DefaultPageSize int
	// MaxPageSize caps the page. Zero means the package MaxPageSize.
	MaxPageSize int
}

// Limit is the number of items a page extracted with o may hold.
func (o Options) Limit() int {
	return EffectiveLimit(o.PageSize, o.DefaultPageSize, o.MaxPageSize)
}

// ExtractPage pulls the continuation token and a bounded item list out of a
// raw result of unknown shape. The token is nil when the shape cannot carry
// one. It never fails: shapes it does not understand become a one-item page
// and iteration failures become an empty one.
func ExtractPage(result any, opts Options) (*string, []any) {
	rv := indirect(reflect.ValueOf(result))
	limit := opts.Limit()

	switch classify(rv, opts.ItemsField) {
	case ShapeNil, ShapeAsync:
		return nil, []any{}

	case ShapeNamedField:
		items, _ := fieldByName(rv, opts.ItemsField)
		token := nextPageToken(rv)
		return &token, bound(items, limit)

	case ShapeIterable:
		return nil, bound(rv, limit)

	case ShapeMapping:
		items := firstPresent(rv, opts.ItemsField, opts.AlternativeFields)
		token := nextPageToken(rv)
		return &token, bound(items, limit)
	}

	return nil, []any{result}
}

// firstPresent returns the first non-nil entry among field, each of alts
// and finally "items".
func firstPresent(rv reflect.Value, field string, alts []string) reflect.Value {
	names := make([]string, 0, len(alts)+2)
	names = append(names, field)
	names = append(names, alts...)
	names = append(names, "items")

	for _, name := range names {
		if v, ok := lookup(rv, name); ok {
			if v = indirect(v); v.IsValid() {
				return v
			}
		}
	}
	return reflect.Value{}
}
