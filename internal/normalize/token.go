package normalize

import (
	"reflect"
)

// NextPageTokenFields are the names a continuation token may be published
// under, newest naming first.
var NextPageTokenFields = []string{"nextPageToken", "next_page_token"}

// NextPageToken returns the first non-empty continuation token found on
// result, as a string. It returns "" when there is none.
func NextPageToken(result any) string {
	return nextPageToken(indirect(reflect.ValueOf(result)))
}

func nextPageToken(rv reflect.Value) string {
	if !rv.IsValid() {
		return ""
	}
	for _, name := range NextPageTokenFields {
		v, ok := lookup(rv, name)
		if !ok {
			continue
		}
		if s := tokenString(v); s != "" {
			return s
		}
	}
	return ""
}

func tokenString(v reflect.Value) string {
	v = indirect(v)
	if !v.IsValid() || v.IsZero() {
		return ""
	}
	if v.Kind() == reflect.String {
		return v.String()
	}
	if text, ok := marshalText(v); ok {
		return text
	}
	return describe(v)
}
