package normalize

import (
	"encoding/json"
	"errors"
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type assetsReply struct {
	Assets        []string `json:"assets"`
	NextPageToken string   `json:"nextPageToken"`
}

type legacyReply struct {
	Holders []string `json:"holders"`
	Token   string   `json:"next_page_token"`
}

type embeddedReply struct {
	assetsReply
	Extra string `json:"extra"`
}

func counting(n int, pulled *int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range n {
			*pulled++
			if !yield(i) {
				return
			}
		}
	}
}

func TestClassify(t *testing.T) {
	var nilReply *assetsReply
	ch := make(chan int)
	tests := []struct {
		name   string
		result any
		want   Shape
	}{
		{"untyped nil", nil, ShapeNil},
		{"typed nil", nilReply, ShapeNil},
		{"nil map", map[string]any(nil), ShapeNil},
		{"channel", ch, ShapeAsync},
		{"struct with field", assetsReply{}, ShapeNamedField},
		{"pointer to struct with field", &assetsReply{}, ShapeNamedField},
		{"embedded field", embeddedReply{}, ShapeNamedField},
		{"slice", []int{1}, ShapeIterable},
		{"array", [2]int{}, ShapeIterable},
		{"iterator", counting(1, new(int)), ShapeIterable},
		{"pair iterator", slices.All([]int{1}), ShapeIterable},
		{"mapping", map[string]any{"items": []int{1}}, ShapeMapping},
		{"struct without field", legacyReply{}, ShapeSingle},
		{"string", "abc", ShapeSingle},
		{"bytes", []byte("abc"), ShapeSingle},
		{"number", 7, ShapeSingle},
		{"plain func", func() {}, ShapeSingle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.result, "assets"))
		})
	}
}

func TestExtractPage_NamedFieldTruncates(t *testing.T) {
	reply := &assetsReply{Assets: []string{"a", "b", "c"}, NextPageToken: "next"}

	token, items := ExtractPage(reply, Options{ItemsField: "assets", PageSize: 2, MaxPageSize: 100})

	require.NotNil(t, token)
	assert.Equal(t, "next", *token)
	assert.Equal(t, []any{"a", "b"}, items)
}

func TestExtractPage_MappingTruncates(t *testing.T) {
	result := map[string]any{"assets": []any{"a", "b", "c"}}

	token, items := ExtractPage(result, Options{ItemsField: "assets", PageSize: 2, MaxPageSize: 100})

	require.NotNil(t, token)
	assert.Equal(t, "", *token)
	assert.Equal(t, []any{"a", "b"}, items)
}

func TestExtractPage_NilResult(t *testing.T) {
	token, items := ExtractPage(nil, Options{ItemsField: "holders", MaxPageSize: 100})

	assert.Nil(t, token)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestExtractPage_ChannelIsNotDrained(t *testing.T) {
	ch := make(chan string, 1)
	ch <- "a"

	token, items := ExtractPage(ch, Options{ItemsField: "assets"})

	assert.Nil(t, token)
	assert.Empty(t, items)
	assert.Len(t, ch, 1)
}

func TestExtractPage_IterableHasNoToken(t *testing.T) {
	token, items := ExtractPage([]int{1, 2, 3}, Options{ItemsField: "assets"})

	assert.Nil(t, token)
	assert.Equal(t, []any{1, 2, 3}, items)
}

func TestExtractPage_MappingLookupOrder(t *testing.T) {
	opts := Options{ItemsField: "assets", AlternativeFields: []string{"nfts"}}

	tests := []struct {
		name   string
		result map[string]any
		want   []any
	}{
		{"primary", map[string]any{"assets": []any{1}, "nfts": []any{2}, "items": []any{3}}, []any{1}},
		{"alternative", map[string]any{"nfts": []any{2}, "items": []any{3}}, []any{2}},
		{"nil primary", map[string]any{"assets": nil, "nfts": []any{2}}, []any{2}},
		{"items fallback", map[string]any{"items": []any{3}, "other": "x"}, []any{3}},
		{"nothing", map[string]any{"other": "x"}, []any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, items := ExtractPage(tt.result, opts)
			assert.Equal(t, tt.want, items)
		})
	}
}

func TestExtractPage_MappingOverIteration(t *testing.T) {
	result := map[string]any{"items": []any{"x", "y"}, "count": 2, "nextPageToken": "t"}

	token, items := ExtractPage(result, Options{ItemsField: "holders"})

	require.NotNil(t, token)
	assert.Equal(t, "t", *token)
	assert.Equal(t, []any{"x", "y"}, items)
}

func TestExtractPage_SingleObject(t *testing.T) {
	reply := legacyReply{Holders: []string{"a"}}

	token, items := ExtractPage(reply, Options{ItemsField: "assets"})

	assert.Nil(t, token)
	assert.Equal(t, []any{reply}, items)
}

func TestExtractPage_DefaultPageSize(t *testing.T) {
	source := make([]int, 250)

	_, items := ExtractPage(source, Options{ItemsField: "assets", DefaultPageSize: 50, MaxPageSize: 100})
	assert.Len(t, items, 50)

	_, items = ExtractPage(source, Options{ItemsField: "assets"})
	assert.Len(t, items, MaxPageSize)

	_, items = ExtractPage(source, Options{ItemsField: "assets", PageSize: 400, MaxPageSize: 100})
	assert.Len(t, items, 100)
}

func TestExtractPage_BoundingInvariant(t *testing.T) {
	for _, n := range []int{0, 1, 5, 49, 50, 51, 150} {
		for _, requested := range []int{0, 1, 10, 50, 100, 120} {
			for _, ceiling := range []int{1, 25, 100} {
				source := make([]int, n)
				_, items := ExtractPage(source, Options{
					ItemsField:      "assets",
					PageSize:        requested,
					DefaultPageSize: DefaultPageSize,
					MaxPageSize:     ceiling,
				})

				limit := requested
				if limit <= 0 {
					limit = min(DefaultPageSize, ceiling)
				}
				assert.Len(t, items, min(n, min(limit, ceiling)),
					"n=%d requested=%d ceiling=%d", n, requested, ceiling)
			}
		}
	}
}

func TestNextPageToken(t *testing.T) {
	tests := []struct {
		name   string
		result any
		want   string
	}{
		{"nil", nil, ""},
		{"struct camel", assetsReply{NextPageToken: "camel"}, "camel"},
		{"struct snake", legacyReply{Token: "snake"}, "snake"},
		{"map camel wins", map[string]any{"nextPageToken": "camel", "next_page_token": "snake"}, "camel"},
		{"empty camel falls through", map[string]any{"nextPageToken": "", "next_page_token": "snake"}, "snake"},
		{"numeric token", map[string]any{"next_page_token": 42}, "42"},
		{"absent", map[string]any{"assets": []any{}}, ""},
		{"scalar", "abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextPageToken(tt.result))
		})
	}
}

func TestBound_StopsPullingAtLimit(t *testing.T) {
	pulled := 0
	items := Bound(counting(1000, &pulled), 3)

	assert.Equal(t, []any{0, 1, 2}, items)
	assert.Equal(t, 3, pulled)
}

func TestBound_FailingIterator(t *testing.T) {
	failing := func(yield func(string, error) bool) {
		if !yield("a", nil) {
			return
		}
		yield("", errors.New("connection reset"))
	}

	assert.Equal(t, []any{}, Bound(iter.Seq2[string, error](failing), 10))
}

func TestBound_PanickingIterator(t *testing.T) {
	panicking := func(yield func(int) bool) {
		yield(1)
		panic("producer failed")
	}

	assert.Equal(t, []any{}, Bound(iter.Seq[int](panicking), 10))
}

func TestBound_PairIterator(t *testing.T) {
	assert.Equal(t, []any{"a", "b"}, Bound(slices.All([]string{"a", "b", "c"}), 2))
}

func TestBound_NonIterable(t *testing.T) {
	assert.Equal(t, []any{"abc"}, Bound("abc", 10))
	assert.Equal(t, []any{}, Bound("", 10))
	assert.Equal(t, []any{}, Bound(0, 10))
	assert.Equal(t, []any{}, Bound(nil, 10))
	assert.Equal(t, []any{}, Bound([]int{1, 2}, 0))
	assert.Equal(t, []any{}, Bound(map[string]any{}, 10))
}

func TestExtractPage_EmptyMapItems(t *testing.T) {
	type reply struct {
		Assets map[string]any `json:"assets"`
	}

	_, items := ExtractPage(reply{Assets: map[string]any{}}, Options{ItemsField: "assets"})
	assert.Empty(t, items)
}

func TestEffectiveLimit(t *testing.T) {
	assert.Equal(t, 50, EffectiveLimit(0, 50, 100))
	assert.Equal(t, 20, EffectiveLimit(20, 50, 100))
	assert.Equal(t, 100, EffectiveLimit(500, 50, 100))
	assert.Equal(t, 100, EffectiveLimit(-1, 0, 100))
	assert.Equal(t, 30, EffectiveLimit(0, 50, 30))
	assert.Equal(t, MaxPageSize, EffectiveLimit(0, 0, 0))
}

func TestPage_MarshalJSON(t *testing.T) {
	token := "abc"
	page := NewPage("holders", &token, []any{map[string]any{"address": "0x1"}})

	b, err := json.Marshal(page)
	require.NoError(t, err)
	assert.JSONEq(t, `{"holders":[{"address":"0x1"}],"next_page_token":"abc"}`, string(b))

	b, err = json.Marshal(NewPage("logs", nil, nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"logs":[],"next_page_token":""}`, string(b))

	b, err = json.Marshal(EmptyPage("blocks"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"blocks":[],"next_page_token":""}`, string(b))
}
