package normalize

import (
	"encoding/json"
)

// TokenField is the key every page publishes its continuation token under.
const TokenField = "next_page_token"

// Page is the canonical paginated response: a named list of items plus a
// continuation token. It marshals as {<Field>: [...], "next_page_token": "..."}.
type Page struct {
	Field         string
	Items         []any
	NextPageToken string
}

// NewPage builds a page from the output of ExtractPage. A nil token becomes "".
func NewPage(field string, token *string, items []any) *Page {
	p := &Page{Field: field, Items: items}
	if token != nil {
		p.NextPageToken = *token
	}
	if p.Items == nil {
		p.Items = []any{}
	}
	return p
}

// EmptyPage is the page returned when nothing could be fetched.
func EmptyPage(field string) *Page {
	return &Page{Field: field, Items: []any{}}
}

// Len returns the number of items on the page.
func (p *Page) Len() int {
	return len(p.Items)
}

// Map returns the page in its wire form.
func (p *Page) Map() map[string]any {
	items := p.Items
	if items == nil {
		items = []any{}
	}
	return map[string]any{
		p.Field:    items,
		TokenField: p.NextPageToken,
	}
}

func (p *Page) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Map())
}
