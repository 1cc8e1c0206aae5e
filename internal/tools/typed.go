package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// Args is the argument envelope of a typed tool: {"request": {...}}.
type Args[T any] struct {
	Request T `json:"request"`
}

// TypedTool decodes its arguments into T and hands them to a function.
type TypedTool[T any] struct {
	*DefaultTool
	fn func(context.Context, *T) (any, error)
}

// New builds a tool whose input schema is derived from Args[T].
func New[T any](name, description string, fn func(context.Context, *T) (any, error)) (*TypedTool[T], error) {
	schema, err := jsonschema.For[Args[T]](nil)
	if err != nil {
		return nil, fmt.Errorf("infer input schema of tool %s: %w", name, err)
	}
	base, err := NewDefaultTool(name, description, schema)
	if err != nil {
		return nil, err
	}
	return &TypedTool[T]{DefaultTool: base, fn: fn}, nil
}

// Call validates args, decodes the request and returns the JSON encoding of
// whatever the function produced.
func (t *TypedTool[T]) Call(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
	if err := t.Validate(args); err != nil {
		return nil, err
	}
	var in Args[T]
	if err := json.Unmarshal(args, &in); err != nil {
		return nil, NewInvalidArgumentsError(t.Name(), err)
	}
	out, err := t.fn(ctx, &in.Request)
	if err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

// FuncTool is a tool without arguments.
type FuncTool struct {
	*DefaultTool
	fn func(context.Context) (any, error)
}

// NewFunc builds a tool that takes no arguments.
func NewFunc(name, description string, fn func(context.Context) (any, error)) (*FuncTool, error) {
	base, err := NewDefaultTool(name, description, &jsonschema.Schema{
		Type:       "object",
		Properties: map[string]*jsonschema.Schema{},
	})
	if err != nil {
		return nil, err
	}
	return &FuncTool{DefaultTool: base, fn: fn}, nil
}

func (t *FuncTool) Call(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
	if err := t.Validate(args); err != nil {
		return nil, err
	}
	out, err := t.fn(ctx)
	if err != nil {
		return nil, err
	}
	return json.Marshal(out)
}
