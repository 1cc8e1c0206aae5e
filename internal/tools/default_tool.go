package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// DefaultTool carries the name, description and input schema shared by every
// tool, and validates arguments against the schema.
type DefaultTool struct {
	name        string
	description string
	schema      *jsonschema.Schema
	resolved    *jsonschema.Resolved
}

// NewDefaultTool creates a DefaultTool. A nil schema accepts any object.
func NewDefaultTool(name, description string, schema *jsonschema.Schema) (*DefaultTool, error) {
	if schema == nil {
		schema = &jsonschema.Schema{Type: "object"}
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve input schema of tool %s: %w", name, err)
	}
	return &DefaultTool{
		name:        name,
		description: description,
		schema:      schema,
		resolved:    resolved,
	}, nil
}

// Name returns the name of the tool.
func (t *DefaultTool) Name() string {
	return t.name
}

// Definition returns the tool definition in MCP format.
func (t *DefaultTool) Definition() Definition {
	return Definition{
		Name:        t.name,
		Description: t.description,
		InputSchema: t.schema,
		Annotations: &Annotations{
			Title:         fmt.Sprintf("%s Tool", t.name),
			ReadOnlyHint:  true,
			OpenWorldHint: true,
		},
	}
}

// Call is the default implementation of the Tool interface.
// Tools should override this method with their specific implementation.
func (t *DefaultTool) Call(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
	return nil, fmt.Errorf("method not implemented for tool: %s", t.name)
}

// Validate checks args against the input schema. Empty arguments count as
// an empty object.
func (t *DefaultTool) Validate(args json.RawMessage) error {
	args = bytes.TrimSpace(args)
	if len(args) == 0 || bytes.Equal(args, []byte("null")) {
		args = []byte("{}")
	}
	var instance any
	if err := json.Unmarshal(args, &instance); err != nil {
		return NewInvalidArgumentsError(t.name, err)
	}
	if err := t.resolved.Validate(instance); err != nil {
		return NewInvalidArgumentsError(t.name, err)
	}
	return nil
}
