// Package tools defines the callable tools and readable resources a server
// exposes, and the registry that dispatches calls to them.
package tools

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// Tool is the interface that all tools must implement.
type Tool interface {
	// Name returns the name of the tool.
	Name() string

	// Definition describes the tool for listing.
	Definition() Definition

	// Call executes the tool with the given arguments and context.
	// The arguments and return value are JSON-encoded data.
	Call(ctx context.Context, args json.RawMessage) (json.RawMessage, error)
}

// Definition is how a tool is advertised to clients.
type Definition struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
	Annotations *Annotations       `json:"annotations,omitempty"`
}

// Annotations are hints about a tool's behavior.
type Annotations struct {
	Title         string `json:"title,omitempty"`
	ReadOnlyHint  bool   `json:"readOnlyHint"`
	OpenWorldHint bool   `json:"openWorldHint"`
}

// Resource is a read-only document addressed by URI.
type Resource interface {
	Definition() ResourceDefinition
	Read(ctx context.Context) (json.RawMessage, error)
}

type ResourceDefinition struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MIMEType    string `json:"mimeType,omitempty"`
}

// StaticResource serves a fixed value as JSON.
type StaticResource struct {
	def  ResourceDefinition
	read func() any
}

// NewStaticResource creates a JSON resource whose content is produced by read.
func NewStaticResource(uri, name, description string, read func() any) *StaticResource {
	return &StaticResource{
		def: ResourceDefinition{
			URI:         uri,
			Name:        name,
			Description: description,
			MIMEType:    "application/json",
		},
		read: read,
	}
}

func (r *StaticResource) Definition() ResourceDefinition {
	return r.def
}

func (r *StaticResource) Read(context.Context) (json.RawMessage, error) {
	return json.Marshal(r.read())
}
