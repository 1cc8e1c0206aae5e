package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry manages the collection of available tools and resources.
type Registry struct {
	tools     map[string]Tool
	resources map[string]Resource
	mu        sync.RWMutex
}

// NewRegistry creates a new tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools:     make(map[string]Tool),
		resources: make(map[string]Resource),
	}
}

// Register adds a new tool to the registry.
func (r *Registry) Register(tool Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tools[tool.Name()] = tool
}

// RegisterResource adds a resource, keyed by its URI.
func (r *Registry) RegisterResource(resource Resource) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.resources[resource.Definition().URI] = resource
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, exists := r.tools[name]
	return tool, exists
}

// List returns all registered tools ordered by name.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		tools = append(tools, tool)
	}
	slices.SortFunc(tools, func(a, b Tool) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return tools
}

// Definitions returns the definitions of all tools ordered by name.
func (r *Registry) Definitions() []Definition {
	tools := r.List()
	defs := make([]Definition, len(tools))
	for i, tool := range tools {
		defs[i] = tool.Definition()
	}
	return defs
}

// Resources returns the definitions of all resources ordered by URI.
func (r *Registry) Resources() []ResourceDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]ResourceDefinition, 0, len(r.resources))
	for _, res := range r.resources {
		defs = append(defs, res.Definition())
	}
	slices.SortFunc(defs, func(a, b ResourceDefinition) int {
		return strings.Compare(a.URI, b.URI)
	})
	return defs
}

// Call executes a tool with the given arguments and context.
func (r *Registry) Call(ctx context.Context, toolName string, args json.RawMessage) (json.RawMessage, error) {
	tool, exists := r.Get(toolName)
	if !exists {
		return nil, &Error{Code: ErrToolNotFound, Message: fmt.Sprintf("Tool not found: %s", toolName)}
	}

	return tool.Call(ctx, args)
}

// Read returns the content of the resource at uri.
func (r *Registry) Read(ctx context.Context, uri string) (json.RawMessage, error) {
	r.mu.RLock()
	res, exists := r.resources[uri]
	r.mu.RUnlock()

	if !exists {
		return nil, &Error{Code: ErrResourceNotFound, Message: fmt.Sprintf("Resource not found: %s", uri)}
	}
	return res.Read(ctx)
}

// Error codes for registry operations
const (
	ErrToolNotFound     = "tool_not_found"
	ErrResourceNotFound = "resource_not_found"
	ErrInvalidArguments = "invalid_arguments"
)

// Error represents a tool execution error.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewInvalidArgumentsError reports arguments rejected by a tool's schema.
func NewInvalidArgumentsError(tool string, cause error) *Error {
	return &Error{
		Code:    ErrInvalidArguments,
		Message: fmt.Sprintf("invalid arguments for tool %s: %v", tool, cause),
		Cause:   cause,
	}
}
