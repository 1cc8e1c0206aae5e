package mcp

import (
	"context"
	"encoding/json"
	"errors"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"web3-mcp/internal/tools"
)

// NewSDKServer bridges the registry onto an official MCP SDK server, which
// owns the protocol when serving over stdio.
func NewSDKServer(registry Registry, config Config, logger zerolog.Logger) *mcpsdk.Server {
	logger = logger.With().Str("component", "mcp_stdio").Logger()

	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    config.Name,
		Version: config.Version,
	}, &mcpsdk.ServerOptions{
		Instructions: config.Instructions,
	})

	for _, def := range registry.Definitions() {
		tool := &mcpsdk.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}
		if def.Annotations != nil {
			tool.Annotations = &mcpsdk.ToolAnnotations{
				Title:        def.Annotations.Title,
				ReadOnlyHint: def.Annotations.ReadOnlyHint,
			}
		}
		server.AddTool(tool, sdkToolHandler(registry, def.Name, logger))
	}

	for _, def := range registry.Resources() {
		server.AddResource(&mcpsdk.Resource{
			URI:         def.URI,
			Name:        def.Name,
			Description: def.Description,
			MIMEType:    def.MIMEType,
		}, sdkResourceHandler(registry, def))
	}

	return server
}

func sdkToolHandler(registry Registry, name string, logger zerolog.Logger) mcpsdk.ToolHandler {
	return func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
		out, err := registry.Call(ctx, name, req.Params.Arguments)
		if err != nil {
			logger.Debug().
				Err(err).
				Str("tool", name).
				Msg("Tool returned an error")
			return &mcpsdk.CallToolResult{
				Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: err.Error()}},
				IsError: true,
			}, nil
		}

		result := &mcpsdk.CallToolResult{
			Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(out)}},
		}
		if isObject(out) {
			result.StructuredContent = json.RawMessage(out)
		}
		return result, nil
	}
}

func sdkResourceHandler(registry Registry, def tools.ResourceDefinition) mcpsdk.ResourceHandler {
	return func(ctx context.Context, req *mcpsdk.ReadResourceRequest) (*mcpsdk.ReadResourceResult, error) {
		content, err := registry.Read(ctx, req.Params.URI)
		if err != nil {
			var toolErr *tools.Error
			if errors.As(err, &toolErr) && toolErr.Code == tools.ErrResourceNotFound {
				return nil, mcpsdk.ResourceNotFoundError(req.Params.URI)
			}
			return nil, err
		}
		return &mcpsdk.ReadResourceResult{
			Contents: []*mcpsdk.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: def.MIMEType,
				Text:     string(content),
			}},
		}, nil
	}
}

// ServeStdio runs server on stdin and stdout until ctx is done or the client
// disconnects.
func ServeStdio(ctx context.Context, server *mcpsdk.Server) error {
	err := server.Run(ctx, &mcpsdk.StdioTransport{})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
