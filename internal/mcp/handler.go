package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/rs/zerolog"

	"web3-mcp/internal/jsonrpc"
	"web3-mcp/internal/session"
	"web3-mcp/internal/tools"
)

const maxBodyBytes = 1 << 20

// Registry is what the protocol layer needs from a tool registry.
type Registry interface {
	Definitions() []tools.Definition
	Resources() []tools.ResourceDefinition
	Call(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error)
	Read(ctx context.Context, uri string) (json.RawMessage, error)
}

// Config describes the server to clients.
type Config struct {
	Name         string
	Version      string
	Instructions string

	// RequireSession rejects requests other than initialize and ping that
	// carry no session.
	RequireSession bool
}

// Handler serves MCP over streamable HTTP: one JSON-RPC message per POST,
// answered with a JSON body or a single server-sent event.
type Handler struct {
	registry Registry
	sessions session.SessionManager
	config   Config
	logger   zerolog.Logger
}

// NewHandler creates an MCP handler. A nil session manager makes the
// endpoint stateless.
func NewHandler(registry Registry, sessions session.SessionManager, config Config, logger zerolog.Logger) *Handler {
	return &Handler{
		registry: registry,
		sessions: sessions,
		config:   config,
		logger:   logger.With().Str("component", "mcp_handler").Logger(),
	}
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		// No server-initiated stream is offered.
		w.Header().Set("Allow", "POST, DELETE")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeResponse(w, r, http.StatusBadRequest,
			jsonrpc.NewErrorResponse(nil, jsonrpc.NewError(jsonrpc.ParseError, "Request body too large or unreadable", nil)))
		return
	}

	msg, err := jsonrpc.ParseMessage(body)
	if err != nil {
		h.logger.Debug().Err(err).Msg("Rejected malformed message")
		h.writeResponse(w, r, http.StatusBadRequest, jsonrpc.NewErrorResponse(nil, err))
		return
	}

	switch msg := msg.(type) {
	case *jsonrpc.Notification:
		h.logger.Debug().
			Str("method", msg.Method).
			Msg("Notification received")
		w.WriteHeader(http.StatusAccepted)

	case *jsonrpc.RawResponse:
		// Nothing is ever requested from the client.
		w.WriteHeader(http.StatusAccepted)

	case *jsonrpc.Request:
		if h.needsSession(msg.Method) {
			if _, ok := session.FromContext(r.Context()); !ok {
				h.writeResponse(w, r, http.StatusBadRequest, jsonrpc.NewErrorResponse(msg.ID,
					jsonrpc.NewError(jsonrpc.InvalidRequest, "Bad Request: missing "+session.HeaderName+" header", nil)))
				return
			}
		}

		var result any
		if msg.Method == MethodInitialize {
			result, err = h.initialize(w, r, msg)
		} else {
			result, err = h.dispatch(r.Context(), msg)
		}

		if err != nil {
			h.writeResponse(w, r, http.StatusOK, jsonrpc.NewErrorResponse(msg.ID, err))
			return
		}
		h.writeResponse(w, r, http.StatusOK, jsonrpc.NewResult(msg.ID, result))
	}
}

func (h *Handler) needsSession(method string) bool {
	if h.sessions == nil || !h.config.RequireSession {
		return false
	}
	return method != MethodInitialize && method != MethodPing
}

// handleDelete terminates the session named by the request header.
func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		http.Error(w, "Sessions are not enabled", http.StatusMethodNotAllowed)
		return
	}

	sess, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "Missing "+session.HeaderName+" header", http.StatusBadRequest)
		return
	}

	if err := h.sessions.DeleteSession(r.Context(), sess.ID); err != nil {
		_ = render.Render(w, r, session.NewErrResponse(err, sess.ID))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) initialize(w http.ResponseWriter, r *http.Request, req *jsonrpc.Request) (any, error) {
	var params InitializeParams
	if err := req.DecodeParams(&params); err != nil {
		return nil, err
	}

	version := negotiateVersion(params.ProtocolVersion)

	if h.sessions != nil {
		sess, err := h.sessions.CreateSession(r.Context(), session.ClientInfo{
			Name:       params.ClientInfo.Name,
			Version:    params.ClientInfo.Version,
			RemoteAddr: r.RemoteAddr,
			UserAgent:  r.UserAgent(),
		}, version)
		if err != nil {
			return nil, jsonrpc.NewError(jsonrpc.InternalError, "Failed to create session", session.ErrorCode(err))
		}
		w.Header().Set(session.HeaderName, sess.ID)
	}

	h.logger.Info().
		Str("client", params.ClientInfo.Name).
		Str("client_version", params.ClientInfo.Version).
		Str("requested_version", params.ProtocolVersion).
		Str("protocol_version", version).
		Msg("Client initialized")

	return &InitializeResult{
		ProtocolVersion: version,
		Capabilities: ServerCapabilities{
			Tools:     &ListChangedCapability{},
			Resources: &ListChangedCapability{},
		},
		ServerInfo:   Implementation{Name: h.config.Name, Version: h.config.Version},
		Instructions: h.config.Instructions,
	}, nil
}

// dispatch answers every request but initialize.
func (h *Handler) dispatch(ctx context.Context, req *jsonrpc.Request) (any, error) {
	switch req.Method {
	case MethodPing:
		return struct{}{}, nil

	case MethodToolsList:
		return &ListToolsResult{Tools: h.registry.Definitions()}, nil

	case MethodToolsCall:
		var params CallToolParams
		if err := req.DecodeParams(&params); err != nil {
			return nil, err
		}
		if params.Name == "" {
			return nil, jsonrpc.NewError(jsonrpc.InvalidParams, "Missing tool name", nil)
		}
		return h.callTool(ctx, params)

	case MethodResourcesList:
		return &ListResourcesResult{Resources: h.registry.Resources()}, nil

	case MethodResourcesRead:
		var params ReadResourceParams
		if err := req.DecodeParams(&params); err != nil {
			return nil, err
		}
		return h.readResource(ctx, params.URI)

	default:
		return nil, jsonrpc.NewError(jsonrpc.MethodNotFound, "Method not found", req.Method)
	}
}

func (h *Handler) callTool(ctx context.Context, params CallToolParams) (any, error) {
	out, err := h.registry.Call(ctx, params.Name, params.Arguments)
	if err == nil {
		return toolResult(out), nil
	}

	var toolErr *tools.Error
	if errors.As(err, &toolErr) && toolErr.Code == tools.ErrToolNotFound {
		return nil, jsonrpc.NewError(jsonrpc.InvalidParams, fmt.Sprintf("Unknown tool: %s", params.Name), nil)
	}

	h.logger.Debug().
		Err(err).
		Str("tool", params.Name).
		Msg("Tool returned an error")
	return toolError(err), nil
}

func (h *Handler) readResource(ctx context.Context, uri string) (any, error) {
	content, err := h.registry.Read(ctx, uri)
	if err != nil {
		var toolErr *tools.Error
		if errors.As(err, &toolErr) && toolErr.Code == tools.ErrResourceNotFound {
			return nil, jsonrpc.NewError(ResourceNotFound, "Resource not found", map[string]string{"uri": uri})
		}
		return nil, jsonrpc.NewError(jsonrpc.InternalError, err.Error(), nil)
	}

	mimeType := ""
	for _, def := range h.registry.Resources() {
		if def.URI == uri {
			mimeType = def.MIMEType
		}
	}
	return &ReadResourceResult{Contents: []ResourceContents{{
		URI:      uri,
		MIMEType: mimeType,
		Text:     string(content),
	}}}, nil
}

// writeResponse answers with JSON, or with one SSE event when the client
// only accepts event streams.
func (h *Handler) writeResponse(w http.ResponseWriter, r *http.Request, status int, resp *jsonrpc.Response) {
	if !wantsEventStream(r) {
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(status)
	fmt.Fprintf(w, "event: message\ndata: %s\n\n", data)
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

func wantsEventStream(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/event-stream") && !strings.Contains(accept, "application/json")
}
