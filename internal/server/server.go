package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/rs/zerolog"

	"web3-mcp/internal/mcp"
	"web3-mcp/internal/session"
	"web3-mcp/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

// Config contains the HTTP server configuration.
type Config struct {
	MCP            mcp.Config
	AllowedOrigins []string
}

// Deps are the collaborators the router serves.
type Deps struct {
	Registry mcp.Registry

	// Sessions may be nil for a stateless endpoint.
	Sessions session.SessionManager

	// Metrics may be nil to disable /metrics.
	Metrics *telemetry.Metrics
	Logger  zerolog.Logger
}

// New creates the HTTP handler serving MCP, health, metrics and session
// endpoints.
func New(cfg Config, deps Deps) http.Handler {
	logger := deps.Logger.With().Str("component", "http").Logger()
	mcpHandler := mcp.NewHandler(deps.Registry, deps.Sessions, cfg.MCP, deps.Logger)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(logger))
	if deps.Metrics != nil {
		r.Use(telemetry.HTTPMetricsMiddleware(deps.Metrics))
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", session.HeaderName, "Mcp-Protocol-Version", "Last-Event-ID"},
		ExposedHeaders:   []string{session.HeaderName, "Content-Type", "Cache-Control"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"status": "ok",
			"tools":  len(deps.Registry.Definitions()),
		}
		if deps.Sessions != nil {
			if active, err := deps.Sessions.GetActiveSessionCount(r.Context()); err == nil {
				body["sessions"] = active
			}
		}
		render.JSON(w, r, body)
	})

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	if deps.Sessions != nil {
		r.With(session.NewSessionMiddleware(deps.Sessions, deps.Logger).Handler).Handle("/mcp", mcpHandler)
		r.Mount("/sessions", session.NewSessionHandler(deps.Sessions, deps.Logger).Routes())
	} else {
		r.Handle("/mcp", mcpHandler)
	}

	return r
}

// accessLog logs one line per request.
func accessLog(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("HTTP request")
		})
	}
}

// ListenAndServe runs srv until ctx is done, then shuts it down gracefully.
func ListenAndServe(ctx context.Context, srv *http.Server, logger zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("Starting server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
