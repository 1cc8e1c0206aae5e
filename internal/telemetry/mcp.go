package telemetry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"web3-mcp/internal/tools"
)

// ToolRegistryWrapper wraps a tool registry to add telemetry
type ToolRegistryWrapper struct {
	*tools.Registry
	metrics *Metrics
	logger  zerolog.Logger
}

// NewToolRegistryWrapper creates a new telemetry-aware tool registry wrapper
func NewToolRegistryWrapper(registry *tools.Registry, metrics *Metrics, logger zerolog.Logger) *ToolRegistryWrapper {
	return &ToolRegistryWrapper{
		Registry: registry,
		metrics:  metrics,
		logger:   logger.With().Str("component", "tools").Logger(),
	}
}

// Call wraps the registry Call in a span and records its duration and status
func (w *ToolRegistryWrapper) Call(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error) {
	ctx, span := StartSpan(ctx, "tools.call",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attribute.String("mcp.tool.name", name)),
	)
	defer span.End()

	start := time.Now()
	result, err := w.Registry.Call(ctx, name, args)
	duration := time.Since(start)

	logger := Logger(ctx, w.logger)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn().
			Err(err).
			Str("tool", name).
			Dur("duration", duration).
			Msg("Tool call failed")
	} else {
		span.SetAttributes(attribute.Int("mcp.tool.result_bytes", len(result)))
		logger.Debug().
			Str("tool", name).
			Dur("duration", duration).
			Msg("Tool call completed")
	}

	w.metrics.RecordToolExecution(name, status(err), duration)
	return result, err
}
