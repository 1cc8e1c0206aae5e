package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"web3-mcp/internal/ankr"
	"web3-mcp/internal/api"
	"web3-mcp/internal/config"
	"web3-mcp/internal/mcp"
	"web3-mcp/internal/server"
	"web3-mcp/internal/session"
	"web3-mcp/internal/telemetry"
	"web3-mcp/internal/tools"
	"web3-mcp/internal/tools/web3"
	"web3-mcp/internal/workerpool"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const instructions = "Query multi-chain NFT, token and blockchain data through the Ankr Advanced API. " +
	"List tools return a next_page_token; pass it back as page_token to fetch the next page."

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file")
	envFile := flag.String("env", ".env", "Path to a .env file loaded when present")
	transport := flag.String("transport", "", "Transport to serve: stdio or http (overrides the configuration)")
	addr := flag.String("addr", "", "HTTP listen address (overrides the configuration)")
	flag.Parse()

	// Logs always go to stderr, stdout carries the stdio transport
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().
		Timestamp().
		Logger()

	cfg, err := config.Load(config.Options{ConfigPath: *configPath, DotEnvPath: *envFile})
	if err == nil && (*transport != "" || *addr != "") {
		if *transport != "" {
			cfg.Transport = *transport
		}
		if *addr != "" {
			cfg.HTTP.Addr = *addr
		}
		err = cfg.Validate()
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	zerolog.SetGlobalLevel(cfg.Level())
	logger.Info().
		Str("version", version).
		Str("transport", cfg.Transport).
		Str("endpoint", cfg.Upstream.Endpoint).
		Msg("Starting web3 MCP server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("Server failed")
	}
	logger.Info().Msg("Server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := telemetry.NewMetrics(reg)

	shutdownTracing, err := telemetry.InitTracing(telemetry.TracingConfig{
		ServiceName:    "web3-mcp",
		ServiceVersion: version,
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Failed to shut down tracing")
		}
	}()

	client, err := ankr.NewClient(ankr.Config{
		Endpoint:  cfg.Upstream.Endpoint,
		APIKey:    cfg.Upstream.APIKey,
		Timeout:   cfg.Upstream.Timeout,
		RateLimit: cfg.Upstream.RateLimit,
		Burst:     cfg.Upstream.Burst,
		Observer:  metrics,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	pool := workerpool.New(cfg.WorkerPoolSize, workerpool.WithObserver(metrics.SetWorkerPoolInFlight))
	svc := api.New(api.FromAnkr(client), api.Options{
		Pool:     pool,
		Logger:   logger,
		Observer: metrics,
	})

	registry := tools.NewRegistry()
	if err := web3.Register(registry, svc); err != nil {
		return err
	}
	toolRegistry := telemetry.NewToolRegistryWrapper(registry, metrics, logger)

	mcpConfig := mcp.Config{
		Name:           "web3-mcp",
		Version:        version,
		Instructions:   instructions,
		RequireSession: cfg.HTTP.RequireSession,
	}

	g, ctx := errgroup.WithContext(ctx)

	switch cfg.Transport {
	case config.TransportHTTP:
		store := session.NewMemoryStore(logger)
		defer store.Close()

		manager := session.NewDefaultSessionManager(store, session.ManagerConfig{
			SessionTimeout: cfg.HTTP.SessionTimeout,
			OnExpire:       telemetry.ExpiryRecorder(metrics),
		}, logger)
		sessions := telemetry.NewSessionManagerWrapper(manager, metrics)
		cleanup := session.NewCleanupService(sessions, session.CleanupConfig{CleanupInterval: cfg.HTTP.CleanupInterval}, logger)
		collector := telemetry.NewSystemMetricsCollector(metrics, logger, 15*time.Second)

		handler := server.New(server.Config{
			MCP:            mcpConfig,
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
		}, server.Deps{
			Registry: toolRegistry,
			Sessions: sessions,
			Metrics:  metrics,
			Logger:   logger,
		})
		srv := &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		g.Go(func() error { return cleanup.Run(ctx) })
		g.Go(func() error { return collector.Run(ctx) })
		g.Go(func() error { return server.ListenAndServe(ctx, srv, logger) })

	default:
		sdkServer := mcp.NewSDKServer(toolRegistry, mcpConfig, logger)
		g.Go(func() error { return mcp.ServeStdio(ctx, sdkServer) })
	}

	return g.Wait()
}
