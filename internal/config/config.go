// Package config loads the server configuration from defaults, an optional
// YAML file, a .env file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"web3-mcp/internal/ankr"
	"web3-mcp/internal/workerpool"
)

// Transports
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// CredentialEnv lists the variables searched for the Ankr API key, in order.
var CredentialEnv = []string{"ANKR_PRIVATE_KEY", "ANKR_API_KEY", "DOTENV_PRIVATE_KEY_DEVIN"}

// ErrMissingCredential is returned when no API key is found.
var ErrMissingCredential = fmt.Errorf("no Ankr API key found: set one of %s", strings.Join(CredentialEnv, ", "))

// Config contains the server configuration
type Config struct {
	Transport string `yaml:"transport" env:"WEB3_MCP_TRANSPORT"`
	LogLevel  string `yaml:"log_level" env:"WEB3_MCP_LOG_LEVEL"`

	HTTP     HTTPConfig     `yaml:"http"`
	Upstream UpstreamConfig `yaml:"upstream"`

	// WorkerPoolSize bounds the upstream calls in flight.
	WorkerPoolSize int `yaml:"worker_pool_size" env:"WEB3_MCP_WORKER_POOL_SIZE"`
}

// HTTPConfig configures the streamable HTTP transport
type HTTPConfig struct {
	Addr            string        `yaml:"addr" env:"WEB3_MCP_HTTP_ADDR"`
	SessionTimeout  time.Duration `yaml:"session_timeout" env:"WEB3_MCP_SESSION_TIMEOUT"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"WEB3_MCP_CLEANUP_INTERVAL"`
	RequireSession  bool          `yaml:"require_session" env:"WEB3_MCP_REQUIRE_SESSION"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

// UpstreamConfig configures the Ankr Advanced API client
type UpstreamConfig struct {
	Endpoint  string        `yaml:"endpoint" env:"ANKR_ENDPOINT"`
	Timeout   time.Duration `yaml:"timeout" env:"ANKR_TIMEOUT"`
	RateLimit float64       `yaml:"rate_limit" env:"ANKR_RATE_LIMIT"`
	Burst     int           `yaml:"burst" env:"ANKR_BURST"`

	// APIKey only ever comes from the environment.
	APIKey string `yaml:"-"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Transport: TransportStdio,
		LogLevel:  "info",
		HTTP: HTTPConfig{
			Addr:            ":8080",
			SessionTimeout:  time.Hour,
			CleanupInterval: 5 * time.Minute,
			RequireSession:  true,
			AllowedOrigins:  []string{"*"},
		},
		Upstream: UpstreamConfig{
			Endpoint: ankr.DefaultEndpoint,
			Timeout:  30 * time.Second,
			Burst:    1,
		},
		WorkerPoolSize: workerpool.DefaultSize,
	}
}

// Options tells Load where to look.
type Options struct {
	// ConfigPath is an optional YAML file.
	ConfigPath string

	// DotEnvPath is loaded when it exists. Variables already set win.
	DotEnvPath string
}

// Load builds the configuration and validates it. A missing API key yields
// an error wrapping ErrMissingCredential.
func Load(opts Options) (*Config, error) {
	cfg := DefaultConfig()

	if opts.ConfigPath != "" {
		f, err := os.Open(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("config: open %q: %w", opts.ConfigPath, err)
		}
		defer f.Close()

		if err := decodeYAML(f, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", opts.ConfigPath, err)
		}
	}

	if opts.DotEnvPath != "" {
		if err := godotenv.Load(opts.DotEnvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %q: %w", opts.DotEnvPath, err)
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeYAML overlays the YAML document in r onto cfg. Unknown keys are
// rejected to catch typos.
func decodeYAML(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overlays environment variables onto cfg and resolves the API key.
func ApplyEnv(cfg *Config) error {
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("config: decode environment: %w", err)
	}
	cfg.Upstream.APIKey = lookupCredential()
	return nil
}

func lookupCredential() string {
	for _, name := range CredentialEnv {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// Validate checks that cfg contains a coherent set of values and reports
// every problem found.
func (c *Config) Validate() error {
	var errs []error

	if c.Upstream.APIKey == "" {
		errs = append(errs, ErrMissingCredential)
	}
	if !slices.Contains([]string{TransportStdio, TransportHTTP}, c.Transport) {
		errs = append(errs, fmt.Errorf("transport %q is invalid; valid values: %s, %s", c.Transport, TransportStdio, TransportHTTP))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level %q is invalid", c.LogLevel))
	}

	if c.Transport == TransportHTTP {
		if c.HTTP.Addr == "" {
			errs = append(errs, errors.New("http.addr is required for the http transport"))
		}
		if c.HTTP.SessionTimeout <= 0 {
			errs = append(errs, errors.New("http.session_timeout must be positive"))
		}
		if c.HTTP.CleanupInterval <= 0 {
			errs = append(errs, errors.New("http.cleanup_interval must be positive"))
		}
	}

	if c.Upstream.Timeout <= 0 {
		errs = append(errs, errors.New("upstream.timeout must be positive"))
	}
	if c.Upstream.RateLimit < 0 {
		errs = append(errs, errors.New("upstream.rate_limit must not be negative"))
	}
	if c.Upstream.RateLimit > 0 && c.Upstream.Burst < 1 {
		errs = append(errs, errors.New("upstream.burst must be at least 1 when rate_limit is set"))
	}
	if c.WorkerPoolSize <= 0 {
		errs = append(errs, errors.New("worker_pool_size must be positive"))
	}

	return errors.Join(errs...)
}

// Level returns the configured zerolog level, or info when it is unset.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
