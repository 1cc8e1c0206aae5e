package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range append([]string{
		"WEB3_MCP_TRANSPORT", "WEB3_MCP_LOG_LEVEL", "WEB3_MCP_WORKER_POOL_SIZE",
		"WEB3_MCP_HTTP_ADDR", "WEB3_MCP_SESSION_TIMEOUT", "WEB3_MCP_CLEANUP_INTERVAL", "WEB3_MCP_REQUIRE_SESSION",
		"ANKR_ENDPOINT", "ANKR_TIMEOUT", "ANKR_RATE_LIMIT", "ANKR_BURST",
	}, CredentialEnv...) {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Hour, cfg.HTTP.SessionTimeout)
	assert.Equal(t, 5*time.Minute, cfg.HTTP.CleanupInterval)
	assert.True(t, cfg.HTTP.RequireSession)
	assert.Equal(t, "https://rpc.ankr.com/multichain", cfg.Upstream.Endpoint)
	assert.Positive(t, cfg.Upstream.Timeout)
	assert.Positive(t, cfg.WorkerPoolSize)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestLoadMissingCredential(t *testing.T) {
	clearEnv(t)

	_, err := Load(Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingCredential))
}

func TestCredentialPrecedence(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "private key", env: map[string]string{"ANKR_PRIVATE_KEY": "a", "ANKR_API_KEY": "b"}, want: "a"},
		{name: "api key", env: map[string]string{"ANKR_API_KEY": "b", "DOTENV_PRIVATE_KEY_DEVIN": "c"}, want: "b"},
		{name: "devin key", env: map[string]string{"DOTENV_PRIVATE_KEY_DEVIN": "c"}, want: "c"},
		{name: "blank skipped", env: map[string]string{"ANKR_PRIVATE_KEY": "  ", "ANKR_API_KEY": "b"}, want: "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Upstream.APIKey)
		})
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANKR_API_KEY", "key")
	t.Setenv("ANKR_TIMEOUT", "5s")

	path := writeFile(t, "config.yaml", `
transport: http
log_level: debug
worker_pool_size: 4
http:
  addr: "127.0.0.1:9090"
  session_timeout: 10m
  require_session: false
upstream:
  timeout: 45s
  rate_limit: 20
  burst: 5
`)

	cfg, err := Load(Options{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, TransportHTTP, cfg.Transport)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.Equal(t, 4, cfg.WorkerPoolSize)
	assert.Equal(t, "127.0.0.1:9090", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Minute, cfg.HTTP.SessionTimeout)
	assert.Equal(t, 5*time.Minute, cfg.HTTP.CleanupInterval, "unset keys keep their default")
	assert.False(t, cfg.HTTP.RequireSession)
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout, "environment overrides the file")
	assert.Equal(t, 20.0, cfg.Upstream.RateLimit)
	assert.Equal(t, 5, cfg.Upstream.Burst)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANKR_API_KEY", "key")

	path := writeFile(t, "config.yaml", "transprot: http\n")
	_, err := Load(Options{ConfigPath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transprot")
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, ".env", "ANKR_API_KEY=from-dotenv\nWEB3_MCP_TRANSPORT=http\n")
	t.Cleanup(func() {
		os.Unsetenv("ANKR_API_KEY")
		os.Unsetenv("WEB3_MCP_TRANSPORT")
	})

	cfg, err := Load(Options{DotEnvPath: path})
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Upstream.APIKey)
	assert.Equal(t, TransportHTTP, cfg.Transport)

	// A missing .env file is not an error
	_, err = Load(Options{DotEnvPath: filepath.Join(t.TempDir(), "missing.env")})
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.Upstream.APIKey = "key"
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{name: "transport", mutate: func(c *Config) { c.Transport = "grpc" }, want: `transport "grpc" is invalid`},
		{name: "log level", mutate: func(c *Config) { c.LogLevel = "loud" }, want: `log_level "loud" is invalid`},
		{name: "http addr", mutate: func(c *Config) { c.Transport = TransportHTTP; c.HTTP.Addr = "" }, want: "http.addr"},
		{name: "session timeout", mutate: func(c *Config) { c.Transport = TransportHTTP; c.HTTP.SessionTimeout = 0 }, want: "http.session_timeout"},
		{name: "upstream timeout", mutate: func(c *Config) { c.Upstream.Timeout = 0 }, want: "upstream.timeout"},
		{name: "rate limit", mutate: func(c *Config) { c.Upstream.RateLimit = -1 }, want: "upstream.rate_limit"},
		{name: "burst", mutate: func(c *Config) { c.Upstream.RateLimit = 10; c.Upstream.Burst = 0 }, want: "upstream.burst"},
		{name: "pool", mutate: func(c *Config) { c.WorkerPoolSize = 0 }, want: "worker_pool_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	// Every problem is reported at once
	cfg := DefaultConfig()
	cfg.WorkerPoolSize = 0
	err := cfg.Validate()
	assert.True(t, errors.Is(err, ErrMissingCredential))
	assert.Contains(t, err.Error(), "worker_pool_size")
}
