// Package ankr is a client for the Ankr Advanced API, a multi-chain
// JSON-RPC service for NFT, token and chain data.
package ankr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"web3-mcp/internal/jsonrpc"
)

// DefaultEndpoint is the multichain endpoint the API key is appended to.
const DefaultEndpoint = "https://rpc.ankr.com/multichain"

const maxErrorBody = 512

// ErrMissingAPIKey is returned by NewClient when no key is configured.
var ErrMissingAPIKey = errors.New("ankr: API key is required")

// Observer is notified after every upstream call.
type Observer interface {
	ObserveUpstreamCall(method string, err error, duration time.Duration)
}

// Config configures a Client.
type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
	// RateLimit caps outgoing calls per second. Zero disables pacing.
	RateLimit float64
	Burst     int

	HTTPClient *http.Client
	Observer   Observer
	Logger     zerolog.Logger
}

// Client groups the per-domain sub-clients. It is safe for concurrent use.
type Client struct {
	NFT   *NFTClient
	Token *TokenClient
	Query *QueryClient
}

// NewClient builds a client from cfg.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	rpc := &rpcClient{
		url:      endpoint + "/" + cfg.APIKey,
		http:     httpClient,
		limiter:  limiter,
		observer: cfg.Observer,
		logger:   cfg.Logger.With().Str("component", "ankr_client").Logger(),
	}

	return &Client{
		NFT:   &NFTClient{rpc: rpc},
		Token: &TokenClient{rpc: rpc},
		Query: &QueryClient{rpc: rpc},
	}, nil
}

// RPCError is an error object returned by the API.
type RPCError struct {
	Method string
	Err    *jsonrpc.Error
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("ankr: %s: %s (code %d)", e.Method, e.Err.Message, e.Err.Code)
}

func (e *RPCError) Unwrap() error {
	return e.Err
}

// StatusError is returned when the API answers with a non-200 status.
type StatusError struct {
	Method     string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ankr: %s: unexpected status code %d: %s", e.Method, e.StatusCode, e.Body)
}

type rpcClient struct {
	url      string
	http     *http.Client
	limiter  *rate.Limiter
	observer Observer
	logger   zerolog.Logger
	nextID   atomic.Int64
}

// call invokes method with params as the JSON-RPC params object and decodes
// the result into out.
func (c *rpcClient) call(ctx context.Context, method string, params, out any) (err error) {
	start := time.Now()
	defer func() {
		duration := time.Since(start)
		if c.observer != nil {
			c.observer.ObserveUpstreamCall(method, err, duration)
		}
		event := c.logger.Debug()
		if err != nil {
			event = c.logger.Warn().Err(err)
		}
		event.Str("method", method).Dur("duration", duration).Msg("Upstream call")
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("ankr: %s: rate limit: %w", method, err)
		}
	}

	req, err := jsonrpc.NewRequest(c.nextID.Add(1), method, params)
	if err != nil {
		return err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("ankr: %s: encode request: %w", method, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ankr: %s: create request: %w", method, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("ankr: %s: request failed: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ankr: %s: read response: %w", method, err)
	}

	if resp.StatusCode != http.StatusOK {
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return &StatusError{Method: method, StatusCode: resp.StatusCode, Body: string(data)}
	}

	var rpcResp jsonrpc.RawResponse
	if err := json.Unmarshal(data, &rpcResp); err != nil {
		return fmt.Errorf("ankr: %s: decode response: %w", method, err)
	}
	if rpcResp.Error != nil {
		return &RPCError{Method: method, Err: rpcResp.Error}
	}
	if out == nil || len(rpcResp.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("ankr: %s: decode result: %w", method, err)
	}
	return nil
}
