package ankr

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web3-mcp/internal/jsonrpc"
)

type recordedCall struct {
	Path   string
	Method string
	Params map[string]any
}

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
	errs  []error
}

func (o *recordingObserver) ObserveUpstreamCall(method string, err error, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, method)
	o.errs = append(o.errs, err)
}

// newTestServer answers every call with reply, recording what it received.
func newTestServer(t *testing.T, status int, reply string) (*httptest.Server, *[]recordedCall) {
	t.Helper()
	var (
		mu    sync.Mutex
		calls []recordedCall
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req jsonrpc.Request
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, jsonrpc.Version, req.JSONRPC)

		var params map[string]any
		require.NoError(t, json.Unmarshal(req.Params, &params), "params must be an object")

		mu.Lock()
		calls = append(calls, recordedCall{Path: r.URL.Path, Method: req.Method, Params: params})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newTestClient(t *testing.T, endpoint string, observer Observer) *Client {
	t.Helper()
	client, err := NewClient(Config{
		Endpoint: endpoint,
		APIKey:   "test-key",
		Timeout:  5 * time.Second,
		Observer: observer,
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(Config{APIKey: "  "})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestCallWireFormat(t *testing.T) {
	srv, calls := newTestServer(t, http.StatusOK, `{
		"jsonrpc": "2.0",
		"id": 1,
		"result": {
			"owner": "0x0000000000000000000000000000000000000001",
			"assets": [{"blockchain": "eth", "tokenId": "7", "contractType": "ERC721"}],
			"nextPageToken": "abc"
		}
	}`)
	observer := &recordingObserver{}
	client := newTestClient(t, srv.URL+"/", observer)

	reply, err := client.NFT.GetNFTsByOwner(context.Background(), &GetNFTsByOwnerRequest{
		WalletAddress: "0x0000000000000000000000000000000000000001",
		Blockchain:    Ethereum,
		PageSize:      10,
	})
	require.NoError(t, err)

	require.Len(t, reply.Assets, 1)
	assert.Equal(t, "7", reply.Assets[0].TokenID)
	assert.Equal(t, ERC721, reply.Assets[0].ContractType)
	assert.Equal(t, "abc", reply.NextPageToken)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "/test-key", call.Path)
	assert.Equal(t, MethodGetNFTsByOwner, call.Method)
	assert.Equal(t, "eth", call.Params["blockchain"])
	assert.Equal(t, float64(10), call.Params["pageSize"])
	assert.NotContains(t, call.Params, "pageToken")

	assert.Equal(t, []string{MethodGetNFTsByOwner}, observer.calls)
	assert.NoError(t, observer.errs[0])
}

func TestCallRPCError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{
		"jsonrpc": "2.0",
		"id": 1,
		"error": {"code": -32602, "message": "invalid address"}
	}`)
	observer := &recordingObserver{}
	client := newTestClient(t, srv.URL, observer)

	_, err := client.Token.GetTokenPrice(context.Background(), &GetTokenPriceRequest{Blockchain: Ethereum})
	require.Error(t, err)

	var rpcErr *RPCError
	require.True(t, errors.As(err, &rpcErr))
	assert.Equal(t, MethodGetTokenPrice, rpcErr.Method)
	assert.Equal(t, jsonrpc.InvalidParams, rpcErr.Err.Code)
	assert.Contains(t, err.Error(), "invalid address")

	require.Len(t, observer.errs, 1)
	assert.Error(t, observer.errs[0])
}

func TestCallStatusError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusUnauthorized, `{"message": "bad key"}`)
	client := newTestClient(t, srv.URL, nil)

	_, err := client.Query.GetBlockchainStats(context.Background(), &GetBlockchainStatsRequest{})
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "bad key")
}

func TestGetTransactionNotFound(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"jsonrpc": "2.0", "id": 1, "result": {"transactions": []}}`)
	client := newTestClient(t, srv.URL, nil)

	tx, err := client.Query.GetTransaction(context.Background(), &GetTransactionsByHashRequest{
		TransactionHash: "0x" + "ab",
	})
	require.NoError(t, err)
	assert.Nil(t, tx)
}

func TestUnwrappedReplies(t *testing.T) {
	srv, calls := newTestServer(t, http.StatusOK, `{
		"jsonrpc": "2.0",
		"id": 1,
		"result": {"currencies": [{"blockchain": "bsc", "symbol": "BNB", "decimals": 18}]}
	}`)
	client := newTestClient(t, srv.URL, nil)

	currencies, err := client.Token.GetCurrencies(context.Background(), &GetCurrenciesRequest{Blockchain: BSC})
	require.NoError(t, err)
	require.Len(t, currencies, 1)
	assert.Equal(t, "BNB", currencies[0].Symbol)
	assert.Equal(t, MethodGetCurrencies, (*calls)[0].Method)
}

func TestCallCancelled(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"jsonrpc": "2.0", "id": 1, "result": {}}`)
	client := newTestClient(t, srv.URL, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Query.GetInteractions(ctx, &GetInteractionsRequest{Address: "0x1"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRateLimitedClientHonoursContext(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"jsonrpc": "2.0", "id": 1, "result": {"blocks": []}}`)
	client, err := NewClient(Config{
		Endpoint:  srv.URL,
		APIKey:    "k",
		RateLimit: 0.001,
		Burst:     1,
		Logger:    zerolog.Nop(),
	})
	require.NoError(t, err)

	_, err = client.Query.GetBlocks(context.Background(), &GetBlocksRequest{Blockchain: Ethereum})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.Query.GetBlocks(ctx, &GetBlocksRequest{Blockchain: Ethereum})
	assert.Error(t, err)
}

func TestValidators(t *testing.T) {
	assert.True(t, IsAddress("0x52908400098527886E0F7030069857D2E4169EE7"))
	assert.False(t, IsAddress("52908400098527886E0F7030069857D2E4169EE7"))
	assert.False(t, IsAddress("0x1234"))
	assert.False(t, IsAddress("0xZZ908400098527886E0F7030069857D2E4169EE7"))

	assert.True(t, IsTxHash("0x"+"0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"))
	assert.False(t, IsTxHash("0x1234"))
	assert.False(t, IsTxHash("hello"))
}
