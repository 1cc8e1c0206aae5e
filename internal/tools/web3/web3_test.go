package web3

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web3-mcp/internal/ankr"
	"web3-mcp/internal/api"
	"web3-mcp/internal/tools"
	"web3-mcp/internal/workerpool"
)

const wallet = "0x52908400098527886E0F7030069857D2E4169EE7"

// newRegistry wires the tools to an Ankr client talking to a fake endpoint
// that answers each method from replies.
func newRegistry(t *testing.T, replies map[string]string) *tools.Registry {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			ID     any    `json:"id"`
			Method string `json:"method"`
		}
		_ = json.Unmarshal(body, &req)

		result, ok := replies[req.Method]
		w.Header().Set("Content-Type", "application/json")
		if !ok {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"jsonrpc": "2.0",
				"id":      req.ID,
				"error":   map[string]any{"code": -32601, "message": "method not found"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  json.RawMessage(result),
		})
	}))
	t.Cleanup(srv.Close)

	client, err := ankr.NewClient(ankr.Config{Endpoint: srv.URL, APIKey: "key", Logger: zerolog.Nop()})
	require.NoError(t, err)

	svc := api.New(api.FromAnkr(client), api.Options{Pool: workerpool.New(4), Logger: zerolog.Nop()})
	registry := tools.NewRegistry()
	require.NoError(t, Register(registry, svc))
	return registry
}

func TestRegisterAllTools(t *testing.T) {
	registry := newRegistry(t, nil)

	var names []string
	for _, def := range registry.Definitions() {
		names = append(names, def.Name)
		require.NotNil(t, def.InputSchema, def.Name)
		assert.Equal(t, "object", def.InputSchema.Type, def.Name)
	}
	assert.ElementsMatch(t, []string{
		"get_nfts_by_owner", "get_nft_metadata", "get_nft_holders", "get_nft_transfers",
		"get_account_balance", "get_currencies", "get_token_price", "get_token_holders",
		"get_token_holders_count", "get_token_transfers",
		"get_blockchain_stats", "get_blocks", "get_logs", "get_transactions_by_hash",
		"get_transactions_by_address", "get_interactions",
		"get_supported_networks",
	}, names)

	resources := registry.Resources()
	require.Len(t, resources, 1)
	assert.Equal(t, "ankr://info", resources[0].URI)
}

func TestPagedToolThroughClient(t *testing.T) {
	registry := newRegistry(t, map[string]string{
		ankr.MethodGetNFTsByOwner: `{
			"owner": "` + wallet + `",
			"assets": [
				{"blockchain": "eth", "tokenId": "1", "contractType": "ERC721"},
				{"blockchain": "eth", "tokenId": "2", "contractType": "ERC721"},
				{"blockchain": "eth", "tokenId": "3", "contractType": "ERC721"}
			],
			"nextPageToken": "cursor"
		}`,
	})

	out, err := registry.Call(context.Background(), "get_nfts_by_owner",
		json.RawMessage(`{"request": {"wallet_address": "`+wallet+`", "page_size": 2}}`))
	require.NoError(t, err)

	var page struct {
		Assets        []map[string]any `json:"assets"`
		NextPageToken string           `json:"next_page_token"`
	}
	require.NoError(t, json.Unmarshal(out, &page))
	assert.Len(t, page.Assets, 2)
	assert.Equal(t, "1", page.Assets[0]["tokenId"])
	assert.Equal(t, "cursor", page.NextPageToken)
}

func TestUpstreamErrorShapes(t *testing.T) {
	registry := newRegistry(t, nil)
	ctx := context.Background()

	out, err := registry.Call(ctx, "get_token_holders",
		json.RawMessage(`{"request": {"blockchain": "eth", "contract_address": "`+wallet+`"}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"holders": [], "next_page_token": ""}`, string(out))

	_, err = registry.Call(ctx, "get_token_price",
		json.RawMessage(`{"request": {"blockchain": "eth", "contract_address": "`+wallet+`"}}`))
	var apiErr *api.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, api.ErrUpstreamFailure, apiErr.Code)

	var rpcErr *ankr.RPCError
	assert.True(t, errors.As(err, &rpcErr))
}

func TestTokenPriceTool(t *testing.T) {
	registry := newRegistry(t, map[string]string{
		ankr.MethodGetTokenPrice: `{"blockchain": "eth", "usdPrice": "1.0023"}`,
	})

	out, err := registry.Call(context.Background(), "get_token_price",
		json.RawMessage(`{"request": {"blockchain": "eth", "contract_address": "`+wallet+`"}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"price_usd": "1.0023"}`, string(out))
}

func TestMissingRequiredArgument(t *testing.T) {
	registry := newRegistry(t, nil)

	_, err := registry.Call(context.Background(), "get_token_price", json.RawMessage(`{"request": {"blockchain": "eth"}}`))
	var toolErr *tools.Error
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, tools.ErrInvalidArguments, toolErr.Code)
}

func TestStaticToolAndResource(t *testing.T) {
	registry := newRegistry(t, nil)

	out, err := registry.Call(context.Background(), "get_supported_networks", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `["eth", "bsc", "polygon", "avalanche", "arbitrum", "fantom", "optimism"]`, string(out))

	info, err := registry.Read(context.Background(), "ankr://info")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(info, &doc))
	assert.Equal(t, "Ankr Advanced API", doc["name"])
	assert.Equal(t, "https://www.ankr.com/docs/advanced-api/overview/", doc["documentation"])
}
