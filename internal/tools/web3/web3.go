// Package web3 registers the blockchain data tools and the API info resource.
package web3

import (
	"context"
	"fmt"

	"web3-mcp/internal/api"
	"web3-mcp/internal/tools"
)

// page adapts a list operation, which never fails, to a tool function.
func page[T any, P any](fn func(context.Context, *T) P) func(context.Context, *T) (any, error) {
	return func(ctx context.Context, req *T) (any, error) {
		return fn(ctx, req), nil
	}
}

// lookup adapts an operation returning a typed result and an error.
func lookup[T any, R any](fn func(context.Context, *T) (R, error)) func(context.Context, *T) (any, error) {
	return func(ctx context.Context, req *T) (any, error) {
		out, err := fn(ctx, req)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
}

// Register adds every tool backed by svc, plus the network list and the info
// resource, to r.
func Register(r *tools.Registry, svc *api.Service) error {
	nft, token, query := svc.NFT, svc.Token, svc.Query

	builders := []func() (tools.Tool, error){
		typed("get_nfts_by_owner", "Get NFTs owned by a wallet address", page(nft.GetNFTsByOwner)),
		typed("get_nft_metadata", "Get metadata for a specific NFT", lookup(nft.GetNFTMetadata)),
		typed("get_nft_holders", "Get holders of a specific NFT collection", page(nft.GetNFTHolders)),
		typed("get_nft_transfers", "Get transfer history for NFTs", page(nft.GetNFTTransfers)),

		typed("get_account_balance", "Get token balances for a wallet address", page(token.GetAccountBalance)),
		typed("get_currencies", "Get available currencies", page(token.GetCurrencies)),
		typed("get_token_price", "Get token price information", lookup(token.GetTokenPrice)),
		typed("get_token_holders", "Get token holders", page(token.GetTokenHolders)),
		typed("get_token_holders_count", "Get token holders count", lookup(token.GetTokenHoldersCount)),
		typed("get_token_transfers", "Get token transfer history", page(token.GetTokenTransfers)),

		typed("get_blockchain_stats", "Get blockchain statistics", lookup(query.GetBlockchainStats)),
		typed("get_blocks", "Get blocks information", page(query.GetBlocks)),
		typed("get_logs", "Get blockchain logs", page(query.GetLogs)),
		typed("get_transactions_by_hash", "Get transactions by hash", lookup(query.GetTransactionsByHash)),
		typed("get_transactions_by_address", "Get transactions by address", page(query.GetTransactionsByAddress)),
		typed("get_interactions", "Get wallet interactions with contracts", page(query.GetInteractions)),

		func() (tools.Tool, error) {
			return tools.NewFunc("get_supported_networks", "Get a list of supported blockchain networks",
				func(context.Context) (any, error) {
					return api.SupportedNetworks(), nil
				})
		},
	}

	for _, build := range builders {
		tool, err := build()
		if err != nil {
			return fmt.Errorf("register tools: %w", err)
		}
		r.Register(tool)
	}

	r.RegisterResource(tools.NewStaticResource(
		api.InfoURI,
		"Ankr Advanced API",
		"Information about the Ankr Advanced API",
		func() any { return api.Info() },
	))
	return nil
}

func typed[T any](name, description string, fn func(context.Context, *T) (any, error)) func() (tools.Tool, error) {
	return func() (tools.Tool, error) {
		return tools.New(name, description, fn)
	}
}
