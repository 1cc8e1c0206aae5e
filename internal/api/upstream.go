package api

import (
	"context"

	"web3-mcp/internal/ankr"
)

// NFTUpstream is the NFT part of the upstream API. Results are opaque and go
// through page extraction and serialization, so any shape is accepted.
type NFTUpstream interface {
	GetNFTsByOwner(ctx context.Context, req *ankr.GetNFTsByOwnerRequest) (any, error)
	GetNFTMetadata(ctx context.Context, req *ankr.GetNFTMetadataRequest) (any, error)
	GetNFTHolders(ctx context.Context, req *ankr.GetNFTHoldersRequest) (any, error)
	GetNFTTransfers(ctx context.Context, req *ankr.GetTransfersRequest) (any, error)
}

type TokenUpstream interface {
	GetAccountBalance(ctx context.Context, req *ankr.GetAccountBalanceRequest) (any, error)
	GetCurrencies(ctx context.Context, req *ankr.GetCurrenciesRequest) (any, error)
	GetTokenPrice(ctx context.Context, req *ankr.GetTokenPriceRequest) (any, error)
	GetTokenHolders(ctx context.Context, req *ankr.GetTokenHoldersRequest) (any, error)
	GetTokenHoldersCount(ctx context.Context, req *ankr.GetTokenHoldersCountRequest) (any, error)
	GetTokenTransfers(ctx context.Context, req *ankr.GetTransfersRequest) (any, error)
}

type QueryUpstream interface {
	GetBlockchainStats(ctx context.Context, req *ankr.GetBlockchainStatsRequest) (any, error)
	GetBlocks(ctx context.Context, req *ankr.GetBlocksRequest) (any, error)
	GetLogs(ctx context.Context, req *ankr.GetLogsRequest) (any, error)
	GetTransaction(ctx context.Context, req *ankr.GetTransactionsByHashRequest) (any, error)
	GetTransactionsByAddress(ctx context.Context, req *ankr.GetTransactionsByAddressRequest) (any, error)
	GetInteractions(ctx context.Context, req *ankr.GetInteractionsRequest) (any, error)
}

// Upstream bundles the three sub-clients the façades call.
type Upstream struct {
	NFT   NFTUpstream
	Token TokenUpstream
	Query QueryUpstream
}

// FromAnkr adapts the typed Ankr client to Upstream.
func FromAnkr(c *ankr.Client) Upstream {
	return Upstream{
		NFT:   nftClient{c.NFT},
		Token: tokenClient{c.Token},
		Query: queryClient{c.Query},
	}
}

type nftClient struct{ c *ankr.NFTClient }

func (a nftClient) GetNFTsByOwner(ctx context.Context, req *ankr.GetNFTsByOwnerRequest) (any, error) {
	return a.c.GetNFTsByOwner(ctx, req)
}

func (a nftClient) GetNFTMetadata(ctx context.Context, req *ankr.GetNFTMetadataRequest) (any, error) {
	return a.c.GetNFTMetadata(ctx, req)
}

func (a nftClient) GetNFTHolders(ctx context.Context, req *ankr.GetNFTHoldersRequest) (any, error) {
	return a.c.GetNFTHolders(ctx, req)
}

func (a nftClient) GetNFTTransfers(ctx context.Context, req *ankr.GetTransfersRequest) (any, error) {
	return a.c.GetNFTTransfers(ctx, req)
}

type tokenClient struct{ c *ankr.TokenClient }

func (a tokenClient) GetAccountBalance(ctx context.Context, req *ankr.GetAccountBalanceRequest) (any, error) {
	return a.c.GetAccountBalance(ctx, req)
}

func (a tokenClient) GetCurrencies(ctx context.Context, req *ankr.GetCurrenciesRequest) (any, error) {
	return a.c.GetCurrencies(ctx, req)
}

func (a tokenClient) GetTokenPrice(ctx context.Context, req *ankr.GetTokenPriceRequest) (any, error) {
	return a.c.GetTokenPrice(ctx, req)
}

func (a tokenClient) GetTokenHolders(ctx context.Context, req *ankr.GetTokenHoldersRequest) (any, error) {
	return a.c.GetTokenHolders(ctx, req)
}

func (a tokenClient) GetTokenHoldersCount(ctx context.Context, req *ankr.GetTokenHoldersCountRequest) (any, error) {
	return a.c.GetTokenHoldersCount(ctx, req)
}

func (a tokenClient) GetTokenTransfers(ctx context.Context, req *ankr.GetTransfersRequest) (any, error) {
	return a.c.GetTokenTransfers(ctx, req)
}

type queryClient struct{ c *ankr.QueryClient }

func (a queryClient) GetBlockchainStats(ctx context.Context, req *ankr.GetBlockchainStatsRequest) (any, error) {
	return a.c.GetBlockchainStats(ctx, req)
}

func (a queryClient) GetBlocks(ctx context.Context, req *ankr.GetBlocksRequest) (any, error) {
	return a.c.GetBlocks(ctx, req)
}

func (a queryClient) GetLogs(ctx context.Context, req *ankr.GetLogsRequest) (any, error) {
	return a.c.GetLogs(ctx, req)
}

// GetTransaction reports a missing transaction as an untyped nil.
func (a queryClient) GetTransaction(ctx context.Context, req *ankr.GetTransactionsByHashRequest) (any, error) {
	tx, err := a.c.GetTransaction(ctx, req)
	if err != nil || tx == nil {
		return nil, err
	}
	return tx, nil
}

func (a queryClient) GetTransactionsByAddress(ctx context.Context, req *ankr.GetTransactionsByAddressRequest) (any, error) {
	return a.c.GetTransactionsByAddress(ctx, req)
}

func (a queryClient) GetInteractions(ctx context.Context, req *ankr.GetInteractionsRequest) (any, error) {
	return a.c.GetInteractions(ctx, req)
}
