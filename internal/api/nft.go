package api

import (
	"context"
	"time"

	"web3-mcp/internal/ankr"
	"web3-mcp/internal/normalize"
)

// NFTAPI serves the NFT operations.
type NFTAPI struct {
	*base
	upstream NFTUpstream
}

// GetNFTsByOwner lists the NFTs held by a wallet under "assets".
func (a *NFTAPI) GetNFTsByOwner(ctx context.Context, req *NFTsByOwnerRequest) *normalize.Page {
	spec := listSpec{
		op:           "get_nfts_by_owner",
		field:        "assets",
		alternatives: []string{"nfts"},
		pageSize:     req.PageSize,
		defaultSize:  DefaultPageSize,
		maxSize:      MaxPageSize,
	}
	return a.list(ctx, spec, func(ctx context.Context) (any, error) {
		if err := requireAddress("wallet_address", req.WalletAddress); err != nil {
			return nil, err
		}
		return a.upstream.GetNFTsByOwner(ctx, &ankr.GetNFTsByOwnerRequest{
			WalletAddress: req.WalletAddress,
			Blockchain:    blockchain(req.Blockchain),
			PageToken:     req.PageToken,
			PageSize:      req.PageSize,
		})
	})
}

// GetNFTMetadata returns the serialized metadata of a single token.
func (a *NFTAPI) GetNFTMetadata(ctx context.Context, req *NFTMetadataRequest) (any, error) {
	const op = "get_nft_metadata"
	start := time.Now()

	if err := requireBlockchain(req.Blockchain); err != nil {
		return nil, a.fail(op, newInvalidRequestError(op, err.Error()), start)
	}
	if err := requireAddress("contract_address", req.ContractAddress); err != nil {
		return nil, a.fail(op, newInvalidRequestError(op, err.Error()), start)
	}
	if req.TokenID == "" {
		return nil, a.fail(op, newInvalidRequestError(op, "token_id is required"), start)
	}

	raw, err := a.fetch(ctx, op, func(ctx context.Context) (any, error) {
		return a.upstream.GetNFTMetadata(ctx, &ankr.GetNFTMetadataRequest{
			Blockchain:      blockchain(req.Blockchain),
			ContractAddress: req.ContractAddress,
			TokenID:         req.TokenID,
			ForceFetch:      true,
		})
	})
	if err != nil {
		return nil, a.fail(op, err, start)
	}

	out := normalize.ToSerializable(raw)
	if out == nil {
		return nil, a.fail(op, newNotFoundError(op, "nft metadata"), start)
	}
	a.observe(op, 1, nil, start)
	return out, nil
}

// GetNFTHolders lists the holders of a collection under "holders".
func (a *NFTAPI) GetNFTHolders(ctx context.Context, req *NFTHoldersRequest) *normalize.Page {
	spec := listSpec{
		op:          "get_nft_holders",
		field:       "holders",
		pageSize:    req.PageSize,
		defaultSize: DefaultPageSize,
		maxSize:     MaxPageSize,
	}
	return a.list(ctx, spec, func(ctx context.Context) (any, error) {
		if err := requireBlockchain(req.Blockchain); err != nil {
			return nil, err
		}
		if err := requireAddress("contract_address", req.ContractAddress); err != nil {
			return nil, err
		}
		return a.upstream.GetNFTHolders(ctx, &ankr.GetNFTHoldersRequest{
			Blockchain:      blockchain(req.Blockchain),
			ContractAddress: req.ContractAddress,
			PageToken:       req.PageToken,
			PageSize:        req.PageSize,
		})
	})
}

// GetNFTTransfers lists transfers under "transfers". The contract and wallet
// addresses are both sent as the upstream address filter. TokenID narrows
// the returned page only, after bounding, so the page may come back shorter
// than requested while keeping its token.
func (a *NFTAPI) GetNFTTransfers(ctx context.Context, req *NFTTransfersRequest) *normalize.Page {
	spec := listSpec{
		op:          "get_nft_transfers",
		field:       "transfers",
		pageSize:    req.PageSize,
		defaultSize: DefaultPageSize,
		maxSize:     MaxPageSize,
		keep:        matchField("tokenId", req.TokenID),
	}
	return a.list(ctx, spec, func(ctx context.Context) (any, error) {
		if err := requireBlockchain(req.Blockchain); err != nil {
			return nil, err
		}
		if err := optionalAddress("contract_address", req.ContractAddress); err != nil {
			return nil, err
		}
		if err := optionalAddress("wallet_address", req.WalletAddress); err != nil {
			return nil, err
		}
		return a.upstream.GetNFTTransfers(ctx, &ankr.GetTransfersRequest{
			Blockchain: blockchain(req.Blockchain),
			Address:    addresses(req.ContractAddress, req.WalletAddress),
			FromBlock:  req.FromBlock,
			ToBlock:    req.ToBlock,
			PageToken:  req.PageToken,
			PageSize:   req.PageSize,
		})
	})
}
