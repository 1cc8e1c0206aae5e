package api

import (
	"context"
	"fmt"
	"time"

	"web3-mcp/internal/ankr"
	"web3-mcp/internal/normalize"
)

// QueryAPI serves the chain query operations.
type QueryAPI struct {
	*base
	upstream QueryUpstream
}

// GetBlockchainStats returns {"stats": ...}.
func (a *QueryAPI) GetBlockchainStats(ctx context.Context, req *BlockchainStatsRequest) (map[string]any, error) {
	const op = "get_blockchain_stats"
	start := time.Now()

	if err := requireBlockchain(req.Blockchain); err != nil {
		return nil, a.fail(op, newInvalidRequestError(op, err.Error()), start)
	}

	raw, err := a.fetch(ctx, op, func(ctx context.Context) (any, error) {
		return a.upstream.GetBlockchainStats(ctx, &ankr.GetBlockchainStatsRequest{
			Blockchain: blockchain(req.Blockchain),
		})
	})
	if err != nil {
		return nil, a.fail(op, err, start)
	}
	a.observe(op, 1, nil, start)
	return map[string]any{"stats": parseStats(raw)}, nil
}

// GetBlocks lists blocks in a range under "blocks".
func (a *QueryAPI) GetBlocks(ctx context.Context, req *BlocksRequest) *normalize.Page {
	spec := listSpec{
		op:          "get_blocks",
		field:       "blocks",
		pageSize:    req.PageSize,
		defaultSize: DefaultPageSize,
		maxSize:     MaxBlocksPageSize,
	}
	return a.list(ctx, spec, func(ctx context.Context) (any, error) {
		if err := requireBlockchain(req.Blockchain); err != nil {
			return nil, err
		}
		return a.upstream.GetBlocks(ctx, &ankr.GetBlocksRequest{
			Blockchain: blockchain(req.Blockchain),
			FromBlock:  req.FromBlock,
			ToBlock:    req.ToBlock,
			DescOrder:  req.DescendingOrder,
		})
	})
}

// GetLogs lists event logs under "logs".
func (a *QueryAPI) GetLogs(ctx context.Context, req *LogsRequest) *normalize.Page {
	spec := listSpec{
		op:          "get_logs",
		field:       "logs",
		pageSize:    req.PageSize,
		defaultSize: DefaultPageSize,
		maxSize:     MaxPageSize,
	}
	return a.list(ctx, spec, func(ctx context.Context) (any, error) {
		if err := requireBlockchain(req.Blockchain); err != nil {
			return nil, err
		}
		if err := optionalAddress("address", req.Address); err != nil {
			return nil, err
		}
		return a.upstream.GetLogs(ctx, &ankr.GetLogsRequest{
			Blockchain: blockchain(req.Blockchain),
			FromBlock:  req.FromBlock,
			ToBlock:    req.ToBlock,
			Address:    addresses(req.Address),
			Topics:     req.Topics,
			DescOrder:  req.DescendingOrder,
			PageToken:  req.PageToken,
			PageSize:   req.PageSize,
		})
	})
}

// GetTransactionsByHash returns the serialized transaction. An unknown hash
// is a NOT_FOUND error.
func (a *QueryAPI) GetTransactionsByHash(ctx context.Context, req *TransactionsByHashRequest) (any, error) {
	const op = "get_transactions_by_hash"
	start := time.Now()

	if err := requireBlockchain(req.Blockchain); err != nil {
		return nil, a.fail(op, newInvalidRequestError(op, err.Error()), start)
	}
	if !ankr.IsTxHash(req.TransactionHash) {
		msg := fmt.Sprintf("transaction_hash %q is not a valid hash", req.TransactionHash)
		return nil, a.fail(op, newInvalidRequestError(op, msg), start)
	}

	raw, err := a.fetch(ctx, op, func(ctx context.Context) (any, error) {
		return a.upstream.GetTransaction(ctx, &ankr.GetTransactionsByHashRequest{
			Blockchain:      blockchain(req.Blockchain),
			TransactionHash: req.TransactionHash,
		})
	})
	if err != nil {
		return nil, a.fail(op, err, start)
	}

	out := normalize.ToSerializable(raw)
	if out == nil {
		return nil, a.fail(op, newNotFoundError(op, "transaction "+req.TransactionHash), start)
	}
	a.observe(op, 1, nil, start)
	return out, nil
}

// GetTransactionsByAddress lists a wallet's transactions under
// "transactions".
func (a *QueryAPI) GetTransactionsByAddress(ctx context.Context, req *TransactionsByAddressRequest) *normalize.Page {
	spec := listSpec{
		op:          "get_transactions_by_address",
		field:       "transactions",
		pageSize:    req.PageSize,
		defaultSize: DefaultPageSize,
		maxSize:     MaxPageSize,
	}
	return a.list(ctx, spec, func(ctx context.Context) (any, error) {
		if err := requireBlockchain(req.Blockchain); err != nil {
			return nil, err
		}
		if err := requireAddress("wallet_address", req.WalletAddress); err != nil {
			return nil, err
		}
		return a.upstream.GetTransactionsByAddress(ctx, &ankr.GetTransactionsByAddressRequest{
			Blockchain: blockchain(req.Blockchain),
			Address:    addresses(req.WalletAddress),
			FromBlock:  req.FromBlock,
			ToBlock:    req.ToBlock,
			DescOrder:  req.DescendingOrder,
			PageToken:  req.PageToken,
			PageSize:   req.PageSize,
		})
	})
}

// GetInteractions lists the chains a wallet has touched under
// "interactions". The upstream does not paginate them, so the token is
// always empty.
func (a *QueryAPI) GetInteractions(ctx context.Context, req *InteractionsRequest) *normalize.Page {
	spec := listSpec{
		op:          "get_interactions",
		field:       "interactions",
		source:      "blockchains",
		pageSize:    req.PageSize,
		defaultSize: MaxPageSize,
		maxSize:     MaxPageSize,
		noToken:     true,
	}
	return a.list(ctx, spec, func(ctx context.Context) (any, error) {
		if err := requireAddress("wallet_address", req.WalletAddress); err != nil {
			return nil, err
		}
		return a.upstream.GetInteractions(ctx, &ankr.GetInteractionsRequest{
			Address: req.WalletAddress,
		})
	})
}
