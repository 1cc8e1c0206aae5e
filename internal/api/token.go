package api

import (
	"context"
	"time"

	"web3-mcp/internal/ankr"
	"web3-mcp/internal/normalize"
)

// TokenAPI serves the fungible token operations.
type TokenAPI struct {
	*base
	upstream TokenUpstream
}

// GetAccountBalance lists a wallet's balances under "assets".
func (a *TokenAPI) GetAccountBalance(ctx context.Context, req *AccountBalanceRequest) *normalize.Page {
	spec := listSpec{
		op:          "get_account_balance",
		field:       "assets",
		pageSize:    req.PageSize,
		defaultSize: DefaultPageSize,
		maxSize:     MaxPageSize,
		keep:        balanceFilter(req),
	}
	return a.list(ctx, spec, func(ctx context.Context) (any, error) {
		if err := requireAddress("wallet_address", req.WalletAddress); err != nil {
			return nil, err
		}
		return a.upstream.GetAccountBalance(ctx, &ankr.GetAccountBalanceRequest{
			WalletAddress: req.WalletAddress,
			Blockchain:    blockchain(req.Blockchain),
			PageToken:     req.PageToken,
			PageSize:      req.PageSize,
		})
	})
}

// GetCurrencies lists the currencies known on a chain under "currencies".
// The upstream list is not paginated, so the page is cut client side.
func (a *TokenAPI) GetCurrencies(ctx context.Context, req *CurrenciesRequest) *normalize.Page {
	spec := listSpec{
		op:          "get_currencies",
		field:       "currencies",
		pageSize:    req.PageSize,
		defaultSize: DefaultCurrenciesSize,
		maxSize:     MaxCurrenciesSize,
	}
	return a.list(ctx, spec, func(ctx context.Context) (any, error) {
		return a.upstream.GetCurrencies(ctx, &ankr.GetCurrenciesRequest{
			Blockchain: blockchain(req.Blockchain),
		})
	})
}

// GetTokenPrice returns {"price_usd": "<decimal>"}.
func (a *TokenAPI) GetTokenPrice(ctx context.Context, req *TokenPriceRequest) (map[string]any, error) {
	const op = "get_token_price"
	start := time.Now()

	if err := requireBlockchain(req.Blockchain); err != nil {
		return nil, a.fail(op, newInvalidRequestError(op, err.Error()), start)
	}
	if err := requireAddress("contract_address", req.ContractAddress); err != nil {
		return nil, a.fail(op, newInvalidRequestError(op, err.Error()), start)
	}

	raw, err := a.fetch(ctx, op, func(ctx context.Context) (any, error) {
		return a.upstream.GetTokenPrice(ctx, &ankr.GetTokenPriceRequest{
			Blockchain:      blockchain(req.Blockchain),
			ContractAddress: req.ContractAddress,
		})
	})
	if err != nil {
		return nil, a.fail(op, err, start)
	}

	price, err := parsePrice(raw)
	if err != nil {
		return nil, a.fail(op, newPriceUnavailableError(op, "failed to get token price", err), start)
	}
	a.observe(op, 1, nil, start)
	return map[string]any{"price_usd": price}, nil
}

// GetTokenHolders lists the holders of a token under "holders".
func (a *TokenAPI) GetTokenHolders(ctx context.Context, req *TokenHoldersRequest) *normalize.Page {
	spec := listSpec{
		op:          "get_token_holders",
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
		return a.upstream.GetTokenHolders(ctx, &ankr.GetTokenHoldersRequest{
			Blockchain:      blockchain(req.Blockchain),
			ContractAddress: req.ContractAddress,
			PageToken:       req.PageToken,
			PageSize:        req.PageSize,
		})
	})
}

// GetTokenHoldersCount returns {"count": n}.
func (a *TokenAPI) GetTokenHoldersCount(ctx context.Context, req *TokenHoldersCountRequest) (map[string]any, error) {
	const op = "get_token_holders_count"
	start := time.Now()

	if err := requireBlockchain(req.Blockchain); err != nil {
		return nil, a.fail(op, newInvalidRequestError(op, err.Error()), start)
	}
	if err := requireAddress("contract_address", req.ContractAddress); err != nil {
		return nil, a.fail(op, newInvalidRequestError(op, err.Error()), start)
	}

	raw, err := a.fetch(ctx, op, func(ctx context.Context) (any, error) {
		return a.upstream.GetTokenHoldersCount(ctx, &ankr.GetTokenHoldersCountRequest{
			Blockchain:      blockchain(req.Blockchain),
			ContractAddress: req.ContractAddress,
		})
	})
	if err != nil {
		return nil, a.fail(op, err, start)
	}
	a.observe(op, 1, nil, start)
	return map[string]any{"count": parseCount(raw)}, nil
}

// GetTokenTransfers lists transfers under "transfers". The upstream takes a
// single address, the contract when given and the wallet otherwise. TokenID
// narrows the returned page only.
func (a *TokenAPI) GetTokenTransfers(ctx context.Context, req *TokenTransfersRequest) *normalize.Page {
	spec := listSpec{
		op:          "get_token_transfers",
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
		address := req.ContractAddress
		if address == "" {
			address = req.WalletAddress
		}
		if err := optionalAddress("address", address); err != nil {
			return nil, err
		}
		return a.upstream.GetTokenTransfers(ctx, &ankr.GetTransfersRequest{
			Blockchain: blockchain(req.Blockchain),
			Address:    addresses(address),
			FromBlock:  req.FromBlock,
			ToBlock:    req.ToBlock,
			PageToken:  req.PageToken,
			PageSize:   req.PageSize,
		})
	})
}
