package ankr

import (
	"context"
)

const (
	MethodGetAccountBalance    = "ankr_getAccountBalance"
	MethodGetCurrencies        = "ankr_getCurrencies"
	MethodGetTokenPrice        = "ankr_getTokenPrice"
	MethodGetTokenHolders      = "ankr_getTokenHolders"
	MethodGetTokenHoldersCount = "ankr_getTokenHoldersCount"
	MethodGetTokenTransfers    = "ankr_getTokenTransfers"
)

type GetAccountBalanceRequest struct {
	WalletAddress   string     `json:"walletAddress"`
	Blockchain      Blockchain `json:"blockchain,omitempty"`
	OnlyWhitelisted *bool      `json:"onlyWhitelisted,omitempty"`
	NativeFirst     *bool      `json:"nativeFirst,omitempty"`
	PageToken       string     `json:"pageToken,omitempty"`
	PageSize        int        `json:"pageSize,omitempty"`
}

type Balance struct {
	Blockchain        Blockchain `json:"blockchain"`
	TokenName         string     `json:"tokenName"`
	TokenSymbol       string     `json:"tokenSymbol"`
	TokenDecimals     int        `json:"tokenDecimals"`
	TokenType         TokenType  `json:"tokenType"`
	ContractAddress   string     `json:"contractAddress,omitempty"`
	HolderAddress     string     `json:"holderAddress"`
	Balance           string     `json:"balance"`
	BalanceRawInteger string     `json:"balanceRawInteger"`
	BalanceUsd        string     `json:"balanceUsd"`
	TokenPrice        string     `json:"tokenPrice"`
	Thumbnail         string     `json:"thumbnail"`
}

type GetAccountBalanceReply struct {
	TotalBalanceUsd string      `json:"totalBalanceUsd"`
	TotalCount      int         `json:"totalCount"`
	Assets          []Balance   `json:"assets"`
	NextPageToken   string      `json:"nextPageToken"`
	SyncStatus      *SyncStatus `json:"syncStatus,omitempty"`
}

type GetCurrenciesRequest struct {
	Blockchain Blockchain `json:"blockchain,omitempty"`
}

type Currency struct {
	Blockchain Blockchain `json:"blockchain"`
	Address    string     `json:"address,omitempty"`
	Name       string     `json:"name"`
	Decimals   int        `json:"decimals"`
	Symbol     string     `json:"symbol"`
	Thumbnail  string     `json:"thumbnail"`
}

type GetCurrenciesReply struct {
	Currencies []Currency  `json:"currencies"`
	SyncStatus *SyncStatus `json:"syncStatus,omitempty"`
}

type GetTokenPriceRequest struct {
	Blockchain      Blockchain `json:"blockchain"`
	ContractAddress string     `json:"contractAddress,omitempty"`
}

type GetTokenPriceReply struct {
	Blockchain      Blockchain  `json:"blockchain"`
	ContractAddress string      `json:"contractAddress"`
	UsdPrice        string      `json:"usdPrice"`
	SyncStatus      *SyncStatus `json:"syncStatus,omitempty"`
}

type GetTokenHoldersRequest struct {
	Blockchain      Blockchain `json:"blockchain"`
	ContractAddress string     `json:"contractAddress"`
	PageToken       string     `json:"pageToken,omitempty"`
	PageSize        int        `json:"pageSize,omitempty"`
}

type HolderBalance struct {
	HolderAddress     string `json:"holderAddress"`
	Balance           string `json:"balance"`
	BalanceRawInteger string `json:"balanceRawInteger"`
}

type GetTokenHoldersReply struct {
	Blockchain      Blockchain      `json:"blockchain"`
	ContractAddress string          `json:"contractAddress"`
	TokenDecimals   int             `json:"tokenDecimals"`
	Holders         []HolderBalance `json:"holders"`
	HoldersCount    int             `json:"holdersCount"`
	NextPageToken   string          `json:"nextPageToken"`
	SyncStatus      *SyncStatus     `json:"syncStatus,omitempty"`
}

type GetTokenHoldersCountRequest struct {
	Blockchain      Blockchain `json:"blockchain"`
	ContractAddress string     `json:"contractAddress"`
	PageToken       string     `json:"pageToken,omitempty"`
	PageSize        int        `json:"pageSize,omitempty"`
}

type DailyHolderCount struct {
	HolderCount           int    `json:"holderCount"`
	TotalAmount           string `json:"totalAmount"`
	TotalAmountRawInteger string `json:"totalAmountRawInteger"`
	LastUpdatedAt         string `json:"lastUpdatedAt"`
}

type GetTokenHoldersCountReply struct {
	Blockchain         Blockchain         `json:"blockchain"`
	ContractAddress    string             `json:"contractAddress"`
	TokenDecimals      int                `json:"tokenDecimals"`
	LatestHoldersCount int                `json:"latestHoldersCount"`
	HolderCountHistory []DailyHolderCount `json:"holderCountHistory"`
	NextPageToken      string             `json:"nextPageToken"`
	SyncStatus         *SyncStatus        `json:"syncStatus,omitempty"`
}

type TokenTransfer struct {
	Blockchain      Blockchain `json:"blockchain"`
	FromAddress     string     `json:"fromAddress"`
	ToAddress       string     `json:"toAddress"`
	ContractAddress string     `json:"contractAddress"`
	Value           string     `json:"value"`
	ValueRawInteger string     `json:"valueRawInteger"`
	TokenID         string     `json:"tokenId,omitempty"`
	TokenName       string     `json:"tokenName"`
	TokenSymbol     string     `json:"tokenSymbol"`
	TokenDecimals   int        `json:"tokenDecimals"`
	Thumbnail       string     `json:"thumbnail"`
	TransactionHash string     `json:"transactionHash"`
	BlockHeight     int64      `json:"blockHeight"`
	Timestamp       int64      `json:"timestamp"`
}

type GetTokenTransfersReply struct {
	Transfers     []TokenTransfer `json:"transfers"`
	NextPageToken string          `json:"nextPageToken"`
	SyncStatus    *SyncStatus     `json:"syncStatus,omitempty"`
}

// TokenClient calls the token methods of the API.
type TokenClient struct {
	rpc *rpcClient
}

func (c *TokenClient) GetAccountBalance(ctx context.Context, req *GetAccountBalanceRequest) (*GetAccountBalanceReply, error) {
	var reply GetAccountBalanceReply
	if err := c.rpc.call(ctx, MethodGetAccountBalance, req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetCurrencies returns the currency list without its envelope.
func (c *TokenClient) GetCurrencies(ctx context.Context, req *GetCurrenciesRequest) ([]Currency, error) {
	var reply GetCurrenciesReply
	if err := c.rpc.call(ctx, MethodGetCurrencies, req, &reply); err != nil {
		return nil, err
	}
	return reply.Currencies, nil
}

// GetTokenPrice returns the USD price as the decimal string the API
// reports.
func (c *TokenClient) GetTokenPrice(ctx context.Context, req *GetTokenPriceRequest) (string, error) {
	var reply GetTokenPriceReply
	if err := c.rpc.call(ctx, MethodGetTokenPrice, req, &reply); err != nil {
		return "", err
	}
	return reply.UsdPrice, nil
}

func (c *TokenClient) GetTokenHolders(ctx context.Context, req *GetTokenHoldersRequest) (*GetTokenHoldersReply, error) {
	var reply GetTokenHoldersReply
	if err := c.rpc.call(ctx, MethodGetTokenHolders, req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *TokenClient) GetTokenHoldersCount(ctx context.Context, req *GetTokenHoldersCountRequest) (*GetTokenHoldersCountReply, error) {
	var reply GetTokenHoldersCountReply
	if err := c.rpc.call(ctx, MethodGetTokenHoldersCount, req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *TokenClient) GetTokenTransfers(ctx context.Context, req *GetTransfersRequest) (*GetTokenTransfersReply, error) {
	var reply GetTokenTransfersReply
	if err := c.rpc.call(ctx, MethodGetTokenTransfers, req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
