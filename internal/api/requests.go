package api

import (
	"errors"
	"fmt"
	"strings"

	"web3-mcp/internal/ankr"
)

// Page size limits per operation family.
const (
	DefaultPageSize       = 50
	MaxPageSize           = 100
	DefaultCurrenciesSize = 20
	MaxCurrenciesSize     = 50
	MaxBlocksPageSize     = 500
)

type NFTsByOwnerRequest struct {
	WalletAddress string `json:"wallet_address" jsonschema:"Wallet address to query NFTs for (hex string 0x...)"`
	Blockchain    string `json:"blockchain,omitempty" jsonschema:"Chain to query such as eth or polygon. All supported chains when empty"`
	PageToken     string `json:"page_token,omitempty" jsonschema:"Token from a previous response to fetch the next page"`
	PageSize      int    `json:"page_size,omitempty" jsonschema:"Number of NFTs per page (max 100)"`
}

type NFTMetadataRequest struct {
	Blockchain      string `json:"blockchain" jsonschema:"Chain to query such as eth or polygon"`
	ContractAddress string `json:"contract_address" jsonschema:"NFT contract address (hex string 0x...)"`
	TokenID         string `json:"token_id" jsonschema:"Token ID of the NFT as a decimal string"`
}

type NFTHoldersRequest struct {
	Blockchain      string `json:"blockchain" jsonschema:"Chain to query such as eth or polygon"`
	ContractAddress string `json:"contract_address" jsonschema:"NFT collection contract address (hex string 0x...)"`
	PageToken       string `json:"page_token,omitempty" jsonschema:"Token from a previous response to fetch the next page"`
	PageSize        int    `json:"page_size,omitempty" jsonschema:"Number of holders per page (max 100)"`
}

type NFTTransfersRequest struct {
	Blockchain      string `json:"blockchain" jsonschema:"Chain to query such as eth or polygon"`
	ContractAddress string `json:"contract_address,omitempty" jsonschema:"NFT contract address to filter transfers by"`
	TokenID         string `json:"token_id,omitempty" jsonschema:"Only keep transfers of this token ID on the returned page"`
	WalletAddress   string `json:"wallet_address,omitempty" jsonschema:"Wallet address to filter transfers by"`
	FromBlock       *int64 `json:"from_block,omitempty" jsonschema:"First block to include"`
	ToBlock         *int64 `json:"to_block,omitempty" jsonschema:"Last block to include"`
	PageToken       string `json:"page_token,omitempty" jsonschema:"Token from a previous response to fetch the next page"`
	PageSize        int    `json:"page_size,omitempty" jsonschema:"Number of transfers per page (max 100)"`
}

type AccountBalanceRequest struct {
	WalletAddress string `json:"wallet_address" jsonschema:"Wallet address to query token balances for (hex string 0x...)"`
	Blockchain    string `json:"blockchain,omitempty" jsonschema:"Chain to query such as eth or polygon. All supported chains when empty"`
	PageToken     string `json:"page_token,omitempty" jsonschema:"Token from a previous response to fetch the next page"`
	PageSize      int    `json:"page_size,omitempty" jsonschema:"Number of balances per page (max 100)"`
	ERC20Only     bool   `json:"erc20_only,omitempty" jsonschema:"Only return ERC-20 token balances"`
	NativeOnly    bool   `json:"native_only,omitempty" jsonschema:"Only return native coin balances"`
	TokensOnly    bool   `json:"tokens_only,omitempty" jsonschema:"Only return fungible tokens and leave out NFTs"`
}

type CurrenciesRequest struct {
	Blockchain string `json:"blockchain,omitempty" jsonschema:"Chain to query such as eth or polygon. All chains when empty"`
	PageToken  string `json:"page_token,omitempty" jsonschema:"Accepted for symmetry with other lists. The currency list is not paginated upstream"`
	PageSize   int    `json:"page_size,omitempty" jsonschema:"Number of currencies to return (default 20 and max 50)"`
}

type TokenPriceRequest struct {
	Blockchain      string `json:"blockchain" jsonschema:"Chain to query such as eth or polygon"`
	ContractAddress string `json:"contract_address" jsonschema:"Token contract address (hex string 0x...)"`
}

type TokenHoldersRequest struct {
	Blockchain      string `json:"blockchain" jsonschema:"Chain to query such as eth or polygon"`
	ContractAddress string `json:"contract_address" jsonschema:"Token contract address (hex string 0x...)"`
	PageToken       string `json:"page_token,omitempty" jsonschema:"Token from a previous response to fetch the next page"`
	PageSize        int    `json:"page_size,omitempty" jsonschema:"Number of holders per page (max 100)"`
}

type TokenHoldersCountRequest struct {
	Blockchain      string `json:"blockchain" jsonschema:"Chain to query such as eth or polygon"`
	ContractAddress string `json:"contract_address" jsonschema:"Token contract address (hex string 0x...)"`
}

type TokenTransfersRequest struct {
	Blockchain      string `json:"blockchain" jsonschema:"Chain to query such as eth or polygon"`
	ContractAddress string `json:"contract_address,omitempty" jsonschema:"Token contract address to filter transfers by"`
	WalletAddress   string `json:"wallet_address,omitempty" jsonschema:"Wallet address to filter transfers by. Ignored when a contract address is given"`
	TokenID         string `json:"token_id,omitempty" jsonschema:"Only keep transfers of this token ID on the returned page"`
	FromBlock       *int64 `json:"from_block,omitempty" jsonschema:"First block to include"`
	ToBlock         *int64 `json:"to_block,omitempty" jsonschema:"Last block to include"`
	PageToken       string `json:"page_token,omitempty" jsonschema:"Token from a previous response to fetch the next page"`
	PageSize        int    `json:"page_size,omitempty" jsonschema:"Number of transfers per page (max 100)"`
}

type BlockchainStatsRequest struct {
	Blockchain string `json:"blockchain" jsonschema:"Chain to query such as eth or polygon"`
}

type BlocksRequest struct {
	Blockchain      string `json:"blockchain" jsonschema:"Chain to query such as eth or polygon"`
	FromBlock       *int64 `json:"from_block,omitempty" jsonschema:"First block to include"`
	ToBlock         *int64 `json:"to_block,omitempty" jsonschema:"Last block to include"`
	DescendingOrder *bool  `json:"descending_order,omitempty" jsonschema:"Return the newest blocks first"`
	PageToken       string `json:"page_token,omitempty" jsonschema:"Accepted for symmetry with other lists. Blocks are selected by range"`
	PageSize        int    `json:"page_size,omitempty" jsonschema:"Number of blocks to return (max 500)"`
}

type LogsRequest struct {
	Blockchain      string   `json:"blockchain" jsonschema:"Chain to query such as eth or polygon"`
	FromBlock       *int64   `json:"from_block,omitempty" jsonschema:"First block to include"`
	ToBlock         *int64   `json:"to_block,omitempty" jsonschema:"Last block to include"`
	Address         string   `json:"address,omitempty" jsonschema:"Contract address that emitted the logs"`
	Topics          []string `json:"topics,omitempty" jsonschema:"Topics to match"`
	DescendingOrder *bool    `json:"descending_order,omitempty" jsonschema:"Return the newest logs first"`
	PageToken       string   `json:"page_token,omitempty" jsonschema:"Token from a previous response to fetch the next page"`
	PageSize        int      `json:"page_size,omitempty" jsonschema:"Number of logs per page (max 100)"`
}

type TransactionsByHashRequest struct {
	Blockchain      string `json:"blockchain" jsonschema:"Chain to query such as eth or polygon"`
	TransactionHash string `json:"transaction_hash" jsonschema:"Transaction hash (32 byte hex string 0x...)"`
}

type TransactionsByAddressRequest struct {
	Blockchain      string `json:"blockchain" jsonschema:"Chain to query such as eth or polygon"`
	WalletAddress   string `json:"wallet_address" jsonschema:"Wallet address whose transactions to list"`
	FromBlock       *int64 `json:"from_block,omitempty" jsonschema:"First block to include"`
	ToBlock         *int64 `json:"to_block,omitempty" jsonschema:"Last block to include"`
	DescendingOrder *bool  `json:"descending_order,omitempty" jsonschema:"Return the newest transactions first"`
	PageToken       string `json:"page_token,omitempty" jsonschema:"Token from a previous response to fetch the next page"`
	PageSize        int    `json:"page_size,omitempty" jsonschema:"Number of transactions per page (max 100)"`
}

type InteractionsRequest struct {
	Blockchain      string `json:"blockchain" jsonschema:"Chain the caller is interested in. The upstream answers for all chains"`
	WalletAddress   string `json:"wallet_address" jsonschema:"Wallet address whose interactions to list"`
	ContractAddress string `json:"contract_address,omitempty" jsonschema:"Not used upstream and kept for compatibility"`
	FromBlock       *int64 `json:"from_block,omitempty" jsonschema:"Not used upstream and kept for compatibility"`
	ToBlock         *int64 `json:"to_block,omitempty" jsonschema:"Not used upstream and kept for compatibility"`
	PageToken       string `json:"page_token,omitempty" jsonschema:"Not used upstream and kept for compatibility"`
	PageSize        int    `json:"page_size,omitempty" jsonschema:"Number of chains to return (max 100)"`
}

// requireAddress checks that value is a well-formed address. name is the
// request field it came from.
func requireAddress(name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%s is required", name)
	}
	if !ankr.IsAddress(value) {
		return fmt.Errorf("%s %q is not a valid address", name, value)
	}
	return nil
}

// optionalAddress is requireAddress for fields that may be left empty.
func optionalAddress(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return requireAddress(name, value)
}

var errBlockchainRequired = errors.New("blockchain is required")

func requireBlockchain(value string) error {
	if strings.TrimSpace(value) == "" {
		return errBlockchainRequired
	}
	return nil
}

func blockchain(value string) ankr.Blockchain {
	return ankr.Blockchain(strings.ToLower(strings.TrimSpace(value)))
}

// addresses returns the non-empty values as an upstream address filter.
func addresses(values ...string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
