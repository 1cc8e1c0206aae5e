package ankr

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Blockchain identifies a chain supported by the API.
type Blockchain string

const (
	Ethereum  Blockchain = "eth"
	BSC       Blockchain = "bsc"
	Polygon   Blockchain = "polygon"
	Avalanche Blockchain = "avalanche"
	Arbitrum  Blockchain = "arbitrum"
	Fantom    Blockchain = "fantom"
	Optimism  Blockchain = "optimism"
)

// SupportedNetworks lists the chains advertised to clients, in display order.
var SupportedNetworks = []Blockchain{Ethereum, BSC, Polygon, Avalanche, Arbitrum, Fantom, Optimism}

// ContractType is the token standard of an NFT contract.
type ContractType string

const (
	ERC721  ContractType = "ERC721"
	ERC1155 ContractType = "ERC1155"
)

// TokenType distinguishes native coins from contract tokens in balances.
type TokenType string

const (
	NativeToken TokenType = "NATIVE"
	ERC20Token  TokenType = "ERC20"
)

// SyncStatus reports how far behind the chain head the indexer is.
type SyncStatus struct {
	Timestamp int64  `json:"timestamp"`
	Lag       string `json:"lag"`
	Status    string `json:"status"`
}

// IsAddress reports whether s is a 0x-prefixed 20 byte hex address.
func IsAddress(s string) bool {
	return common.IsHexAddress(s) && len(s) == 2+2*common.AddressLength
}

// IsTxHash reports whether s is a 0x-prefixed 32 byte hex hash.
func IsTxHash(s string) bool {
	b, err := hexutil.Decode(s)
	return err == nil && len(b) == common.HashLength
}
