package ankr

import (
	"context"
)

const (
	MethodGetBlockchainStats       = "ankr_getBlockchainStats"
	MethodGetBlocks                = "ankr_getBlocks"
	MethodGetLogs                  = "ankr_getLogs"
	MethodGetTransactionsByHash    = "ankr_getTransactionsByHash"
	MethodGetTransactionsByAddress = "ankr_getTransactionsByAddress"
	MethodGetInteractions          = "ankr_getInteractions"
)

type GetBlockchainStatsRequest struct {
	Blockchain Blockchain `json:"blockchain,omitempty"`
}

type BlockchainStats struct {
	Blockchain             Blockchain `json:"blockchain"`
	TotalTransactionsCount int64      `json:"totalTransactionsCount"`
	TotalEventsCount       int64      `json:"totalEventsCount"`
	LatestBlockNumber      int64      `json:"latestBlockNumber"`
	BlockTimeMs            int64      `json:"blockTimeMs"`
	NativeCoinUsdPrice     string     `json:"nativeCoinUsdPrice"`
}

type GetBlockchainStatsReply struct {
	Stats      []BlockchainStats `json:"stats"`
	SyncStatus *SyncStatus       `json:"syncStatus,omitempty"`
}

type GetBlocksRequest struct {
	Blockchain   Blockchain `json:"blockchain"`
	FromBlock    *int64     `json:"fromBlock,omitempty"`
	ToBlock      *int64     `json:"toBlock,omitempty"`
	DescOrder    *bool      `json:"descOrder,omitempty"`
	IncludeLogs  bool       `json:"includeLogs,omitempty"`
	IncludeTxs   bool       `json:"includeTxs,omitempty"`
	DecodeLogs   bool       `json:"decodeLogs,omitempty"`
	DecodeTxData bool       `json:"decodeTxData,omitempty"`
}

type Block struct {
	Blockchain       Blockchain    `json:"blockchain"`
	Number           string        `json:"number"`
	Hash             string        `json:"hash"`
	ParentHash       string        `json:"parentHash"`
	Nonce            string        `json:"nonce"`
	Miner            string        `json:"miner"`
	Difficulty       string        `json:"difficulty"`
	Size             string        `json:"size"`
	GasLimit         string        `json:"gasLimit"`
	GasUsed          string        `json:"gasUsed"`
	Timestamp        string        `json:"timestamp"`
	TransactionsRoot string        `json:"transactionsRoot"`
	Transactions     []Transaction `json:"transactions,omitempty"`
}

type GetBlocksReply struct {
	Blocks     []Block     `json:"blocks"`
	SyncStatus *SyncStatus `json:"syncStatus,omitempty"`
}

type GetLogsRequest struct {
	Blockchain Blockchain `json:"blockchain"`
	FromBlock  *int64     `json:"fromBlock,omitempty"`
	ToBlock    *int64     `json:"toBlock,omitempty"`
	Address    []string   `json:"address,omitempty"`
	Topics     []string   `json:"topics,omitempty"`
	DescOrder  *bool      `json:"descOrder,omitempty"`
	DecodeLogs bool       `json:"decodeLogs,omitempty"`
	PageToken  string     `json:"pageToken,omitempty"`
	PageSize   int        `json:"pageSize,omitempty"`
}

type EventInput struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Indexed      bool   `json:"indexed"`
	ValueDecoded string `json:"valueDecoded"`
}

type Event struct {
	Name      string       `json:"name"`
	Signature string       `json:"signature"`
	ID        string       `json:"id"`
	Verified  bool         `json:"verified"`
	Inputs    []EventInput `json:"inputs"`
}

type Log struct {
	Blockchain       Blockchain `json:"blockchain"`
	Address          string     `json:"address"`
	Topics           []string   `json:"topics"`
	Data             string     `json:"data"`
	BlockNumber      string     `json:"blockNumber"`
	BlockHash        string     `json:"blockHash"`
	TransactionHash  string     `json:"transactionHash"`
	TransactionIndex string     `json:"transactionIndex"`
	LogIndex         string     `json:"logIndex"`
	Removed          bool       `json:"removed"`
	Timestamp        string     `json:"timestamp"`
	Event            *Event     `json:"event,omitempty"`
}

type GetLogsReply struct {
	Logs          []Log       `json:"logs"`
	NextPageToken string      `json:"nextPageToken"`
	SyncStatus    *SyncStatus `json:"syncStatus,omitempty"`
}

type GetTransactionsByHashRequest struct {
	Blockchain      Blockchain `json:"blockchain,omitempty"`
	TransactionHash string     `json:"transactionHash"`
	IncludeLogs     bool       `json:"includeLogs,omitempty"`
	DecodeLogs      bool       `json:"decodeLogs,omitempty"`
	DecodeTxData    bool       `json:"decodeTxData,omitempty"`
}

type Transaction struct {
	Blockchain        Blockchain `json:"blockchain"`
	Hash              string     `json:"hash"`
	From              string     `json:"from"`
	To                string     `json:"to"`
	Value             string     `json:"value"`
	Gas               string     `json:"gas"`
	GasPrice          string     `json:"gasPrice"`
	GasUsed           string     `json:"gasUsed"`
	CumulativeGasUsed string     `json:"cumulativeGasUsed"`
	Input             string     `json:"input"`
	Nonce             string     `json:"nonce"`
	BlockNumber       string     `json:"blockNumber"`
	BlockHash         string     `json:"blockHash"`
	TransactionIndex  string     `json:"transactionIndex"`
	ContractAddress   string     `json:"contractAddress,omitempty"`
	Status            string     `json:"status"`
	Type              string     `json:"type"`
	Timestamp         string     `json:"timestamp"`
	Logs              []Log      `json:"logs,omitempty"`
}

type GetTransactionsReply struct {
	Transactions  []Transaction `json:"transactions"`
	NextPageToken string        `json:"nextPageToken"`
	SyncStatus    *SyncStatus   `json:"syncStatus,omitempty"`
}

type GetTransactionsByAddressRequest struct {
	Blockchain  Blockchain `json:"blockchain"`
	Address     []string   `json:"address"`
	FromBlock   *int64     `json:"fromBlock,omitempty"`
	ToBlock     *int64     `json:"toBlock,omitempty"`
	DescOrder   *bool      `json:"descOrder,omitempty"`
	IncludeLogs bool       `json:"includeLogs,omitempty"`
	PageToken   string     `json:"pageToken,omitempty"`
	PageSize    int        `json:"pageSize,omitempty"`
}

type GetInteractionsRequest struct {
	Address string `json:"address"`
}

type GetInteractionsReply struct {
	Blockchains []Blockchain `json:"blockchains"`
	SyncStatus  *SyncStatus  `json:"syncStatus,omitempty"`
}

// QueryClient calls the chain query methods of the API.
type QueryClient struct {
	rpc *rpcClient
}

// GetBlockchainStats returns the per-chain statistics without their
// envelope.
func (c *QueryClient) GetBlockchainStats(ctx context.Context, req *GetBlockchainStatsRequest) ([]BlockchainStats, error) {
	var reply GetBlockchainStatsReply
	if err := c.rpc.call(ctx, MethodGetBlockchainStats, req, &reply); err != nil {
		return nil, err
	}
	return reply.Stats, nil
}

func (c *QueryClient) GetBlocks(ctx context.Context, req *GetBlocksRequest) (*GetBlocksReply, error) {
	var reply GetBlocksReply
	if err := c.rpc.call(ctx, MethodGetBlocks, req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *QueryClient) GetLogs(ctx context.Context, req *GetLogsRequest) (*GetLogsReply, error) {
	var reply GetLogsReply
	if err := c.rpc.call(ctx, MethodGetLogs, req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// GetTransaction returns the first transaction matching the hash, or nil
// when the API knows none.
func (c *QueryClient) GetTransaction(ctx context.Context, req *GetTransactionsByHashRequest) (*Transaction, error) {
	var reply GetTransactionsReply
	if err := c.rpc.call(ctx, MethodGetTransactionsByHash, req, &reply); err != nil {
		return nil, err
	}
	if len(reply.Transactions) == 0 {
		return nil, nil
	}
	return &reply.Transactions[0], nil
}

func (c *QueryClient) GetTransactionsByAddress(ctx context.Context, req *GetTransactionsByAddressRequest) (*GetTransactionsReply, error) {
	var reply GetTransactionsReply
	if err := c.rpc.call(ctx, MethodGetTransactionsByAddress, req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *QueryClient) GetInteractions(ctx context.Context, req *GetInteractionsRequest) (*GetInteractionsReply, error) {
	var reply GetInteractionsReply
	if err := c.rpc.call(ctx, MethodGetInteractions, req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
