package ankr

import (
	"context"
)

const (
	MethodGetNFTsByOwner  = "ankr_getNFTsByOwner"
	MethodGetNFTMetadata  = "ankr_getNFTMetadata"
	MethodGetNFTHolders   = "ankr_getNFTHolders"
	MethodGetNFTTransfers = "ankr_getNftTransfers"
)

type GetNFTsByOwnerRequest struct {
	WalletAddress string     `json:"walletAddress"`
	Blockchain    Blockchain `json:"blockchain,omitempty"`
	PageToken     string     `json:"pageToken,omitempty"`
	PageSize      int        `json:"pageSize,omitempty"`
}

type Trait struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

type Nft struct {
	Blockchain      Blockchain   `json:"blockchain"`
	Name            string       `json:"name"`
	TokenID         string       `json:"tokenId"`
	TokenURL        string       `json:"tokenUrl"`
	ImageURL        string       `json:"imageUrl"`
	CollectionName  string       `json:"collectionName"`
	Symbol          string       `json:"symbol"`
	ContractType    ContractType `json:"contractType"`
	ContractAddress string       `json:"contractAddress"`
	Quantity        string       `json:"quantity,omitempty"`
	Traits          []Trait      `json:"traits,omitempty"`
}

type GetNFTsByOwnerReply struct {
	Owner         string      `json:"owner"`
	Assets        []Nft       `json:"assets"`
	NextPageToken string      `json:"nextPageToken"`
	SyncStatus    *SyncStatus `json:"syncStatus,omitempty"`
}

type GetNFTMetadataRequest struct {
	Blockchain      Blockchain `json:"blockchain"`
	ContractAddress string     `json:"contractAddress"`
	TokenID         string     `json:"tokenId"`
	ForceFetch      bool       `json:"forceFetch"`
}

type NftMetadata struct {
	Blockchain      Blockchain   `json:"blockchain"`
	ContractAddress string       `json:"contractAddress"`
	TokenID         string       `json:"tokenId"`
	ContractType    ContractType `json:"contractType"`
}

type NftAttributes struct {
	ContractType ContractType `json:"contractType"`
	TokenURL     string       `json:"tokenUrl"`
	ImageURL     string       `json:"imageUrl"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Traits       []Trait      `json:"traits,omitempty"`
}

type GetNFTMetadataReply struct {
	Metadata   *NftMetadata   `json:"metadata"`
	Attributes *NftAttributes `json:"attributes"`
	SyncStatus *SyncStatus    `json:"syncStatus,omitempty"`
}

type GetNFTHoldersRequest struct {
	Blockchain      Blockchain `json:"blockchain"`
	ContractAddress string     `json:"contractAddress"`
	PageToken       string     `json:"pageToken,omitempty"`
	PageSize        int        `json:"pageSize,omitempty"`
}

type GetNFTHoldersReply struct {
	Holders       []string    `json:"holders"`
	NextPageToken string      `json:"nextPageToken"`
	SyncStatus    *SyncStatus `json:"syncStatus,omitempty"`
}

// GetTransfersRequest is shared by the NFT and token transfer methods.
// Address may hold contract and wallet addresses.
type GetTransfersRequest struct {
	Blockchain    Blockchain `json:"blockchain"`
	Address       []string   `json:"address,omitempty"`
	FromBlock     *int64     `json:"fromBlock,omitempty"`
	ToBlock       *int64     `json:"toBlock,omitempty"`
	FromTimestamp *int64     `json:"fromTimestamp,omitempty"`
	ToTimestamp   *int64     `json:"toTimestamp,omitempty"`
	DescOrder     *bool      `json:"descOrder,omitempty"`
	PageToken     string     `json:"pageToken,omitempty"`
	PageSize      int        `json:"pageSize,omitempty"`
}

type NftTransfer struct {
	Blockchain       Blockchain   `json:"blockchain"`
	FromAddress      string       `json:"fromAddress"`
	ToAddress        string       `json:"toAddress"`
	ContractAddress  string       `json:"contractAddress"`
	Value            string       `json:"value"`
	TokenID          string       `json:"tokenId"`
	Type             ContractType `json:"type"`
	CollectionName   string       `json:"collectionName"`
	CollectionSymbol string       `json:"collectionSymbol"`
	Name             string       `json:"name"`
	ImageURL         string       `json:"imageUrl"`
	TransactionHash  string       `json:"transactionHash"`
	BlockHeight      int64        `json:"blockHeight"`
	Timestamp        int64        `json:"timestamp"`
}

type GetNFTTransfersReply struct {
	Transfers     []NftTransfer `json:"transfers"`
	NextPageToken string        `json:"nextPageToken"`
	SyncStatus    *SyncStatus   `json:"syncStatus,omitempty"`
}

// NFTClient calls the NFT methods of the API.
type NFTClient struct {
	rpc *rpcClient
}

func (c *NFTClient) GetNFTsByOwner(ctx context.Context, req *GetNFTsByOwnerRequest) (*GetNFTsByOwnerReply, error) {
	var reply GetNFTsByOwnerReply
	if err := c.rpc.call(ctx, MethodGetNFTsByOwner, req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *NFTClient) GetNFTMetadata(ctx context.Context, req *GetNFTMetadataRequest) (*GetNFTMetadataReply, error) {
	var reply GetNFTMetadataReply
	if err := c.rpc.call(ctx, MethodGetNFTMetadata, req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *NFTClient) GetNFTHolders(ctx context.Context, req *GetNFTHoldersRequest) (*GetNFTHoldersReply, error) {
	var reply GetNFTHoldersReply
	if err := c.rpc.call(ctx, MethodGetNFTHolders, req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *NFTClient) GetNFTTransfers(ctx context.Context, req *GetTransfersRequest) (*GetNFTTransfersReply, error) {
	var reply GetNFTTransfersReply
	if err := c.rpc.call(ctx, MethodGetNFTTransfers, req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
