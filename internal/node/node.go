package node

import (
	"context"
	"errors"

	"github.com/hance08/walletsync/internal/model"
)

var (
	// ErrInvalidTransaction is returned when the node answers a raw
	// transaction lookup with an error instead of a decoded transaction.
	ErrInvalidTransaction = errors.New("node returned no decodable transaction")

	ErrBlockNotFound = errors.New("block not found")
)

// Block is the part of a block the ingestor needs.
type Block struct {
	Hash   string
	Height int64
	Tx     []string
}

type Output struct {
	Value     float64
	Addresses []string
}

// RawTransaction is a decoded transaction. BlockHash is empty while the
// transaction is unconfirmed.
type RawTransaction struct {
	TxID          string
	BlockHash     string
	LockTime      int64
	Confirmations int64
	Outputs       []Output
}

type NetworkInfo struct {
	NetworkActive bool
	Version       int64
}

// Client is the RPC facade of one currency daemon. Observation.BlockIndex is
// the height of the block containing the transaction, 0 while unconfirmed.
type Client interface {
	ListTransactions(ctx context.Context, account string, limit, from int) ([]model.Observation, error)
	GetBalance(ctx context.Context, account string) (float64, error)
	GetBlock(ctx context.Context, hash string) (*Block, error)
	GetBlockHeight(ctx context.Context, hash string) (int64, error)
	GetBlockCount(ctx context.Context) (int64, error)
	GetRawTransaction(ctx context.Context, txID string) (*RawTransaction, error)
	GetNetworkInfo(ctx context.Context) (*NetworkInfo, error)
	GetNewAddress(ctx context.Context, account string) (string, error)
	GetAccount(ctx context.Context, address string) (string, error)
	ListAccounts(ctx context.Context) (map[string]float64, error)
	GetTransaction(ctx context.Context, txID string) ([]model.Observation, error)
	SendToAddress(ctx context.Context, address string, amount float64) (string, error)
	Close()
}

// DefaultListLimit mirrors the daemon's own listtransactions default.
const DefaultListLimit = 10
