package litecoin

import (
	"context"
	"errors"
	"fmt"

	"github.com/hance08/walletsync/internal/logx"
	"github.com/hance08/walletsync/internal/model"
	"github.com/hance08/walletsync/internal/node"
	"github.com/ltcsuite/ltcd/btcjson"
	"github.com/ltcsuite/ltcd/chaincfg"
	"github.com/ltcsuite/ltcd/chaincfg/chainhash"
	"github.com/ltcsuite/ltcd/ltcutil"
	"github.com/ltcsuite/ltcd/rpcclient"
)

type Config struct {
	Host       string
	User       string
	Pass       string
	Network    string
	DisableTLS bool
}

// Client talks to litecoind over JSON-RPC. rpcclient calls are not
// cancellable once issued, so ctx is only checked before each call.
type Client struct {
	rpc    *rpcclient.Client
	params *chaincfg.Params
}

var _ node.Client = (*Client)(nil)

func NetParams(network string) (*chaincfg.Params, error) {
	switch network {
	case "", "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet4":
		return &chaincfg.TestNet4Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("unknown litecoin network '%s'", network)
	}
}

func NewClient(cfg Config) (*Client, error) {
	params, err := NetParams(cfg.Network)
	if err != nil {
		return nil, err
	}

	rpc, err := rpcclient.New(&rpcclient.ConnConfig{
		Host:         cfg.Host,
		User:         cfg.User,
		Pass:         cfg.Pass,
		Params:       params.Name,
		HTTPPostMode: true,
		DisableTLS:   cfg.DisableTLS,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create litecoin rpc client: %w", err)
	}

	return &Client{rpc: rpc, params: params}, nil
}

func (c *Client) Close() {
	c.rpc.Shutdown()
}

func (c *Client) ListTransactions(ctx context.Context, account string, limit, from int) ([]model.Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = node.DefaultListLimit
	}
	if account == "" {
		account = "*"
	}

	results, err := c.rpc.ListTransactionsCountFrom(account, limit, from)
	if err != nil {
		return nil, fmt.Errorf("listtransactions %s: %w", account, err)
	}

	observations := make([]model.Observation, 0, len(results))
	for _, r := range results {
		height, err := c.resultHeight(ctx, r)
		if err != nil {
			return nil, err
		}
		observations = append(observations, model.Observation{
			BlockHash:     r.BlockHash,
			TxID:          r.TxID,
			BlockIndex:    height,
			Confirmations: r.Confirmations,
			To:            r.Address,
			Amount:        r.Amount,
		})
	}
	return observations, nil
}

// resultHeight prefers the blockheight field and falls back to a header
// lookup for daemons that omit it.
func (c *Client) resultHeight(ctx context.Context, r btcjson.ListTransactionsResult) (int64, error) {
	if r.BlockHeight != nil {
		return int64(*r.BlockHeight), nil
	}
	if r.BlockHash == "" {
		return 0, nil
	}
	return c.GetBlockHeight(ctx, r.BlockHash)
}

func (c *Client) GetBalance(ctx context.Context, account string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if account == "" {
		account = "*"
	}
	amount, err := c.rpc.GetBalance(account)
	if err != nil {
		return 0, fmt.Errorf("getbalance %s: %w", account, err)
	}
	return amount.ToBTC(), nil
}

func (c *Client) GetBlock(ctx context.Context, hash string) (*node.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h, err := chainhash.NewHashFromStr(hash)
	if err != nil {
		return nil, fmt.Errorf("invalid block hash '%s': %w", hash, err)
	}
	blk, err := c.rpc.GetBlockVerbose(h)
	if err != nil {
		return nil, fmt.Errorf("getblock %s: %w: %v", hash, node.ErrBlockNotFound, err)
	}
	return &node.Block{Hash: blk.Hash, Height: blk.Height, Tx: blk.Tx}, nil
}

func (c *Client) GetBlockHeight(ctx context.Context, hash string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	h, err := chainhash.NewHashFromStr(hash)
	if err != nil {
		return 0, fmt.Errorf("invalid block hash '%s': %w", hash, err)
	}
	header, err := c.rpc.GetBlockHeaderVerbose(h)
	if err != nil {
		return 0, fmt.Errorf("getblockheader %s: %w: %v", hash, node.ErrBlockNotFound, err)
	}
	return int64(header.Height), nil
}

func (c *Client) GetBlockCount(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return c.rpc.GetBlockCount()
}

func (c *Client) GetRawTransaction(ctx context.Context, txID string) (*node.RawTransaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h, err := chainhash.NewHashFromStr(txID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", node.ErrInvalidTransaction, txID, err)
	}
	raw, err := c.rpc.GetRawTransactionVerbose(h)
	if err != nil {
		logx.Debug("LITECOIN", "getrawtransaction ", txID, ": ", err)
		if isRejection(err) {
			return nil, fmt.Errorf("%w: %s: %v", node.ErrInvalidTransaction, txID, err)
		}
		return nil, fmt.Errorf("getrawtransaction %s: %w", txID, err)
	}

	tx := &node.RawTransaction{
		TxID:          raw.Txid,
		BlockHash:     raw.BlockHash,
		LockTime:      int64(raw.LockTime),
		Confirmations: int64(raw.Confirmations),
		Outputs:       make([]node.Output, 0, len(raw.Vout)),
	}
	for _, out := range raw.Vout {
		tx.Outputs = append(tx.Outputs, node.Output{
			Value:     out.Value,
			Addresses: out.ScriptPubKey.Addresses,
		})
	}
	return tx, nil
}

// isRejection reports whether the daemon answered and refused the txid, as
// opposed to the call never reaching it.
func isRejection(err error) bool {
	var rpcErr *btcjson.RPCError
	if !errors.As(err, &rpcErr) {
		return false
	}
	switch rpcErr.Code {
	case btcjson.ErrRPCNoTxInfo, btcjson.ErrRPCInvalidParameter, btcjson.ErrRPCDeserialization:
		return true
	}
	return false
}

func (c *Client) GetNetworkInfo(ctx context.Context) (*node.NetworkInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := c.rpc.GetNetworkInfo()
	if err != nil {
		return nil, fmt.Errorf("getnetworkinfo: %w", err)
	}
	return &node.NetworkInfo{NetworkActive: info.NetworkActive, Version: int64(info.Version)}, nil
}

func (c *Client) GetNewAddress(ctx context.Context, account string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	addr, err := c.rpc.GetNewAddress(account)
	if err != nil {
		return "", fmt.Errorf("getnewaddress: %w", err)
	}
	return addr.EncodeAddress(), nil
}

func (c *Client) GetAccount(ctx context.Context, address string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	addr, err := ltcutil.DecodeAddress(address, c.params)
	if err != nil {
		return "", fmt.Errorf("invalid address '%s': %w", address, err)
	}
	account, err := c.rpc.GetAccount(addr)
	if err != nil {
		return "", fmt.Errorf("getaccount %s: %w", address, err)
	}
	return account, nil
}

// ListAccounts returns the wallet balance of every account handle.
func (c *Client) ListAccounts(ctx context.Context) (map[string]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	accounts, err := c.rpc.ListAccounts()
	if err != nil {
		return nil, fmt.Errorf("listaccounts: %w", err)
	}
	balances := make(map[string]float64, len(accounts))
	for name, amount := range accounts {
		balances[name] = amount.ToBTC()
	}
	return balances, nil
}

// GetTransaction returns one observation per wallet-relevant receive of a
// wallet transaction.
func (c *Client) GetTransaction(ctx context.Context, txID string) ([]model.Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h, err := chainhash.NewHashFromStr(txID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", node.ErrInvalidTransaction, txID, err)
	}
	tx, err := c.rpc.GetTransaction(h)
	if err != nil {
		if isRejection(err) {
			return nil, fmt.Errorf("%w: %s: %v", node.ErrInvalidTransaction, txID, err)
		}
		return nil, fmt.Errorf("gettransaction %s: %w", txID, err)
	}

	var height int64
	if tx.BlockHash != "" {
		if height, err = c.GetBlockHeight(ctx, tx.BlockHash); err != nil {
			return nil, err
		}
	}

	var observations []model.Observation
	for _, d := range tx.Details {
		if d.Category != "receive" {
			continue
		}
		observations = append(observations, model.Observation{
			BlockHash:     tx.BlockHash,
			TxID:          tx.TxID,
			BlockIndex:    height,
			Confirmations: tx.Confirmations,
			To:            d.Address,
			Amount:        d.Amount,
		})
	}
	return observations, nil
}

func (c *Client) SendToAddress(ctx context.Context, address string, amount float64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	addr, err := ltcutil.DecodeAddress(address, c.params)
	if err != nil {
		return "", fmt.Errorf("invalid address '%s': %w", address, err)
	}
	amt, err := ltcutil.NewAmount(amount)
	if err != nil {
		return "", fmt.Errorf("invalid amount %v: %w", amount, err)
	}
	txHash, err := c.rpc.SendToAddress(addr, amt)
	if err != nil {
		return "", fmt.Errorf("sendtoaddress %s: %w", address, err)
	}
	return txHash.String(), nil
}
