package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hance08/walletsync/internal/currency"
	"github.com/hance08/walletsync/internal/logx"
	"github.com/hance08/walletsync/internal/metrics"
	"github.com/hance08/walletsync/internal/model"
	"github.com/hance08/walletsync/internal/node"
	"github.com/hance08/walletsync/internal/notify"
	"github.com/hance08/walletsync/internal/store"
)

const LitecoinName = "ltc"

type AdapterOptions struct {
	// CheckLimit is the listtransactions count used by CheckAccount.
	CheckLimit int
	// TopWallets bounds the sweep scope.
	TopWallets int
	// SweepTimeout is the wall-clock budget of one FixedUpdate.
	SweepTimeout time.Duration
	// CreditAllOutputs records one credit per matched address instead of
	// only the first matched output of a pushed transaction.
	CreditAllOutputs bool

	Notifier notify.Notifier
	Metrics  *metrics.Metrics
}

// LitecoinAdapter reconciles litecoind wallets against the ledger.
type LitecoinAdapter struct {
	node     node.Client
	ledger   Ledger
	currency *model.Currency
	opts     AdapterOptions
}

var _ Adapter = (*LitecoinAdapter)(nil)

func NewLitecoinAdapter(ctx context.Context, ledger Ledger, client node.Client, opts AdapterOptions) (*LitecoinAdapter, error) {
	c, err := ledger.GetCurrencyByName(ctx, LitecoinName)
	if err != nil {
		return nil, fmt.Errorf("failed to load currency %s: %w", LitecoinName, err)
	}
	if opts.CheckLimit <= 0 {
		opts.CheckLimit = node.DefaultListLimit
	}
	if opts.TopWallets <= 0 {
		opts.TopWallets = 100
	}
	return &LitecoinAdapter{node: client, ledger: ledger, currency: c, opts: opts}, nil
}

func (a *LitecoinAdapter) Name() string {
	return a.currency.Name
}

func (a *LitecoinAdapter) Currency() *model.Currency {
	return a.currency
}

// write records one observation through the idempotent ledger path.
func (a *LitecoinAdapter) write(ctx context.Context, o model.Observation, amount int64) (model.WriteOutcome, error) {
	outcome, err := a.ledger.AddOrUpdateTransaction(ctx, store.TransactionRecord{
		CurrencyID:    a.currency.ID,
		TxID:          o.TxID,
		Address:       o.To,
		From:          o.From,
		BlockHash:     o.BlockHash,
		BlockIndex:    o.BlockIndex,
		Confirmations: o.Confirmations,
		Amount:        amount,
		Memo:          o.Memo,
	})
	if err != nil {
		return model.OutcomeNone, fmt.Errorf("failed to record %s/%s: %w", o.TxID, o.To, err)
	}
	a.opts.Metrics.Write(a.Name(), outcome)
	return outcome, nil
}

func (a *LitecoinAdapter) Status(ctx context.Context) (bool, error) {
	info, err := a.node.GetNetworkInfo(ctx)
	if err != nil {
		return false, err
	}
	return info.NetworkActive, nil
}

// Version returns "" when the node does not answer.
func (a *LitecoinAdapter) Version(ctx context.Context) (string, error) {
	info, err := a.node.GetNetworkInfo(ctx)
	if err != nil {
		logx.Warn("LITECOIN", "getnetworkinfo failed: ", err)
		return "", nil
	}
	return strconv.FormatInt(info.Version, 10), nil
}

func (a *LitecoinAdapter) Balance(ctx context.Context, account string) (float64, error) {
	return a.node.GetBalance(ctx, account)
}

func (a *LitecoinAdapter) NewAddress(ctx context.Context, account string) (string, error) {
	return a.node.GetNewAddress(ctx, account)
}

func (a *LitecoinAdapter) AccountOf(ctx context.Context, address string) (string, error) {
	return a.node.GetAccount(ctx, address)
}

// NodeAccounts lists the daemon's wallet accounts with their balances.
func (a *LitecoinAdapter) NodeAccounts(ctx context.Context) (map[string]float64, error) {
	return a.node.ListAccounts(ctx)
}

func (a *LitecoinAdapter) NodeTransaction(ctx context.Context, txID string) ([]model.Observation, error) {
	return a.node.GetTransaction(ctx, txID)
}

// NodeTransactions pages through what the daemon lists for an account
// without touching the ledger.
func (a *LitecoinAdapter) NodeTransactions(ctx context.Context, account string, limit, from int) ([]model.Observation, error) {
	return a.node.ListTransactions(ctx, account, limit, from)
}

// CreateAccount issues a new address for name and registers it for guid,
// starting the cursor at the current chain height.
func (a *LitecoinAdapter) CreateAccount(ctx context.Context, guid, name string) (*model.Account, error) {
	address, err := a.node.GetNewAddress(ctx, name)
	if err != nil {
		return nil, err
	}
	handle, err := a.node.GetAccount(ctx, address)
	if err != nil {
		return nil, err
	}
	balance, err := a.node.GetBalance(ctx, handle)
	if err != nil {
		return nil, err
	}
	height, err := a.node.GetBlockCount(ctx)
	if err != nil {
		return nil, err
	}

	acc, err := a.ledger.AddOrUpdateAccount(ctx, store.AccountInput{
		CurrencyID: a.currency.ID,
		OwnerGUID:  guid,
		Address:    address,
		Name:       handle,
		Balance:    currency.ToMinor(a.currency, balance),
		StartBlock: height,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register account %s: %w", address, err)
	}
	logx.Info("LITECOIN", "created account ", address, " for ", guid, " at height ", height)
	return acc, nil
}

func (a *LitecoinAdapter) Send(ctx context.Context, address string, amountMinor int64) (string, error) {
	if amountMinor <= 0 {
		return "", fmt.Errorf("amount must be positive, got %d", amountMinor)
	}
	amount, _ := currency.ToMajor(a.currency, amountMinor).Float64()
	txID, err := a.node.SendToAddress(ctx, address, amount)
	if err != nil {
		return "", err
	}
	logx.Info("LITECOIN", "sent ", currency.Format(a.currency, amountMinor), " to ", address, " in ", txID)
	return txID, nil
}
