package service

import (
	"context"
	"errors"

	"github.com/hance08/walletsync/internal/model"
	"github.com/hance08/walletsync/internal/store"
)

var (
	// ErrUnsupported is returned by capabilities a currency does not implement.
	ErrUnsupported = errors.New("operation not supported for this currency")

	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrSweepIncomplete means the sweep hit its deadline before visiting
	// every account. The processed count returned alongside it is valid.
	ErrSweepIncomplete = errors.New("sweep stopped at deadline")

	ErrUnknownEventType = errors.New("unknown event type")
)

// Ledger is the part of the store the adapters write through.
type Ledger interface {
	store.CurrencyRepository
	store.AccountRepository
	store.TransactionRepository
}

// Adapter is the capability set of one currency.
type Adapter interface {
	Name() string
	Currency() *model.Currency

	CheckAccount(ctx context.Context, acc *model.Account) (CheckResult, error)
	FixedUpdate(ctx context.Context, filter SweepFilter) (int, error)
	Update(ctx context.Context, ev Event) (IngestResult, error)

	Status(ctx context.Context) (bool, error)
	Version(ctx context.Context) (string, error)
	Balance(ctx context.Context, account string) (float64, error)
	NewAddress(ctx context.Context, account string) (string, error)
	AccountOf(ctx context.Context, address string) (string, error)
	NodeAccounts(ctx context.Context) (map[string]float64, error)
	NodeTransaction(ctx context.Context, txID string) ([]model.Observation, error)
	NodeTransactions(ctx context.Context, account string, limit, from int) ([]model.Observation, error)
	CreateAccount(ctx context.Context, guid, name string) (*model.Account, error)
	Send(ctx context.Context, address string, amountMinor int64) (string, error)
}

// CheckResult counts New outcomes (Updated) and non-None outcomes (Total).
type CheckResult struct {
	Updated int `json:"updated"`
	Total   int `json:"total"`
}

type SweepFilter struct {
	Limit int `json:"limit"`
	From  int `json:"from"`
}

func DefaultSweepFilter() SweepFilter {
	return SweepFilter{Limit: 10, From: 0}
}

func (f SweepFilter) withDefaults() SweepFilter {
	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.From < 0 {
		f.From = 0
	}
	return f
}

const (
	EventBlock  = "block"
	EventWallet = "wallet"
)

// Event is a node push: a new block or a wallet transaction.
type Event struct {
	Type string `json:"type"`
	Hash string `json:"hash"`
}

type IngestResult struct {
	Transactions int `json:"transactions"`
	Skipped      int `json:"skipped"`
	Unmatched    int `json:"unmatched"`
	Credited     int `json:"credited"`
	New          int `json:"new"`
	Failed       int `json:"failed"`
}

func nodeAccount(acc *model.Account) string {
	if acc.Name != "" {
		return acc.Name
	}
	return acc.Address
}
