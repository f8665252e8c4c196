package store

import (
	"context"

	"github.com/hance08/walletsync/internal/model"
)

type CurrencyRepository interface {
	GetCurrencyByName(ctx context.Context, name string) (*model.Currency, error)
}

type AccountRepository interface {
	AddOrUpdateAccount(ctx context.Context, in AccountInput) (*model.Account, error)
	SaveAccountState(ctx context.Context, acc *model.Account) error
	GetAccounts(ctx context.Context, currencyID int64, addresses []string) (map[string]*model.Account, error)
	GetAccountByAddress(ctx context.Context, currencyID int64, address string) (*model.Account, error)
	GetTopWallets(ctx context.Context, currencyID int64, limit int) ([]*model.Account, error)
	ListAccounts(ctx context.Context, currencyID int64) ([]*model.Account, error)
}

type TransactionRepository interface {
	AddOrUpdateTransaction(ctx context.Context, rec TransactionRecord) (model.WriteOutcome, error)
	ListTransactions(ctx context.Context, currencyID int64, address string, limit int) ([]*TransactionRecord, error)
}

// Repository is the ledger store consumed by the currency adapters.
type Repository interface {
	CurrencyRepository
	AccountRepository
	TransactionRepository

	Close() error
}
