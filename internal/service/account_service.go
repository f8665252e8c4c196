package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hance08/walletsync/internal/model"
	"github.com/hance08/walletsync/internal/store"
)

var ErrAccountNotTracked = errors.New("account is not tracked")

type AccountService struct {
	repo     Ledger
	registry *Registry
}

func NewAccountService(repo Ledger, registry *Registry) *AccountService {
	return &AccountService{repo: repo, registry: registry}
}

func (as *AccountService) currency(name string) (*model.Currency, error) {
	adapter, err := as.registry.Get(name)
	if err != nil {
		return nil, err
	}
	return adapter.Currency(), nil
}

func (as *AccountService) GetAccount(ctx context.Context, currencyName, address string) (*model.Account, error) {
	c, err := as.currency(currencyName)
	if err != nil {
		return nil, err
	}
	acc, err := as.repo.GetAccountByAddress(ctx, c.ID, address)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s %s: %w", c.Name, address, ErrAccountNotTracked)
	}
	return acc, err
}

func (as *AccountService) ListAccounts(ctx context.Context, currencyName string) ([]*model.Account, error) {
	c, err := as.currency(currencyName)
	if err != nil {
		return nil, err
	}
	return as.repo.ListAccounts(ctx, c.ID)
}

func (as *AccountService) ListTransactions(ctx context.Context, currencyName, address string, limit int) ([]*store.TransactionRecord, error) {
	c, err := as.currency(currencyName)
	if err != nil {
		return nil, err
	}
	return as.repo.ListTransactions(ctx, c.ID, address, limit)
}
