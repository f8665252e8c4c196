package service

import (
	"context"
	"fmt"

	"github.com/hance08/walletsync/internal/model"
)

const RippleName = "xrp"

// RippleAdapter registers xrp as a known currency. No rippled client is
// wired, so every node-backed capability reports ErrUnsupported.
type RippleAdapter struct {
	currency *model.Currency
}

var _ Adapter = (*RippleAdapter)(nil)

func NewRippleAdapter(ctx context.Context, ledger Ledger) (*RippleAdapter, error) {
	c, err := ledger.GetCurrencyByName(ctx, RippleName)
	if err != nil {
		return nil, fmt.Errorf("failed to load currency %s: %w", RippleName, err)
	}
	return &RippleAdapter{currency: c}, nil
}

func (r *RippleAdapter) Name() string              { return r.currency.Name }
func (r *RippleAdapter) Currency() *model.Currency { return r.currency }

func (r *RippleAdapter) unsupported(op string) error {
	return fmt.Errorf("%s %s: %w", r.currency.Name, op, ErrUnsupported)
}

func (r *RippleAdapter) CheckAccount(context.Context, *model.Account) (CheckResult, error) {
	return CheckResult{}, r.unsupported("check")
}

func (r *RippleAdapter) FixedUpdate(context.Context, SweepFilter) (int, error) {
	return 0, r.unsupported("sweep")
}

func (r *RippleAdapter) Update(context.Context, Event) (IngestResult, error) {
	return IngestResult{}, r.unsupported("update")
}

func (r *RippleAdapter) Status(context.Context) (bool, error) {
	return false, r.unsupported("status")
}

func (r *RippleAdapter) Version(context.Context) (string, error) {
	return "", r.unsupported("version")
}

func (r *RippleAdapter) Balance(context.Context, string) (float64, error) {
	return 0, r.unsupported("balance")
}

func (r *RippleAdapter) NewAddress(context.Context, string) (string, error) {
	return "", r.unsupported("address")
}

func (r *RippleAdapter) AccountOf(context.Context, string) (string, error) {
	return "", r.unsupported("account")
}

func (r *RippleAdapter) NodeAccounts(context.Context) (map[string]float64, error) {
	return nil, r.unsupported("accounts")
}

func (r *RippleAdapter) NodeTransaction(context.Context, string) ([]model.Observation, error) {
	return nil, r.unsupported("transaction")
}

func (r *RippleAdapter) NodeTransactions(context.Context, string, int, int) ([]model.Observation, error) {
	return nil, r.unsupported("transactions")
}

func (r *RippleAdapter) CreateAccount(context.Context, string, string) (*model.Account, error) {
	return nil, r.unsupported("create account")
}

func (r *RippleAdapter) Send(context.Context, string, int64) (string, error) {
	return "", r.unsupported("send")
}
