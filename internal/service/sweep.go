package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hance08/walletsync/internal/currency"
	"github.com/hance08/walletsync/internal/logx"
	"github.com/hance08/walletsync/internal/model"
)

// FixedUpdate sweeps the top wallets within the configured time budget.
// The deadline is checked before each account and before each write; when
// it passes, the accounts processed so far are returned with
// ErrSweepIncomplete. Accounts are visited once, in store order.
func (a *LitecoinAdapter) FixedUpdate(ctx context.Context, filter SweepFilter) (int, error) {
	filter = filter.withDefaults()
	if a.opts.SweepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.SweepTimeout)
		defer cancel()
	}

	start := time.Now()
	processed, err := a.sweep(ctx, filter)

	result := "complete"
	switch {
	case errors.Is(err, ErrSweepIncomplete):
		result = "incomplete"
	case err != nil:
		result = "error"
	}
	a.opts.Metrics.Sweep(a.Name(), result, time.Since(start))
	logx.Info("SWEEP", a.Name(), " processed=", processed, " result=", result, " in ", time.Since(start))

	return processed, err
}

func (a *LitecoinAdapter) sweep(ctx context.Context, filter SweepFilter) (int, error) {
	accounts, err := a.ledger.GetTopWallets(ctx, a.currency.ID, a.opts.TopWallets)
	if err != nil {
		return 0, fmt.Errorf("failed to load top wallets: %w", err)
	}

	processed := 0
	for _, acc := range accounts {
		if ctx.Err() != nil {
			return processed, ErrSweepIncomplete
		}

		complete, err := a.sweepAccount(ctx, acc, filter)
		if err != nil {
			if ctx.Err() != nil {
				return processed, ErrSweepIncomplete
			}
			logx.Warn("SWEEP", "skipping ", acc.Address, ": ", err)
			continue
		}
		if !complete {
			return processed, ErrSweepIncomplete
		}
		processed++
	}
	return processed, nil
}

// sweepAccount reports false when the deadline interrupted the page.
func (a *LitecoinAdapter) sweepAccount(ctx context.Context, acc *model.Account, filter SweepFilter) (bool, error) {
	balance, err := a.node.GetBalance(ctx, nodeAccount(acc))
	if err != nil {
		return false, err
	}
	if currency.EqualMajor(a.currency, balance, acc.LastBalance) {
		return true, nil
	}

	txs, err := a.node.ListTransactions(ctx, nodeAccount(acc), filter.Limit, filter.From)
	if err != nil {
		return false, err
	}

	var cursor int64
	for _, tx := range txs {
		if ctx.Err() != nil {
			return false, nil
		}
		if _, err := a.write(ctx, tx, currency.ToMinor(a.currency, tx.Amount)); err != nil {
			return false, err
		}
		cursor = tx.BlockIndex
	}

	acc.LastBalance = currency.ToMinor(a.currency, balance)
	// an empty page keeps the previous cursor
	if len(txs) > 0 {
		acc.AdvanceCursor(cursor)
	}
	if err := a.ledger.SaveAccountState(ctx, acc); err != nil {
		return false, err
	}
	return true, nil
}
