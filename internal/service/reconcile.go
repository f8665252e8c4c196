package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hance08/walletsync/internal/currency"
	"github.com/hance08/walletsync/internal/logx"
	"github.com/hance08/walletsync/internal/model"
)

// CheckAccount writes every transaction the node lists for acc. Each New
// outcome yields one deposit and refreshes the balance; the cursor only moves
// when that refresh succeeded. Failed writes and refreshes are collected and
// the remaining transactions are still processed. Deposits are handed to the
// notifier once, after the loop, and acc is persisted when it changed.
func (a *LitecoinAdapter) CheckAccount(ctx context.Context, acc *model.Account) (CheckResult, error) {
	var result CheckResult

	txs, err := a.node.ListTransactions(ctx, nodeAccount(acc), a.opts.CheckLimit, 0)
	if err != nil {
		return result, fmt.Errorf("failed to list transactions for %s: %w", acc.Address, err)
	}

	batch := model.DepositBatch{Currency: a.Name()}
	var errs []error

	for _, tx := range txs {
		amount := currency.ToMinor(a.currency, tx.Amount)
		outcome, err := a.write(ctx, tx, amount)
		if err != nil {
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if outcome != model.OutcomeNone {
			result.Total++
		}
		if outcome != model.OutcomeNew {
			continue
		}

		result.Updated++
		balance, err := a.node.GetBalance(ctx, nodeAccount(acc))
		if err != nil {
			logx.Warn("CHECK", "balance refresh failed for ", acc.Address, ": ", err)
			errs = append(errs, fmt.Errorf("failed to refresh balance for %s: %w", acc.Address, err))
		} else {
			acc.LastBalance = currency.ToMinor(a.currency, balance)
			acc.AdvanceCursor(tx.BlockIndex)
		}

		batch.Transactions = append(batch.Transactions, model.Deposit{
			Amount:        amount,
			Confirmations: tx.Confirmations,
			GUID:          acc.OwnerGUID,
			Address:       tx.To,
		})
	}

	if result.Updated > 0 {
		if err := a.ledger.SaveAccountState(ctx, acc); err != nil {
			errs = append(errs, err)
		}
	}
	if len(batch.Transactions) > 0 && a.opts.Notifier != nil {
		a.opts.Notifier.Notify(batch)
	}

	logx.Debug("CHECK", acc.Address, " updated=", result.Updated, " total=", result.Total)
	return result, errors.Join(errs...)
}
