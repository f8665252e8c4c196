package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hance08/walletsync/internal/currency"
	"github.com/hance08/walletsync/internal/logx"
	"github.com/hance08/walletsync/internal/model"
	"github.com/hance08/walletsync/internal/node"
)

type credit struct {
	account *model.Account
	address string
	amount  float64
}

// Update ingests a node push. Every transaction whose outputs pay a known
// account is written through the ledger, and the account balance and cursor
// are refreshed. Nothing is notified from here.
func (a *LitecoinAdapter) Update(ctx context.Context, ev Event) (IngestResult, error) {
	var result IngestResult

	var (
		txIDs  []string
		height int64 = -1
	)
	switch ev.Type {
	case EventBlock:
		block, err := a.node.GetBlock(ctx, ev.Hash)
		if err != nil {
			return result, err
		}
		txIDs = block.Tx
		height = block.Height
	case EventWallet:
		txIDs = []string{ev.Hash}
	default:
		return result, fmt.Errorf("%w: '%s'", ErrUnknownEventType, ev.Type)
	}

	var errs []error
	for _, txID := range txIDs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		result.Transactions++

		tx, err := a.node.GetRawTransaction(ctx, txID)
		if err != nil {
			if errors.Is(err, node.ErrInvalidTransaction) {
				result.Skipped++
				a.opts.Metrics.IngestSkip(a.Name(), "invalid")
				continue
			}
			result.Failed++
			errs = append(errs, err)
			continue
		}

		credits, err := a.resolveCredits(ctx, tx)
		if err != nil {
			result.Failed++
			errs = append(errs, err)
			continue
		}
		if len(credits) == 0 {
			result.Unmatched++
			a.opts.Metrics.IngestSkip(a.Name(), "unmatched")
			continue
		}

		cursor, err := a.txHeight(ctx, tx, height)
		if err != nil {
			result.Failed++
			errs = append(errs, err)
			continue
		}

		for _, c := range credits {
			outcome, err := a.applyCredit(ctx, tx, c, cursor)
			if err != nil {
				result.Failed++
				errs = append(errs, err)
				continue
			}
			result.Credited++
			if outcome == model.OutcomeNew {
				result.New++
			}
		}
	}

	logx.Info("INGEST", a.Name(), " ", ev.Type, " ", ev.Hash,
		" txs=", result.Transactions, " credited=", result.Credited, " new=", result.New,
		" skipped=", result.Skipped, " unmatched=", result.Unmatched)
	return result, errors.Join(errs...)
}

// resolveCredits matches output addresses against known accounts with one
// batch lookup. By default only the first matching output counts; with
// CreditAllOutputs every matched address gets the sum of its outputs.
func (a *LitecoinAdapter) resolveCredits(ctx context.Context, tx *node.RawTransaction) ([]credit, error) {
	var addresses []string
	for _, out := range tx.Outputs {
		addresses = append(addresses, out.Addresses...)
	}
	if len(addresses) == 0 {
		return nil, nil
	}

	accounts, err := a.ledger.GetAccounts(ctx, a.currency.ID, addresses)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve outputs of %s: %w", tx.TxID, err)
	}

	var credits []credit
	index := make(map[string]int)
	for _, out := range tx.Outputs {
		for _, addr := range out.Addresses {
			acc, ok := accounts[addr]
			if !ok {
				continue
			}
			if !a.opts.CreditAllOutputs {
				return []credit{{account: acc, address: addr, amount: out.Value}}, nil
			}
			if i, seen := index[addr]; seen {
				credits[i].amount += out.Value
				continue
			}
			index[addr] = len(credits)
			credits = append(credits, credit{account: acc, address: addr, amount: out.Value})
		}
	}
	return credits, nil
}

// txHeight is the height of the block holding tx, or -1 while unconfirmed.
func (a *LitecoinAdapter) txHeight(ctx context.Context, tx *node.RawTransaction, blockHeight int64) (int64, error) {
	if blockHeight >= 0 {
		return blockHeight, nil
	}
	if tx.BlockHash == "" {
		return -1, nil
	}
	return a.node.GetBlockHeight(ctx, tx.BlockHash)
}

func (a *LitecoinAdapter) applyCredit(ctx context.Context, tx *node.RawTransaction, c credit, cursor int64) (model.WriteOutcome, error) {
	index := cursor
	if index < 0 {
		index = 0
	}
	outcome, err := a.write(ctx, model.Observation{
		BlockHash:     tx.BlockHash,
		TxID:          tx.TxID,
		BlockIndex:    index,
		Confirmations: tx.Confirmations,
		To:            c.address,
	}, currency.ToMinor(a.currency, c.amount))
	if err != nil {
		return outcome, err
	}

	balance, err := a.node.GetBalance(ctx, nodeAccount(c.account))
	if err != nil {
		return outcome, fmt.Errorf("failed to refresh balance of %s: %w", c.address, err)
	}
	c.account.LastBalance = currency.ToMinor(a.currency, balance)
	if cursor >= 0 {
		c.account.AdvanceCursor(cursor)
	}
	if err := a.ledger.SaveAccountState(ctx, c.account); err != nil {
		return outcome, err
	}
	return outcome, nil
}
