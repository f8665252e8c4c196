package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hance08/walletsync/internal/model"
)

const transactionColumns = "id, currency_id, txid, address, from_address, block_hash, block_index, confirmations, amount, memo, created_at, updated_at"

// AddOrUpdateTransaction is the idempotent ledger write. A first sighting of
// (txid, address) is OutcomeNew, a changed sighting is OutcomeExists and an
// identical one is OutcomeNone.
func (s *Store) AddOrUpdateTransaction(ctx context.Context, rec TransactionRecord) (model.WriteOutcome, error) {
	if rec.TxID == "" || rec.Address == "" {
		return model.OutcomeNone, fmt.Errorf("txid and address are required: %w", ErrConstraintViolation)
	}

	outcome := model.OutcomeNone
	err := s.ExecTx(ctx, func(tx *Store) error {
		existing, err := tx.getTransaction(ctx, rec.CurrencyID, rec.TxID, rec.Address)
		if errors.Is(err, ErrRecordNotFound) {
			if err := tx.insertTransaction(ctx, rec); err != nil {
				return err
			}
			outcome = model.OutcomeNew
			return nil
		}
		if err != nil {
			return err
		}

		if existing.sameAs(rec) {
			outcome = model.OutcomeNone
			return nil
		}

		if err := tx.updateTransaction(ctx, existing.ID, rec); err != nil {
			return err
		}
		outcome = model.OutcomeExists
		return nil
	})
	if err != nil {
		return model.OutcomeNone, err
	}
	return outcome, nil
}

func (s *Store) getTransaction(ctx context.Context, currencyID int64, txID, address string) (*TransactionRecord, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE currency_id = ? AND txid = ? AND address = ?",
		currencyID, txID, address)

	rec, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s/%s: %w", txID, address, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query transaction %s: %w", txID, err)
	}
	return rec, nil
}

func (s *Store) insertTransaction(ctx context.Context, rec TransactionRecord) error {
	now := s.now().Unix()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (currency_id, txid, address, from_address, block_hash, block_index, confirmations, amount, memo, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.CurrencyID, rec.TxID, rec.Address, rec.From, rec.BlockHash, rec.BlockIndex,
		rec.Confirmations, rec.Amount, rec.Memo, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("transaction %s/%s: %w", rec.TxID, rec.Address, ErrConstraintViolation)
		}
		return fmt.Errorf("failed to insert transaction : %w", err)
	}
	return nil
}

func (s *Store) updateTransaction(ctx context.Context, id int64, rec TransactionRecord) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET block_hash = ?, block_index = ?, confirmations = ?, amount = ?, memo = ?,
			from_address = COALESCE(NULLIF(?, ''), from_address), updated_at = ?
		WHERE id = ?
	`, rec.BlockHash, rec.BlockIndex, rec.Confirmations, rec.Amount, rec.Memo,
		rec.From, s.now().Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

// ListTransactions returns the newest ledger rows for an address.
func (s *Store) ListTransactions(ctx context.Context, currencyID int64, address string, limit int) ([]*TransactionRecord, error) {
	if limit <= 0 {
		limit = 100 // Default limit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE currency_id = ? AND address = ?
		ORDER BY block_index DESC, id DESC
		LIMIT ?
	`, currencyID, address, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []*TransactionRecord
	for rows.Next() {
		rec, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanTransaction(row rowScanner) (*TransactionRecord, error) {
	rec := &TransactionRecord{}
	var createdAt, updatedAt int64
	err := row.Scan(
		&rec.ID, &rec.CurrencyID, &rec.TxID, &rec.Address, &rec.From,
		&rec.BlockHash, &rec.BlockIndex, &rec.Confirmations, &rec.Amount,
		&rec.Memo, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt = time.Unix(createdAt, 0)
	rec.UpdatedAt = time.Unix(updatedAt, 0)
	return rec, nil
}
