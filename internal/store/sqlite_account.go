package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hance08/walletsync/internal/model"
)

const accountColumns = "id, currency_id, owner_guid, address, name, last_balance, last_block, created_at, updated_at"

// AddOrUpdateAccount registers an address for an owner. An existing address
// keeps its cursor unless the new start block is ahead of it, and cannot be
// handed to a different owner.
func (s *Store) AddOrUpdateAccount(ctx context.Context, in AccountInput) (*model.Account, error) {
	if strings.TrimSpace(in.Address) == "" {
		return nil, fmt.Errorf("account address is required: %w", ErrConstraintViolation)
	}

	now := s.now().Unix()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (currency_id, owner_guid, address, name, last_balance, last_block, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (currency_id, address) DO UPDATE SET
			name         = excluded.name,
			last_balance = excluded.last_balance,
			last_block   = MAX(accounts.last_block, excluded.last_block),
			updated_at   = excluded.updated_at
		WHERE accounts.owner_guid = excluded.owner_guid
	`, in.CurrencyID, in.OwnerGUID, in.Address, in.Name, in.Balance, in.StartBlock, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert account '%s': %w", in.Address, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("address '%s' belongs to another owner: %w", in.Address, ErrAccountExists)
	}

	return s.GetAccountByAddress(ctx, in.CurrencyID, in.Address)
}

// SaveAccountState persists the balance and cursor held on acc.
func (s *Store) SaveAccountState(ctx context.Context, acc *model.Account) error {
	now := s.now()
	result, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET last_balance = ?, last_block = MAX(last_block, ?), updated_at = ?
		WHERE id = ?
	`, acc.LastBalance, acc.LastBlock, now.Unix(), acc.ID)
	if err != nil {
		return fmt.Errorf("failed to save account state: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("account with ID %d: %w", acc.ID, ErrRecordNotFound)
	}

	acc.UpdatedAt = now
	return nil
}

func (s *Store) GetAccountByAddress(ctx context.Context, currencyID int64, address string) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE currency_id = ? AND address = ?",
		currencyID, address)

	acc, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account '%s': %w", address, ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to query account '%s': %w", address, err)
	}
	return acc, nil
}

// GetAccounts resolves many addresses in one query. Unknown addresses are
// absent from the returned map.
func (s *Store) GetAccounts(ctx context.Context, currencyID int64, addresses []string) (map[string]*model.Account, error) {
	result := make(map[string]*model.Account)
	if len(addresses) == 0 {
		return result, nil
	}

	seen := make(map[string]bool, len(addresses))
	args := []any{currencyID}
	placeholders := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		if seen[addr] {
			continue
		}
		seen[addr] = true
		args = append(args, addr)
		placeholders = append(placeholders, "?")
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE currency_id = ? AND address IN ("+strings.Join(placeholders, ", ")+")",
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	accounts, err := scanAccounts(rows)
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		result[acc.Address] = acc
	}
	return result, nil
}

// GetTopWallets returns the sweep scope: the highest cached balances first,
// then the most recently touched.
func (s *Store) GetTopWallets(ctx context.Context, currencyID int64, limit int) ([]*model.Account, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE currency_id = ?
		ORDER BY last_balance DESC, updated_at DESC, id
		LIMIT ?
	`, currencyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top wallets: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanAccounts(rows)
}

func (s *Store) ListAccounts(ctx context.Context, currencyID int64) ([]*model.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+accountColumns+" FROM accounts WHERE currency_id = ? ORDER BY address",
		currencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	return scanAccounts(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*model.Account, error) {
	acc := &model.Account{}
	var createdAt, updatedAt int64
	err := row.Scan(
		&acc.ID, &acc.CurrencyID, &acc.OwnerGUID,
		&acc.Address, &acc.Name, &acc.LastBalance,
		&acc.LastBlock, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	acc.CreatedAt = time.Unix(createdAt, 0)
	acc.UpdatedAt = time.Unix(updatedAt, 0)
	return acc, nil
}

func scanAccounts(rows *sql.Rows) ([]*model.Account, error) {
	var accounts []*model.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}
