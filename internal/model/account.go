package model

import "time"

// Account is a tracked wallet address owned by a downstream user.
// LastBalance is held in minor units and LastBlock is the reconciliation
// cursor (block height).
type Account struct {
	ID          int64
	CurrencyID  int64
	OwnerGUID   string
	Address     string
	Name        string // account handle on the node
	LastBalance int64
	LastBlock   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AdvanceCursor moves LastBlock forward. Lower heights are ignored so the
// cursor never goes backwards.
func (a *Account) AdvanceCursor(height int64) {
	if height > a.LastBlock {
		a.LastBlock = height
	}
}
