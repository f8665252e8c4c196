package store

import "time"

// TransactionRecord is one (txid, address) row of the ledger.
// Amount is in minor units.
type TransactionRecord struct {
	ID            int64
	CurrencyID    int64
	TxID          string
	Address       string
	From          string
	BlockHash     string
	BlockIndex    int64
	Confirmations int64
	Amount        int64
	Memo          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r *TransactionRecord) sameAs(o TransactionRecord) bool {
	return r.BlockHash == o.BlockHash &&
		r.BlockIndex == o.BlockIndex &&
		r.Confirmations == o.Confirmations &&
		r.Amount == o.Amount &&
		r.Memo == o.Memo &&
		(o.From == "" || r.From == o.From)
}

type AccountInput struct {
	CurrencyID int64
	OwnerGUID  string
	Address    string
	Name       string
	Balance    int64
	StartBlock int64
}
