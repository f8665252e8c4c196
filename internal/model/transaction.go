package model

// Observation is a transaction as reported by a node for one address.
// Amount is in the node's display unit.
type Observation struct {
	BlockHash     string
	TxID          string
	BlockIndex    int64
	Confirmations int64
	From          string
	To            string
	Amount        float64
	Memo          string
}

// WriteOutcome is the result of an idempotent ledger write.
type WriteOutcome int

const (
	// OutcomeNone means the (txid, address) pair was already recorded as-is.
	OutcomeNone WriteOutcome = iota
	// OutcomeExists means the record was touched but is not a new credit.
	OutcomeExists
	// OutcomeNew means a new credit was recorded.
	OutcomeNew
)

func (o WriteOutcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeExists:
		return "exists"
	case OutcomeNew:
		return "new"
	default:
		return "unknown"
	}
}
