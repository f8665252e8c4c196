package model

// Deposit is one credited transaction reported to the wallet API.
type Deposit struct {
	Amount        int64  `json:"amount"`
	Confirmations int64  `json:"confirmations"`
	GUID          string `json:"guid"`
	Address       string `json:"address"`
}

type DepositBatch struct {
	Currency     string    `json:"currency"`
	Transactions []Deposit `json:"transactions"`
}
