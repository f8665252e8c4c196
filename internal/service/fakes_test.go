package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/hance08/walletsync/internal/model"
	"github.com/hance08/walletsync/internal/node"
	"github.com/hance08/walletsync/internal/store"
)

var (
	ltc = &model.Currency{ID: 1, Name: "ltc", MinorScale: 8}
	xrp = &model.Currency{ID: 2, Name: "xrp", MinorScale: 6}
)

// fakeLedger is an in-memory ledger with the same tri-state write rules as
// the sqlite store.
type fakeLedger struct {
	mu       sync.Mutex
	accounts []*model.Account
	txs      map[string]store.TransactionRecord
	writes   []store.TransactionRecord
	saves    int
	inputs   []store.AccountInput
	writeErr map[string]error
}

func newFakeLedger(accounts ...*model.Account) *fakeLedger {
	for i, acc := range accounts {
		acc.ID = int64(i + 1)
		if acc.CurrencyID == 0 {
			acc.CurrencyID = ltc.ID
		}
	}
	return &fakeLedger{accounts: accounts, txs: make(map[string]store.TransactionRecord)}
}

func (l *fakeLedger) GetCurrencyByName(_ context.Context, name string) (*model.Currency, error) {
	switch name {
	case ltc.Name:
		return ltc, nil
	case xrp.Name:
		return xrp, nil
	}
	return nil, store.ErrRecordNotFound
}

func (l *fakeLedger) AddOrUpdateAccount(_ context.Context, in store.AccountInput) (*model.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inputs = append(l.inputs, in)
	acc := &model.Account{
		ID:          int64(len(l.accounts) + 1),
		CurrencyID:  in.CurrencyID,
		OwnerGUID:   in.OwnerGUID,
		Address:     in.Address,
		Name:        in.Name,
		LastBalance: in.Balance,
		LastBlock:   in.StartBlock,
	}
	l.accounts = append(l.accounts, acc)
	return acc, nil
}

func (l *fakeLedger) SaveAccountState(_ context.Context, _ *model.Account) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.saves++
	return nil
}

func (l *fakeLedger) GetAccounts(_ context.Context, currencyID int64, addresses []string) (map[string]*model.Account, error) {
	found := make(map[string]*model.Account)
	for _, addr := range addresses {
		for _, acc := range l.accounts {
			if acc.CurrencyID == currencyID && acc.Address == addr {
				found[addr] = acc
			}
		}
	}
	return found, nil
}

func (l *fakeLedger) GetAccountByAddress(_ context.Context, currencyID int64, address string) (*model.Account, error) {
	for _, acc := range l.accounts {
		if acc.CurrencyID == currencyID && acc.Address == address {
			return acc, nil
		}
	}
	return nil, fmt.Errorf("account %s: %w", address, store.ErrRecordNotFound)
}

func (l *fakeLedger) GetTopWallets(_ context.Context, currencyID int64, limit int) ([]*model.Account, error) {
	var top []*model.Account
	for _, acc := range l.accounts {
		if acc.CurrencyID == currencyID && len(top) < limit {
			top = append(top, acc)
		}
	}
	return top, nil
}

func (l *fakeLedger) ListAccounts(ctx context.Context, currencyID int64) ([]*model.Account, error) {
	return l.GetTopWallets(ctx, currencyID, len(l.accounts))
}

func (l *fakeLedger) AddOrUpdateTransaction(_ context.Context, rec store.TransactionRecord) (model.WriteOutcome, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.writeErr[rec.TxID]; err != nil {
		return model.OutcomeNone, err
	}
	l.writes = append(l.writes, rec)

	key := rec.TxID + "|" + rec.Address
	existing, ok := l.txs[key]
	l.txs[key] = rec
	switch {
	case !ok:
		return model.OutcomeNew, nil
	case existing == rec:
		return model.OutcomeNone, nil
	default:
		return model.OutcomeExists, nil
	}
}

func (l *fakeLedger) ListTransactions(_ context.Context, currencyID int64, address string, _ int) ([]*store.TransactionRecord, error) {
	var out []*store.TransactionRecord
	for _, rec := range l.txs {
		if rec.CurrencyID == currencyID && rec.Address == address {
			rec := rec
			out = append(out, &rec)
		}
	}
	return out, nil
}

func (l *fakeLedger) written() []store.TransactionRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]store.TransactionRecord(nil), l.writes...)
}

// fakeNode serves canned wallet data keyed by node account handle.
type fakeNode struct {
	mu         sync.Mutex
	txs        map[string][]model.Observation
	balances   map[string]float64
	balanceErr map[string]error
	blocks     map[string]*node.Block
	raw        map[string]*node.RawTransaction
	rawErr     error
	heights    map[string]int64
	blockCount int64
	addresses  []string
	sent       []float64

	listCalls    map[string]int
	balanceCalls map[string]int
	onList       func(account string)
}

func newFakeNode() *fakeNode {
	return &fakeNode{
		txs:          make(map[string][]model.Observation),
		balances:     make(map[string]float64),
		balanceErr:   make(map[string]error),
		blocks:       make(map[string]*node.Block),
		raw:          make(map[string]*node.RawTransaction),
		heights:      make(map[string]int64),
		listCalls:    make(map[string]int),
		balanceCalls: make(map[string]int),
	}
}

func (n *fakeNode) ListTransactions(_ context.Context, account string, limit, from int) ([]model.Observation, error) {
	n.mu.Lock()
	n.listCalls[account]++
	txs := n.txs[account]
	hook := n.onList
	n.mu.Unlock()

	if hook != nil {
		hook(account)
	}
	if from >= len(txs) {
		return nil, nil
	}
	txs = txs[from:]
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	return txs, nil
}

func (n *fakeNode) GetBalance(_ context.Context, account string) (float64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.balanceCalls[account]++
	if err := n.balanceErr[account]; err != nil {
		return 0, err
	}
	return n.balances[account], nil
}

func (n *fakeNode) GetBlock(_ context.Context, hash string) (*node.Block, error) {
	b, ok := n.blocks[hash]
	if !ok {
		return nil, node.ErrBlockNotFound
	}
	return b, nil
}

func (n *fakeNode) GetBlockHeight(_ context.Context, hash string) (int64, error) {
	h, ok := n.heights[hash]
	if !ok {
		return 0, node.ErrBlockNotFound
	}
	return h, nil
}

func (n *fakeNode) GetBlockCount(context.Context) (int64, error) {
	return n.blockCount, nil
}

func (n *fakeNode) GetRawTransaction(_ context.Context, txID string) (*node.RawTransaction, error) {
	if n.rawErr != nil {
		return nil, n.rawErr
	}
	tx, ok := n.raw[txID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", node.ErrInvalidTransaction, txID)
	}
	return tx, nil
}

func (n *fakeNode) GetNetworkInfo(context.Context) (*node.NetworkInfo, error) {
	return &node.NetworkInfo{NetworkActive: true, Version: 210201}, nil
}

func (n *fakeNode) GetNewAddress(context.Context, string) (string, error) {
	if len(n.addresses) == 0 {
		return "", fmt.Errorf("keypool exhausted")
	}
	addr := n.addresses[0]
	n.addresses = n.addresses[1:]
	return addr, nil
}

func (n *fakeNode) GetAccount(_ context.Context, address string) (string, error) {
	return "handle-" + address, nil
}

func (n *fakeNode) ListAccounts(context.Context) (map[string]float64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	accounts := make(map[string]float64, len(n.balances))
	for name, balance := range n.balances {
		accounts[name] = balance
	}
	return accounts, nil
}

func (n *fakeNode) GetTransaction(_ context.Context, txID string) ([]model.Observation, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []model.Observation
	for _, txs := range n.txs {
		for _, tx := range txs {
			if tx.TxID == txID {
				out = append(out, tx)
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", node.ErrInvalidTransaction, txID)
	}
	return out, nil
}

func (n *fakeNode) SendToAddress(_ context.Context, _ string, amount float64) (string, error) {
	n.sent = append(n.sent, amount)
	return "sent-tx", nil
}

func (n *fakeNode) Close() {}

func (n *fakeNode) calls(m map[string]int, account string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return m[account]
}

type recordingNotifier struct {
	mu      sync.Mutex
	batches []model.DepositBatch
}

func (r *recordingNotifier) Notify(batch model.DepositBatch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, batch)
}

func (r *recordingNotifier) received() []model.DepositBatch {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.DepositBatch(nil), r.batches...)
}
