package service

import (
	"context"
	"errors"
	"testing"

	"github.com/hance08/walletsync/internal/model"
	"github.com/hance08/walletsync/internal/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multiOutputTx() *node.RawTransaction {
	return &node.RawTransaction{
		TxID:          "tx-multi",
		BlockHash:     "bh-300",
		Confirmations: 2,
		LockTime:      0,
		Outputs: []node.Output{
			{Value: 0.00000003, Addresses: []string{"A"}},
			{Value: 0.00000005, Addresses: []string{"B"}},
			{Value: 0.00000007, Addresses: []string{"C"}},
		},
	}
}

func TestUpdateCreditsFirstMatchingOutput(t *testing.T) {
	b := &model.Account{Address: "B", Name: "user-b"}
	c := &model.Account{Address: "C", Name: "user-c"}
	ledger := newFakeLedger(b, c)
	n := newFakeNode()
	n.raw["tx-multi"] = multiOutputTx()
	n.heights["bh-300"] = 300
	n.balances["user-b"] = 0.00000005
	notifier := &recordingNotifier{}
	a := newTestAdapter(t, ledger, n, AdapterOptions{Notifier: notifier})

	res, err := a.Update(context.Background(), Event{Type: EventWallet, Hash: "tx-multi"})
	require.NoError(t, err)
	assert.Equal(t, IngestResult{Transactions: 1, Credited: 1, New: 1}, res)

	writes := ledger.written()
	require.Len(t, writes, 1)
	assert.Equal(t, "B", writes[0].Address)
	assert.Equal(t, int64(5), writes[0].Amount)
	assert.Equal(t, int64(300), writes[0].BlockIndex)

	assert.Equal(t, int64(5), b.LastBalance)
	assert.Equal(t, int64(300), b.LastBlock)
	assert.Zero(t, c.LastBlock)
	assert.Empty(t, notifier.received())
}

func TestUpdateCreditAllOutputs(t *testing.T) {
	b := &model.Account{Address: "B", Name: "user-b"}
	c := &model.Account{Address: "C", Name: "user-c"}
	ledger := newFakeLedger(b, c)
	n := newFakeNode()
	n.raw["tx-multi"] = multiOutputTx()
	n.heights["bh-300"] = 300
	a := newTestAdapter(t, ledger, n, AdapterOptions{CreditAllOutputs: true})

	res, err := a.Update(context.Background(), Event{Type: EventWallet, Hash: "tx-multi"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Credited)

	writes := ledger.written()
	require.Len(t, writes, 2)
	assert.Equal(t, "B", writes[0].Address)
	assert.Equal(t, "C", writes[1].Address)
	assert.Equal(t, int64(7), writes[1].Amount)
}

func TestUpdateBlockUsesBlockHeight(t *testing.T) {
	acc := &model.Account{Address: "B", Name: "user-b", LastBlock: 100}
	ledger := newFakeLedger(acc)
	n := newFakeNode()
	n.blocks["block-1"] = &node.Block{Hash: "block-1", Height: 420, Tx: []string{"tx-multi", "tx-bad", "tx-other"}}
	n.raw["tx-multi"] = multiOutputTx()
	n.raw["tx-other"] = &node.RawTransaction{TxID: "tx-other", Outputs: []node.Output{{Value: 1, Addresses: []string{"Z"}}}}
	a := newTestAdapter(t, ledger, n, AdapterOptions{})

	res, err := a.Update(context.Background(), Event{Type: EventBlock, Hash: "block-1"})
	require.NoError(t, err)
	assert.Equal(t, IngestResult{Transactions: 3, Skipped: 1, Unmatched: 1, Credited: 1, New: 1}, res)
	assert.Equal(t, int64(420), acc.LastBlock)
	assert.Equal(t, int64(420), ledger.written()[0].BlockIndex)
}

func TestUpdateUnconfirmedKeepsCursor(t *testing.T) {
	acc := &model.Account{Address: "B", Name: "user-b", LastBlock: 100}
	ledger := newFakeLedger(acc)
	n := newFakeNode()
	tx := multiOutputTx()
	tx.BlockHash = ""
	tx.Confirmations = 0
	tx.LockTime = 2_000_000
	n.raw["tx-multi"] = tx
	a := newTestAdapter(t, ledger, n, AdapterOptions{})

	_, err := a.Update(context.Background(), Event{Type: EventWallet, Hash: "tx-multi"})
	require.NoError(t, err)
	assert.Equal(t, int64(100), acc.LastBlock)
	assert.Equal(t, int64(0), ledger.written()[0].BlockIndex)
}

func TestUpdateReplayIsNotNew(t *testing.T) {
	ledger := newFakeLedger(&model.Account{Address: "B", Name: "user-b"})
	n := newFakeNode()
	n.raw["tx-multi"] = multiOutputTx()
	n.heights["bh-300"] = 300
	a := newTestAdapter(t, ledger, n, AdapterOptions{})

	ev := Event{Type: EventWallet, Hash: "tx-multi"}
	_, err := a.Update(context.Background(), ev)
	require.NoError(t, err)
	res, err := a.Update(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Credited)
	assert.Zero(t, res.New)
}

func TestUpdateInvalidInput(t *testing.T) {
	a := newTestAdapter(t, newFakeLedger(), newFakeNode(), AdapterOptions{})

	_, err := a.Update(context.Background(), Event{Type: "mempool", Hash: "x"})
	assert.ErrorIs(t, err, ErrUnknownEventType)

	_, err = a.Update(context.Background(), Event{Type: EventBlock, Hash: "missing"})
	assert.ErrorIs(t, err, node.ErrBlockNotFound)

	res, err := a.Update(context.Background(), Event{Type: EventWallet, Hash: "missing"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)
}

func TestUpdateSurfacesNodeOutage(t *testing.T) {
	b := &model.Account{Address: "B", Name: "user-b"}
	ledger := newFakeLedger(b)
	n := newFakeNode()
	n.raw["tx-multi"] = multiOutputTx()
	n.rawErr = errors.New("connection refused")
	a := newTestAdapter(t, ledger, n, AdapterOptions{})

	res, err := a.Update(context.Background(), Event{Type: EventWallet, Hash: "tx-multi"})
	assert.Error(t, err)
	assert.Equal(t, 1, res.Failed)
	assert.Zero(t, res.Skipped)
	assert.Empty(t, ledger.written())
}

func TestCheckAfterIngestSendsNoNotification(t *testing.T) {
	b := &model.Account{Address: "B", Name: "user-b", OwnerGUID: "guid-b"}
	ledger := newFakeLedger(b)
	n := newFakeNode()
	n.raw["tx-multi"] = multiOutputTx()
	n.heights["bh-300"] = 300
	n.balances["user-b"] = 0.00000005
	n.txs["user-b"] = []model.Observation{
		{TxID: "tx-multi", BlockHash: "bh-300", BlockIndex: 300, Confirmations: 2, To: "B", Amount: 0.00000005},
	}
	notifier := &recordingNotifier{}
	a := newTestAdapter(t, ledger, n, AdapterOptions{Notifier: notifier})

	res, err := a.Update(context.Background(), Event{Type: EventWallet, Hash: "tx-multi"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.New)

	// the row is already recorded, so the check reports no new credit
	check, err := a.CheckAccount(context.Background(), b)
	require.NoError(t, err)
	assert.Zero(t, check.Updated)
	assert.Empty(t, notifier.received())
}
