package litecoin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/hance08/walletsync/internal/node"
	"github.com/ltcsuite/ltcd/btcjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
	ID     json.RawMessage   `json:"id"`
}

type recorder struct {
	mu   sync.Mutex
	reqs []rpcRequest
}

func (r *recorder) add(req rpcRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, req)
}

func (r *recorder) all() []rpcRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]rpcRequest(nil), r.reqs...)
}

// fakeDaemon answers JSON-RPC calls from a method -> result table.
func fakeDaemon(t *testing.T, results map[string]string, seen *recorder) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if seen != nil {
			seen.add(req)
		}
		w.Header().Set("Content-Type", "application/json")
		result, ok := results[req.Method]
		if !ok {
			_, _ = w.Write([]byte(`{"result":null,"error":{"code":-5,"message":"No such mempool or blockchain transaction"},"id":` + string(req.ID) + `}`))
			return
		}
		_, _ = w.Write([]byte(`{"result":` + result + `,"error":null,"id":` + string(req.ID) + `}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{
		Host:       strings.TrimPrefix(srv.URL, "http://"),
		User:       "user",
		Pass:       "pass",
		Network:    "regtest",
		DisableTLS: true,
	})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestNetParams(t *testing.T) {
	p, err := NetParams("")
	require.NoError(t, err)
	assert.Equal(t, "mainnet", p.Name)

	_, err = NetParams("moonnet")
	assert.Error(t, err)
}

func TestListTransactionsMapsObservations(t *testing.T) {
	seen := &recorder{}
	c := fakeDaemon(t, map[string]string{
		"listtransactions": `[{"account":"user-1","address":"Laddr1","amount":0.05,"blockhash":"bh1","blockheight":2500000,"category":"receive","confirmations":3,"txid":"tx1","time":1,"timereceived":1,"vout":0,"walletconflicts":[]}]`,
	}, seen)

	obs, err := c.ListTransactions(context.Background(), "user-1", 0, 0)
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.Equal(t, "tx1", obs[0].TxID)
	assert.Equal(t, "Laddr1", obs[0].To)
	assert.Equal(t, int64(2500000), obs[0].BlockIndex)
	assert.Equal(t, int64(3), obs[0].Confirmations)
	assert.InDelta(t, 0.05, obs[0].Amount, 1e-12)

	reqs := seen.all()
	require.Len(t, reqs, 1)
	require.Len(t, reqs[0].Params, 3)
	assert.JSONEq(t, `10`, string(reqs[0].Params[1]))
}

func TestGetRawTransactionErrorIsInvalid(t *testing.T) {
	c := fakeDaemon(t, map[string]string{}, nil)

	_, err := c.GetRawTransaction(context.Background(), strings.Repeat("ab", 32))
	assert.ErrorIs(t, err, node.ErrInvalidTransaction)

	_, err = c.GetRawTransaction(context.Background(), "not-a-hash")
	assert.ErrorIs(t, err, node.ErrInvalidTransaction)
}

func TestGetRawTransactionTransportErrorIsNotInvalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{
		Host:       strings.TrimPrefix(srv.URL, "http://"),
		Network:    "regtest",
		DisableTLS: true,
	})
	require.NoError(t, err)
	t.Cleanup(c.Close)

	_, err = c.GetRawTransaction(context.Background(), strings.Repeat("ab", 32))
	require.Error(t, err)
	assert.NotErrorIs(t, err, node.ErrInvalidTransaction)
}

func TestIsRejection(t *testing.T) {
	assert.True(t, isRejection(btcjson.NewRPCError(btcjson.ErrRPCNoTxInfo, "No such mempool or blockchain transaction")))
	assert.True(t, isRejection(fmt.Errorf("wrapped: %w", btcjson.NewRPCError(btcjson.ErrRPCInvalidParameter, "bad"))))
	assert.False(t, isRejection(btcjson.NewRPCError(btcjson.ErrRPCInWarmup, "Loading block index")))
	assert.False(t, isRejection(errors.New("dial tcp 127.0.0.1:1: connect: connection refused")))
}

func TestListAccounts(t *testing.T) {
	c := fakeDaemon(t, map[string]string{
		"listaccounts": `{"":0.5,"user-1":1.25}`,
	}, nil)

	accounts, err := c.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1.25, accounts["user-1"], 1e-12)
	assert.InDelta(t, 0.5, accounts[""], 1e-12)
}

func TestGetTransactionKeepsReceives(t *testing.T) {
	blockHash := strings.Repeat("cd", 32)
	c := fakeDaemon(t, map[string]string{
		"gettransaction": `{"amount":0.05,"confirmations":4,"blockhash":"` + blockHash + `","blockindex":3,"blocktime":1,"txid":"tx1","walletconflicts":[],"time":1,"timereceived":1,"details":[` +
			`{"account":"user-1","address":"Laddr1","amount":0.05,"category":"receive","vout":0},` +
			`{"account":"","address":"Lchange","amount":-0.05,"category":"send","vout":1}],"hex":""}`,
		"getblockheader": `{"hash":"` + blockHash + `","confirmations":4,"height":2500100,"version":1,"versionHex":"00000001","merkleroot":"","time":1,"nonce":0,"bits":"1d00ffff","difficulty":1,"previousblockhash":"","nextblockhash":""}`,
	}, nil)

	obs, err := c.GetTransaction(context.Background(), strings.Repeat("ab", 32))
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.Equal(t, "Laddr1", obs[0].To)
	assert.Equal(t, int64(2500100), obs[0].BlockIndex)
	assert.Equal(t, int64(4), obs[0].Confirmations)
}

func TestGetNetworkInfo(t *testing.T) {
	c := fakeDaemon(t, map[string]string{
		"getnetworkinfo": `{"version":210201,"subversion":"/LitecoinCore:0.21.2.1/","protocolversion":70016,"localservices":"0000000000000409","localrelay":true,"timeoffset":0,"connections":8,"networkactive":true,"networks":[],"relayfee":0.0001,"incrementalfee":0.00001,"localaddresses":[],"warnings":""}`,
	}, nil)

	info, err := c.GetNetworkInfo(context.Background())
	require.NoError(t, err)
	assert.True(t, info.NetworkActive)
	assert.Equal(t, int64(210201), info.Version)
}

func TestCancelledContextSkipsCall(t *testing.T) {
	seen := &recorder{}
	c := fakeDaemon(t, map[string]string{"getbalance": `1.5`}, seen)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetBalance(ctx, "user-1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, seen.all())
}
