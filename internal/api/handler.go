package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/hance08/walletsync/internal/currency"
	"github.com/hance08/walletsync/internal/logx"
	"github.com/hance08/walletsync/internal/model"
	"github.com/hance08/walletsync/internal/node"
	"github.com/hance08/walletsync/internal/service"
	"github.com/hance08/walletsync/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

type sweepRequest struct {
	Filters service.SweepFilter `json:"filters"`
}

type sweepResponse struct {
	Processed int  `json:"processed"`
	Complete  bool `json:"complete"`
}

type accountResponse struct {
	Address      string `json:"address"`
	Name         string `json:"name"`
	GUID         string `json:"guid"`
	Balance      string `json:"balance"`
	BalanceMinor int64  `json:"balance_minor"`
	LastBlock    int64  `json:"last_block"`
}

type transactionResponse struct {
	TxID          string `json:"txid"`
	Address       string `json:"address"`
	From          string `json:"from,omitempty"`
	BlockHash     string `json:"blockhash"`
	BlockIndex    int64  `json:"blockindex"`
	Confirmations int64  `json:"confirmations"`
	Amount        int64  `json:"amount"`
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// update accepts a node push either as JSON or as form values, which is
// what walletnotify/blocknotify scripts usually send.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var ev service.Event
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body: " + err.Error()})
			return
		}
	} else {
		ev.Type = r.FormValue("type")
		ev.Hash = r.FormValue("hash")
	}
	if ev.Hash == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "hash is required"})
		return
	}

	res, err := h.svc.Ingest(r.Context(), mux.Vars(r)["currency"], ev)
	if err != nil {
		if res.Transactions == 0 {
			writeError(w, err)
			return
		}
		logx.Error("API", "update ", ev.Type, " ", ev.Hash, " finished with errors: ", err)
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) sweep(w http.ResponseWriter, r *http.Request) {
	req := sweepRequest{Filters: h.filter}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body: " + err.Error()})
			return
		}
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		req.Filters.Limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("from")); err == nil {
		req.Filters.From = v
	}

	processed, err := h.svc.Sweep(r.Context(), mux.Vars(r)["currency"], req.Filters)
	if err != nil && !errors.Is(err, service.ErrSweepIncomplete) {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sweepResponse{Processed: processed, Complete: err == nil})
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	res, err := h.svc.CheckAddress(r.Context(), vars["currency"], vars["address"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Status(r.Context(), mux.Vars(r)["currency"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["currency"]
	adapter, err := h.svc.Registry.Get(name)
	if err != nil {
		writeError(w, err)
		return
	}
	accounts, err := h.svc.Account.ListAccounts(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]accountResponse, 0, len(accounts))
	for _, acc := range accounts {
		resp = append(resp, toAccountResponse(adapter.Currency(), acc))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := h.svc.Account.ListTransactions(r.Context(), vars["currency"], vars["address"], limit)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]transactionResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, transactionResponse{
			TxID:          rec.TxID,
			Address:       rec.Address,
			From:          rec.From,
			BlockHash:     rec.BlockHash,
			BlockIndex:    rec.BlockIndex,
			Confirmations: rec.Confirmations,
			Amount:        rec.Amount,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// nodeAccounts and the two handlers below read the daemon directly; nothing
// they return is written to the ledger.
func (h *Handler) nodeAccounts(w http.ResponseWriter, r *http.Request) {
	adapter, err := h.svc.Registry.Get(mux.Vars(r)["currency"])
	if err != nil {
		writeError(w, err)
		return
	}
	accounts, err := adapter.NodeAccounts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make(map[string]int64, len(accounts))
	for name, balance := range accounts {
		resp[name] = currency.ToMinor(adapter.Currency(), balance)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) nodeTransaction(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	adapter, err := h.svc.Registry.Get(vars["currency"])
	if err != nil {
		writeError(w, err)
		return
	}
	obs, err := adapter.NodeTransaction(r.Context(), vars["txid"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toObservationResponses(adapter.Currency(), obs))
}

func (h *Handler) nodeTransactions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	adapter, err := h.svc.Registry.Get(vars["currency"])
	if err != nil {
		writeError(w, err)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	from, _ := strconv.Atoi(r.URL.Query().Get("from"))

	obs, err := adapter.NodeTransactions(r.Context(), vars["account"], limit, from)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toObservationResponses(adapter.Currency(), obs))
}

func toObservationResponses(c *model.Currency, obs []model.Observation) []transactionResponse {
	resp := make([]transactionResponse, 0, len(obs))
	for _, o := range obs {
		resp = append(resp, transactionResponse{
			TxID:          o.TxID,
			Address:       o.To,
			From:          o.From,
			BlockHash:     o.BlockHash,
			BlockIndex:    o.BlockIndex,
			Confirmations: o.Confirmations,
			Amount:        currency.ToMinor(c, o.Amount),
		})
	}
	return resp
}

func toAccountResponse(c *model.Currency, acc *model.Account) accountResponse {
	return accountResponse{
		Address:      acc.Address,
		Name:         acc.Name,
		GUID:         acc.OwnerGUID,
		Balance:      currency.Format(c, acc.LastBalance),
		BalanceMinor: acc.LastBalance,
		LastBlock:    acc.LastBlock,
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrUnknownCurrency), errors.Is(err, service.ErrAccountNotTracked):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrUnsupported):
		status = http.StatusNotImplemented
	case errors.Is(err, service.ErrUnknownEventType), errors.Is(err, node.ErrInvalidTransaction):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrAccountExists):
		status = http.StatusConflict
	default:
		logx.Error("API", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Warn("API", "failed to write response: ", err)
	}
}
