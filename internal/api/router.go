package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/hance08/walletsync/internal/logx"
	"github.com/hance08/walletsync/internal/metrics"
	"github.com/hance08/walletsync/internal/service"
)

type Handler struct {
	svc     *service.Service
	filter  service.SweepFilter
	metrics *metrics.Metrics
}

// NewRouter exposes node push, reconciliation and status endpoints.
// filter is the default page used by sweeps that do not send one.
func NewRouter(svc *service.Service, filter service.SweepFilter, m *metrics.Metrics) http.Handler {
	h := &Handler{svc: svc, filter: filter, metrics: m}
	r := mux.NewRouter()

	r.HandleFunc("/health", h.health).Methods("GET")
	r.Handle("/metrics", m.Handler()).Methods("GET")

	api := r.PathPrefix("/api/{currency}").Subrouter()
	api.HandleFunc("/update", h.update).Methods("POST")
	api.HandleFunc("/sweep", h.sweep).Methods("POST")
	api.HandleFunc("/status", h.status).Methods("GET")
	api.HandleFunc("/accounts", h.listAccounts).Methods("GET")
	api.HandleFunc("/accounts/{address}/check", h.check).Methods("POST")
	api.HandleFunc("/accounts/{address}/transactions", h.listTransactions).Methods("GET")
	api.HandleFunc("/node/accounts", h.nodeAccounts).Methods("GET")
	api.HandleFunc("/node/accounts/{account}/transactions", h.nodeTransactions).Methods("GET")
	api.HandleFunc("/node/transactions/{txid}", h.nodeTransaction).Methods("GET")

	recovery := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))
	return handlers.LoggingHandler(logx.Writer(), recovery(r))
}
