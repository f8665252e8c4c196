package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hance08/walletsync/internal/model"
)

type Service struct {
	Registry *Registry
	Account  *AccountService
}

func NewService(repo Ledger, registry *Registry) *Service {
	return &Service{
		Registry: registry,
		Account:  NewAccountService(repo, registry),
	}
}

// CheckAddress reconciles the tracked account behind address.
func (s *Service) CheckAddress(ctx context.Context, currencyName, address string) (CheckResult, error) {
	adapter, err := s.Registry.Get(currencyName)
	if err != nil {
		return CheckResult{}, err
	}
	acc, err := s.Account.GetAccount(ctx, currencyName, address)
	if err != nil {
		return CheckResult{}, err
	}
	return adapter.CheckAccount(ctx, acc)
}

func (s *Service) Sweep(ctx context.Context, currencyName string, filter SweepFilter) (int, error) {
	adapter, err := s.Registry.Get(currencyName)
	if err != nil {
		return 0, err
	}
	return adapter.FixedUpdate(ctx, filter)
}

func (s *Service) Ingest(ctx context.Context, currencyName string, ev Event) (IngestResult, error) {
	adapter, err := s.Registry.Get(currencyName)
	if err != nil {
		return IngestResult{}, err
	}
	return adapter.Update(ctx, ev)
}

type StatusReport struct {
	Currency  string `json:"currency"`
	Active    bool   `json:"active"`
	Version   string `json:"version"`
	Supported bool   `json:"supported"`
	Error     string `json:"error,omitempty"`
}

// Status asks the node behind currencyName whether it is on the network.
// Node failures are reported in the result rather than returned.
func (s *Service) Status(ctx context.Context, currencyName string) (StatusReport, error) {
	adapter, err := s.Registry.Get(currencyName)
	if err != nil {
		return StatusReport{}, err
	}

	report := StatusReport{Currency: adapter.Name(), Supported: true}
	active, err := adapter.Status(ctx)
	switch {
	case errors.Is(err, ErrUnsupported):
		report.Supported = false
		return report, nil
	case err != nil:
		report.Error = err.Error()
		return report, nil
	}
	report.Active = active
	report.Version, _ = adapter.Version(ctx)
	return report, nil
}

func (s *Service) StatusAll(ctx context.Context) []StatusReport {
	var reports []StatusReport
	for _, name := range s.Registry.Names() {
		report, err := s.Status(ctx, name)
		if err != nil {
			report = StatusReport{Currency: name, Error: err.Error()}
		}
		reports = append(reports, report)
	}
	return reports
}

func (s *Service) CreateAccount(ctx context.Context, currencyName, guid, name string) (*model.Account, error) {
	if guid == "" {
		return nil, fmt.Errorf("owner guid is required")
	}
	adapter, err := s.Registry.Get(currencyName)
	if err != nil {
		return nil, err
	}
	return adapter.CreateAccount(ctx, guid, name)
}
