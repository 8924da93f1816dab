package service

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"memberclub-rental/internal/domain"
	"memberclub-rental/internal/idgen"
	"memberclub-rental/internal/logger"
	"memberclub-rental/internal/repository"
	"memberclub-rental/internal/utils"
)

type RevenueSummary struct {
	Total    decimal.Decimal `json:"total"`
	Rentals  decimal.Decimal `json:"rentals"`
	LateFees decimal.Decimal `json:"late_fees"`
	Entries  int             `json:"entries"`
}

type revenueLedger struct {
	mu    sync.Mutex
	repo  repository.RevenueRepository
	clock utils.Clock
	total decimal.Decimal
}

// NewRevenueLedger returns the session's revenue accumulator, starting at zero
func NewRevenueLedger(repo repository.RevenueRepository, clock utils.Clock) RevenueLedger {
	return &revenueLedger{
		repo:  repo,
		clock: clock,
		total: decimal.Zero,
	}
}

func (s *revenueLedger) Add(ctx context.Context, source domain.RevenueSource, amount decimal.Decimal, reference string) (bool, error) {
	if !amount.IsPositive() {
		logger.Debug("Ignoring non-positive revenue", "source", source, "amount", amount.String(), "reference", reference)
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	entry := &domain.RevenueEntry{
		ID:        idgen.NewEntryID(),
		Source:    source,
		Amount:    amount,
		Reference: reference,
		CreatedOn: s.clock.Now(),
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		return false, err
	}
	s.total = s.total.Add(amount)
	logger.Info("Revenue credited", "source", source, "amount", amount.String(), "reference", reference, "total", s.total.String())
	return true, nil
}

func (s *revenueLedger) Total(ctx context.Context) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total, nil
}

func (s *revenueLedger) Entries(ctx context.Context) ([]domain.RevenueEntry, error) {
	return s.repo.List(ctx)
}

func (s *revenueLedger) Summary(ctx context.Context) (*RevenueSummary, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sum := &RevenueSummary{Total: decimal.Zero, Rentals: decimal.Zero, LateFees: decimal.Zero, Entries: len(entries)}
	for _, e := range entries {
		switch e.Source {
		case domain.RevenueSourceRental:
			sum.Rentals = sum.Rentals.Add(e.Amount)
		case domain.RevenueSourceLateFee:
			sum.LateFees = sum.LateFees.Add(e.Amount)
		}
		sum.Total = sum.Total.Add(e.Amount)
	}
	return sum, nil
}

func (s *revenueLedger) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.total = decimal.Zero
	logger.Info("Revenue reset")
	return nil
}
