package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"memberclub-rental/internal/domain"
	"memberclub-rental/internal/logger"
	"memberclub-rental/internal/repository"
	"memberclub-rental/internal/utils"
)

// LateFee is the outcome of comparing elapsed days against the days paid for
type LateFee struct {
	RentalID      string          `json:"rental_id"`
	DaysRented    int             `json:"days_rented"`
	ExpectedDays  int64           `json:"expected_days"`
	OverdueDays   int64           `json:"overdue_days"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
	Fee           decimal.Decimal `json:"fee"`
}

func (f *LateFee) Overdue() bool {
	return f.OverdueDays > 0
}

// AssessLateFee reconstructs the paid-for duration from the rental's total
// cost and charges overdue days at the tier's effective day rate. Hourly
// rentals reconstruct poorly because their cost was not built from the day rate.
func AssessLateFee(rental *domain.Rental, item *domain.Item, tier domain.MembershipTier, today domain.Date) LateFee {
	fee := LateFee{
		RentalID:      rental.ID,
		DaysRented:    rental.StartDate.DaysUntil(today),
		EffectiveRate: utils.EffectiveDayRate(item, tier),
		Fee:           decimal.Zero,
	}
	if !fee.EffectiveRate.IsPositive() {
		return fee
	}

	fee.ExpectedDays = rental.TotalCost.Div(fee.EffectiveRate).Round(0).IntPart()
	if int64(fee.DaysRented) > fee.ExpectedDays {
		fee.OverdueDays = int64(fee.DaysRented) - fee.ExpectedDays
		fee.Fee = fee.EffectiveRate.Mul(decimal.NewFromInt(fee.OverdueDays))
	}
	return fee
}

type ReturnResult struct {
	Rental  domain.Rental `json:"rental"`
	LateFee LateFee       `json:"late_fee"`
}

type FailedReturn struct {
	RentalID string `json:"rental_id"`
	Err      error  `json:"-"`
}

type BulkReturnResult struct {
	Returned  []ReturnResult  `json:"returned"`
	Failed    []FailedReturn  `json:"failed,omitempty"`
	TotalFees decimal.Decimal `json:"total_fees"`
}

type returnService struct {
	ledger     RentalLedger
	revenue    RevenueLedger
	itemRepo   repository.ItemRepository
	memberRepo repository.MemberRepository
	clock      utils.Clock
}

func NewReturnService(
	ledger RentalLedger,
	revenue RevenueLedger,
	itemRepo repository.ItemRepository,
	memberRepo repository.MemberRepository,
	clock utils.Clock,
) ReturnService {
	return &returnService{
		ledger:     ledger,
		revenue:    revenue,
		itemRepo:   itemRepo,
		memberRepo: memberRepo,
		clock:      clock,
	}
}

// Assess previews the late fee of an active rental without returning it.
// The member's current tier is used, not the tier at creation.
func (s *returnService) Assess(ctx context.Context, rentalID string) (*LateFee, error) {
	rental, err := s.ledger.ByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !rental.IsActive() {
		return nil, fmt.Errorf("rental %s is %s: %w", rental.ID, rental.Status, domain.ErrRentalNotActive)
	}
	item, err := s.itemRepo.GetByID(ctx, rental.ItemID)
	if err != nil {
		return nil, err
	}
	member, err := s.memberRepo.GetByID(ctx, rental.MemberID)
	if err != nil {
		return nil, err
	}
	fee := AssessLateFee(rental, item, member.Tier, utils.Today(s.clock))
	return &fee, nil
}

// returnOne completes the rental and yields the assessed fee without crediting it
func (s *returnService) returnOne(ctx context.Context, rentalID string) (*ReturnResult, error) {
	fee, err := s.Assess(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	rental, err := s.ledger.Complete(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	return &ReturnResult{Rental: *rental, LateFee: *fee}, nil
}

func (s *returnService) Return(ctx context.Context, rentalID string) (*ReturnResult, error) {
	logger.EnterMethod("returnService.Return", "rentalID", rentalID)
	res, err := s.returnOne(ctx, rentalID)
	if err != nil {
		logger.ExitMethodWithError("returnService.Return", err, "rentalID", rentalID)
		return nil, err
	}
	if res.LateFee.Overdue() {
		if _, err := s.revenue.Add(ctx, domain.RevenueSourceLateFee, res.LateFee.Fee, rentalID); err != nil {
			logger.ExitMethodWithError("returnService.Return", err, "rentalID", rentalID)
			return res, fmt.Errorf("failed to record late fee: %w", err)
		}
	}
	logger.ExitMethod("returnService.Return", "rentalID", rentalID,
		"overdueDays", res.LateFee.OverdueDays, "fee", res.LateFee.Fee.String())
	return res, nil
}

// ReturnBulk returns each rental independently. A failing rental is reported
// and skipped. The summed late fees are credited once.
func (s *returnService) ReturnBulk(ctx context.Context, rentalIDs []string) (*BulkReturnResult, error) {
	logger.EnterMethod("returnService.ReturnBulk", "count", len(rentalIDs))
	out := &BulkReturnResult{TotalFees: decimal.Zero}
	for _, id := range rentalIDs {
		res, err := s.returnOne(ctx, id)
		if err != nil {
			logger.Warn("Return failed, continuing batch", "rentalID", id, "error", err)
			out.Failed = append(out.Failed, FailedReturn{RentalID: id, Err: err})
			continue
		}
		out.Returned = append(out.Returned, *res)
		out.TotalFees = out.TotalFees.Add(res.LateFee.Fee)
	}

	if out.TotalFees.IsPositive() {
		if _, err := s.revenue.Add(ctx, domain.RevenueSourceLateFee, out.TotalFees, "bulk-return"); err != nil {
			logger.ExitMethodWithError("returnService.ReturnBulk", err)
			return out, fmt.Errorf("failed to record late fees: %w", err)
		}
	}
	logger.ExitMethod("returnService.ReturnBulk", "returned", len(out.Returned), "failed", len(out.Failed),
		"totalFees", out.TotalFees.String())
	return out, nil
}

// ReturnAllForMember bulk-returns every active rental held by the member
func (s *returnService) ReturnAllForMember(ctx context.Context, memberID int32) (*BulkReturnResult, error) {
	rentals, err := s.ledger.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, r := range rentals {
		if r.IsActive() {
			ids = append(ids, r.ID)
		}
	}
	return s.ReturnBulk(ctx, ids)
}

// FailureReasons joins the errors of a bulk return for display
func (r *BulkReturnResult) FailureReasons() error {
	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		errs = append(errs, fmt.Errorf("%s: %w", f.RentalID, f.Err))
	}
	return errors.Join(errs...)
}
