package jobs

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"memberclub-rental/internal/domain"
	"memberclub-rental/internal/logger"
	"memberclub-rental/internal/service"
)

// OverdueRow is one line of the overdue report
type OverdueRow struct {
	RentalID       string          `json:"rental_id"`
	MemberID       int32           `json:"member_id"`
	MemberName     string          `json:"member_name"`
	ItemID         string          `json:"item_id"`
	ItemName       string          `json:"item_name"`
	ExpectedReturn domain.Date     `json:"expected_return"`
	DaysLate       int             `json:"days_late"`
	FeeSoFar       decimal.Decimal `json:"fee_so_far"`
}

// OverdueReport lists active rentals whose expected return date is before
// asOf, most overdue first. The fee is what a return today would charge.
func (jr *JobRunner) OverdueReport(asOf domain.Date) ([]OverdueRow, error) {
	ctx := context.Background()

	overdue, err := jr.services.Ledger.Overdue(ctx, asOf)
	if err != nil {
		return nil, err
	}

	rows := make([]OverdueRow, 0, len(overdue))
	for _, r := range overdue {
		row := OverdueRow{
			RentalID:       r.ID,
			MemberID:       r.MemberID,
			ItemID:         r.ItemID,
			ExpectedReturn: r.ExpectedReturnDate,
			DaysLate:       r.ExpectedReturnDate.DaysUntil(asOf),
			FeeSoFar:       decimal.Zero,
		}
		member, err := jr.services.Membership.GetMember(ctx, r.MemberID)
		if err != nil && !errors.Is(err, domain.ErrMemberNotFound) {
			return nil, err
		}
		item, err := jr.services.Inventory.GetItem(ctx, r.ItemID)
		if err != nil && !errors.Is(err, domain.ErrItemNotFound) {
			return nil, err
		}
		if member != nil {
			row.MemberName = member.Name
		}
		if item != nil {
			row.ItemName = item.Name
		}
		if member != nil && item != nil {
			row.FeeSoFar = service.AssessLateFee(&r, item, member.Tier, asOf).Fee
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].DaysLate > rows[j].DaysLate
	})

	for _, row := range rows {
		logger.Warn("Rental overdue",
			"rentalID", row.RentalID,
			"member", row.MemberName,
			"item", row.ItemName,
			"expectedReturn", row.ExpectedReturn.String(),
			"daysLate", row.DaysLate)
	}
	logger.Info("Overdue report", "asOf", asOf.String(), "count", len(rows))
	return rows, nil
}

// RevenueReport logs the accumulated revenue split by source
func (jr *JobRunner) RevenueReport() (*service.RevenueSummary, error) {
	summary, err := jr.services.Revenue.Summary(context.Background())
	if err != nil {
		return nil, err
	}
	logger.Info("Revenue report",
		"total", summary.Total.StringFixed(2),
		"rentals", summary.Rentals.StringFixed(2),
		"lateFees", summary.LateFees.StringFixed(2),
		"entries", summary.Entries)
	return summary, nil
}
