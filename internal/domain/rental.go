package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
)

// RentalUnit is the billing granularity of a rental
type RentalUnit string

const (
	RentalUnitHourly RentalUnit = "HOURLY"
	RentalUnitDaily  RentalUnit = "DAILY"
)

func (u RentalUnit) Valid() bool {
	return u == RentalUnitHourly || u == RentalUnitDaily
}

type Rental struct {
	ID                 string          `json:"id"`
	MemberID           int32           `json:"member_id"`
	ItemID             string          `json:"item_id"`
	Unit               RentalUnit      `json:"unit"`
	Duration           int             `json:"duration"`
	Tier               MembershipTier  `json:"tier"`
	StartDate          Date            `json:"start_date"`
	ExpectedReturnDate Date            `json:"expected_return_date"`
	// ReturnBy is the business-hours deadline shown on receipts.
	// Late fees are computed from dates only.
	ReturnBy  time.Time       `json:"return_by"`
	EndDate   *Date           `json:"end_date,omitempty"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Status    RentalStatus    `json:"status"`
}

func (r *Rental) IsActive() bool {
	return r.Status == RentalStatusActive
}

func (r *Rental) Clone() *Rental {
	c := *r
	if r.EndDate != nil {
		d := *r.EndDate
		c.EndDate = &d
	}
	return &c
}
