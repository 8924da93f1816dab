package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RevenueSource string

const (
	RevenueSourceRental  RevenueSource = "RENTAL"
	RevenueSourceLateFee RevenueSource = "LATE_FEE"
)

// RevenueEntry records one accepted credit to the revenue ledger
type RevenueEntry struct {
	ID        string          `json:"id"`
	Source    RevenueSource   `json:"source"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
	CreatedOn time.Time       `json:"created_on"`
}
