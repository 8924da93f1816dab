package utils

import (
	"fmt"

	"github.com/shopspring/decimal"

	"memberclub-rental/internal/domain"
)

// Policy is the pricing rule attached to one membership tier
type Policy struct {
	Tier     domain.MembershipTier
	Discount decimal.Decimal
}

// Multiplier is the fraction of the base price a member of the tier pays
func (p Policy) Multiplier() decimal.Decimal {
	return decimal.NewFromInt(1).Sub(p.Discount)
}

// policies is fixed at build time. STANDARD 0%, STUDENT 20%, PREMIUM 30%.
var policies = map[domain.MembershipTier]Policy{
	domain.TierStandard: {Tier: domain.TierStandard, Discount: decimal.Zero},
	domain.TierStudent:  {Tier: domain.TierStudent, Discount: decimal.RequireFromString("0.2")},
	domain.TierPremium:  {Tier: domain.TierPremium, Discount: decimal.RequireFromString("0.3")},
}

// PolicyFor looks up the pricing policy of a tier
func PolicyFor(tier domain.MembershipTier) (Policy, error) {
	p, ok := policies[tier]
	if !ok {
		return Policy{}, fmt.Errorf("%w: %q", domain.ErrUnknownTier, tier)
	}
	return p, nil
}

func policyOrStandard(tier domain.MembershipTier) Policy {
	if p, ok := policies[tier]; ok {
		return p
	}
	return policies[domain.TierStandard]
}

// TierDiscount returns the discount fraction of a tier (0.2 for 20%)
func TierDiscount(tier domain.MembershipTier) decimal.Decimal {
	return policyOrStandard(tier).Discount
}

// TierMultiplier returns 1 - TierDiscount(tier)
func TierMultiplier(tier domain.MembershipTier) decimal.Decimal {
	return policyOrStandard(tier).Multiplier()
}

// BaseRate picks the hourly or daily price of the item
func BaseRate(item *domain.Item, unit domain.RentalUnit) decimal.Decimal {
	if unit == domain.RentalUnitHourly {
		return item.PricePerHour
	}
	return item.PricePerDay
}

// Price computes rate * duration * tier multiplier. Callers guarantee duration >= 1.
func Price(item *domain.Item, tier domain.MembershipTier, duration int, unit domain.RentalUnit) decimal.Decimal {
	return BaseRate(item, unit).
		Mul(decimal.NewFromInt(int64(duration))).
		Mul(TierMultiplier(tier))
}

// ApplyDiscount applies the tier multiplier to an already computed amount
func ApplyDiscount(amount decimal.Decimal, tier domain.MembershipTier) decimal.Decimal {
	return amount.Mul(TierMultiplier(tier))
}

// EffectiveDayRate is the discounted price of one day of the item for the tier
func EffectiveDayRate(item *domain.Item, tier domain.MembershipTier) decimal.Decimal {
	return ApplyDiscount(item.PricePerDay, tier)
}

// ExpectedReturnDate is the start date for hourly rentals and start + duration days for daily ones
func ExpectedReturnDate(start domain.Date, duration int, unit domain.RentalUnit) domain.Date {
	if unit == domain.RentalUnitHourly {
		return start
	}
	return start.AddDays(duration)
}
