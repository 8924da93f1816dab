package service_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memberclub-rental/internal/domain"
	"memberclub-rental/internal/service"
)

func TestAssessLateFee(t *testing.T) {
	item := &domain.Item{ID: "TENT-001", PricePerDay: decimal.NewFromInt(100)}
	day0 := domain.Date{Year: 2024, Month: 6, Day: 10}
	rental := &domain.Rental{ID: "RENT-001", StartDate: day0, TotalCost: decimal.NewFromInt(300)}

	t.Run("Returned same day", func(t *testing.T) {
		fee := service.AssessLateFee(rental, item, domain.TierStandard, day0)
		assert.Equal(t, 0, fee.DaysRented)
		assert.Equal(t, int64(3), fee.ExpectedDays)
		assert.False(t, fee.Overdue())
		assertDec(t, "0", fee.Fee)
	})

	t.Run("Returned after five days", func(t *testing.T) {
		fee := service.AssessLateFee(rental, item, domain.TierStandard, day0.AddDays(5))
		assert.Equal(t, int64(2), fee.OverdueDays)
		assertDec(t, "200", fee.Fee)
	})

	t.Run("Monotonic in days rented", func(t *testing.T) {
		prev := decimal.Zero
		for d := 0; d <= 15; d++ {
			fee := service.AssessLateFee(rental, item, domain.TierStudent, day0.AddDays(d))
			assert.True(t, fee.Fee.GreaterThanOrEqual(prev), "day %d", d)
			if int64(d) <= fee.ExpectedDays {
				assert.True(t, fee.Fee.IsZero(), "day %d", d)
			}
			prev = fee.Fee
		}
	})

	t.Run("Hourly cost reconstructs to rounded days", func(t *testing.T) {
		hourly := &domain.Rental{ID: "RENT-002", StartDate: day0, TotalCost: decimal.NewFromInt(150), Unit: domain.RentalUnitHourly}
		fee := service.AssessLateFee(hourly, item, domain.TierStandard, day0)
		assert.Equal(t, int64(2), fee.ExpectedDays)
		assertDec(t, "0", fee.Fee)

		fee = service.AssessLateFee(hourly, item, domain.TierStandard, day0.AddDays(3))
		assertDec(t, "100", fee.Fee)
	})

	t.Run("Free item never charges", func(t *testing.T) {
		free := &domain.Item{ID: "BAIT-001", PricePerDay: decimal.Zero}
		fee := service.AssessLateFee(&domain.Rental{StartDate: day0, TotalCost: decimal.Zero}, free, domain.TierStandard, day0.AddDays(40))
		assertDec(t, "0", fee.Fee)
	})
}

func TestReturnService_Return(t *testing.T) {
	t.Run("On time", func(t *testing.T) {
		f := newFixture(t)
		member := f.addMember(t, "Daniel Svensson", domain.TierStandard)
		tent := f.addItem(t, domain.ItemKindTent, "Summer Breeze 2P", "50", "100")
		rental, err := f.ledger.Create(f.ctx, member.ID, tent.ID, 3, domain.RentalUnitDaily)
		require.NoError(t, err)

		res, err := f.returns.Return(f.ctx, rental.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCompleted, res.Rental.Status)
		assertDec(t, "0", res.LateFee.Fee)
		assertDec(t, "0", f.total(t))
		assert.Equal(t, domain.ItemStatusAvailable, f.itemStatus(t, tent.ID))
	})

	t.Run("Overdue fee credited separately", func(t *testing.T) {
		f := newFixture(t)
		member := f.addMember(t, "Daniel Svensson", domain.TierStandard)
		tent := f.addItem(t, domain.ItemKindTent, "Summer Breeze 2P", "50", "100")
		rental, err := f.ledger.Create(f.ctx, member.ID, tent.ID, 3, domain.RentalUnitDaily)
		require.NoError(t, err)

		f.clock.AdvanceDays(5)
		preview, err := f.returns.Assess(f.ctx, rental.ID)
		require.NoError(t, err)
		assertDec(t, "200", preview.Fee)
		assertDec(t, "0", f.total(t))

		res, err := f.returns.Return(f.ctx, rental.ID)
		require.NoError(t, err)
		assertDec(t, "200", res.LateFee.Fee)
		assertDec(t, "300", res.Rental.TotalCost)
		assertDec(t, "200", f.total(t))

		entries, _ := f.revenue.Entries(f.ctx)
		require.Len(t, entries, 1)
		assert.Equal(t, domain.RevenueSourceLateFee, entries[0].Source)
		assert.Equal(t, rental.ID, entries[0].Reference)

		t.Run("Second return is rejected and credits nothing", func(t *testing.T) {
			_, err := f.returns.Return(f.ctx, rental.ID)
			assert.ErrorIs(t, err, domain.ErrRentalNotActive)
			assertDec(t, "200", f.total(t))
		})
	})

	t.Run("Current tier is used for the fee", func(t *testing.T) {
		f := newFixture(t)
		member := f.addMember(t, "Anders Karlsson", domain.TierPremium)
		kayak := f.addItem(t, domain.ItemKindKayak, "Sea Runner", "60", "100")
		rental, err := f.ledger.Create(f.ctx, member.ID, kayak.ID, 2, domain.RentalUnitDaily)
		require.NoError(t, err)
		assertDec(t, "140", rental.TotalCost)

		_, err = f.members.UpdateTier(f.ctx, member.ID, domain.TierStandard)
		require.NoError(t, err)
		f.clock.AdvanceDays(2)

		res, err := f.returns.Return(f.ctx, rental.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.LateFee.ExpectedDays)
		assertDec(t, "100", res.LateFee.Fee)
	})

	t.Run("Unknown rental", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.returns.Return(f.ctx, "RENT-404")
		assert.ErrorIs(t, err, domain.ErrRentalNotFound)
	})

	t.Run("Cancelled rental", func(t *testing.T) {
		f := newFixture(t)
		member := f.addMember(t, "Daniel Svensson", domain.TierStandard)
		lantern := f.addItem(t, domain.ItemKindLantern, "Glow 300", "5", "30")
		rental, _ := f.ledger.Create(f.ctx, member.ID, lantern.ID, 1, domain.RentalUnitDaily)
		_, err := f.ledger.Cancel(f.ctx, rental.ID)
		require.NoError(t, err)

		_, err = f.returns.Return(f.ctx, rental.ID)
		assert.ErrorIs(t, err, domain.ErrRentalNotActive)
	})
}

func TestReturnService_Bulk(t *testing.T) {
	f := newFixture(t)
	member := f.addMember(t, "Daniel Svensson", domain.TierStandard)
	other := f.addMember(t, "Erik Johansson", domain.TierStudent)
	tent := f.addItem(t, domain.ItemKindTent, "Summer Breeze 2P", "50", "100")
	rod := f.addItem(t, domain.ItemKindRod, "Pike Master", "20", "50")
	net := f.addItem(t, domain.ItemKindNet, "Landing Net L", "10", "40")
	boat := f.addItem(t, domain.ItemKindRowBoat, "Classic 14", "40", "200")

	r1, _ := f.ledger.Create(f.ctx, member.ID, tent.ID, 1, domain.RentalUnitDaily)
	r2, _ := f.ledger.Create(f.ctx, member.ID, rod.ID, 2, domain.RentalUnitDaily)
	r3, _ := f.ledger.Create(f.ctx, member.ID, net.ID, 10, domain.RentalUnitDaily)
	r4, _ := f.ledger.Create(f.ctx, other.ID, boat.ID, 1, domain.RentalUnitDaily)
	_, err := f.ledger.Complete(f.ctx, r2.ID)
	require.NoError(t, err)

	f.clock.AdvanceDays(4)

	t.Run("Failures are isolated and fees credited once", func(t *testing.T) {
		res, err := f.returns.ReturnBulk(f.ctx, []string{r1.ID, r2.ID, "RENT-404", r3.ID})
		require.NoError(t, err)

		require.Len(t, res.Returned, 2)
		require.Len(t, res.Failed, 2)
		assert.Equal(t, r2.ID, res.Failed[0].RentalID)
		assert.ErrorIs(t, res.Failed[0].Err, domain.ErrRentalNotActive)
		assert.ErrorIs(t, res.Failed[1].Err, domain.ErrRentalNotFound)
		assert.ErrorIs(t, res.FailureReasons(), domain.ErrRentalNotFound)

		// tent: 3 days over at 100, net: within its 10 days
		assertDec(t, "300", res.TotalFees)
		assertDec(t, "300", f.total(t))
		entries, _ := f.revenue.Entries(f.ctx)
		assert.Len(t, entries, 1)

		assert.Equal(t, domain.ItemStatusAvailable, f.itemStatus(t, net.ID))
	})

	t.Run("Return all for member", func(t *testing.T) {
		res, err := f.returns.ReturnAllForMember(f.ctx, other.ID)
		require.NoError(t, err)
		require.Len(t, res.Returned, 1)
		assert.Equal(t, r4.ID, res.Returned[0].Rental.ID)
		// 200 * 0.8 = 160 paid, 160/day effective, 3 days over
		assertDec(t, "480", res.TotalFees)
		assertDec(t, "780", f.total(t))

		res, err = f.returns.ReturnAllForMember(f.ctx, other.ID)
		require.NoError(t, err)
		assert.Empty(t, res.Returned)
		assertDec(t, "0", res.TotalFees)
	})

	t.Run("Unknown member", func(t *testing.T) {
		_, err := f.returns.ReturnAllForMember(f.ctx, 404)
		assert.ErrorIs(t, err, domain.ErrMemberNotFound)
	})
}
