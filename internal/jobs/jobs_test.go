package jobs

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memberclub-rental/internal/domain"
	"memberclub-rental/internal/idgen"
	"memberclub-rental/internal/logger"
	"memberclub-rental/internal/repository/memory"
	"memberclub-rental/internal/service"
	"memberclub-rental/internal/utils"
)

func TestMain(m *testing.M) {
	logger.InitializeWithWriter(io.Discard, "error", "text")
	os.Exit(m.Run())
}

type harness struct {
	runner   *JobRunner
	services *Services
	checkout service.CheckoutService
	clock    *utils.FixedClock
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := memory.NewStore()
	ids := idgen.New()
	clock := utils.NewFixedClock(time.Date(2024, time.June, 10, 10, 0, 0, 0, time.UTC))

	ledger := service.NewRentalLedger(store.RentalRepository, store.ItemRepository, store.MemberRepository, ids, clock)
	revenue := service.NewRevenueLedger(store.RevenueRepository, clock)
	services := &Services{
		Ledger:     ledger,
		Revenue:    revenue,
		Returns:    service.NewReturnService(ledger, revenue, store.ItemRepository, store.MemberRepository, clock),
		Inventory:  service.NewInventoryService(store.ItemRepository, ids),
		Membership: service.NewMembershipService(store.MemberRepository, store.RentalRepository, ids),
	}
	return &harness{
		runner:   NewJobRunner(services, clock),
		services: services,
		checkout: service.NewCheckoutService(ledger, revenue, store.MemberRepository, store.ItemRepository, ids, clock),
		clock:    clock,
	}
}

func (h *harness) rent(t *testing.T, name string, tier domain.MembershipTier, perDay string, days int) *domain.Rental {
	t.Helper()
	ctx := context.Background()
	m, err := h.services.Membership.AddMember(ctx, name, "", tier)
	require.NoError(t, err)
	item, err := h.services.Inventory.AddItem(ctx, &domain.Item{
		Kind:         domain.ItemKindTent,
		Name:         name + " tent",
		PricePerHour: decimal.NewFromInt(10),
		PricePerDay:  decimal.RequireFromString(perDay),
	})
	require.NoError(t, err)
	r, err := h.services.Ledger.Create(ctx, m.ID, item.ID, days, domain.RentalUnitDaily)
	require.NoError(t, err)
	return r
}

func TestOverdueReport(t *testing.T) {
	h := newHarness(t)
	short := h.rent(t, "Daniel", domain.TierStandard, "100", 1)
	long := h.rent(t, "Erik", domain.TierStudent, "100", 5)
	h.rent(t, "Anders", domain.TierPremium, "100", 30)

	asOf := domain.Date{Year: 2024, Month: 6, Day: 20}
	rows, err := h.runner.OverdueReport(asOf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, short.ID, rows[0].RentalID)
	assert.Equal(t, "Daniel", rows[0].MemberName)
	assert.Equal(t, "Daniel tent", rows[0].ItemName)
	assert.Equal(t, 9, rows[0].DaysLate)
	// 10 days elapsed, 1 paid, 9 overdue at 100
	assert.True(t, decimal.NewFromInt(900).Equal(rows[0].FeeSoFar), rows[0].FeeSoFar.String())

	assert.Equal(t, long.ID, rows[1].RentalID)
	assert.Equal(t, 5, rows[1].DaysLate)
	// student rate 80, 400 paid is 5 days, 5 overdue
	assert.True(t, decimal.NewFromInt(400).Equal(rows[1].FeeSoFar), rows[1].FeeSoFar.String())
}

func TestOverdueReport_Empty(t *testing.T) {
	h := newHarness(t)
	h.rent(t, "Daniel", domain.TierStandard, "100", 3)

	rows, err := h.runner.OverdueReport(domain.Date{Year: 2024, Month: 6, Day: 13})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRevenueReport(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	r := h.rent(t, "Daniel", domain.TierStandard, "100", 1)
	_, err := h.services.Revenue.Add(ctx, domain.RevenueSourceRental, r.TotalCost, r.ID)
	require.NoError(t, err)

	h.clock.AdvanceDays(3)
	_, err = h.services.Returns.Return(ctx, r.ID)
	require.NoError(t, err)

	summary, err := h.runner.RevenueReport()
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(summary.Rentals), summary.Rentals.String())
	assert.True(t, decimal.NewFromInt(200).Equal(summary.LateFees), summary.LateFees.String())
	assert.True(t, decimal.NewFromInt(300).Equal(summary.Total), summary.Total.String())
	assert.Equal(t, 2, summary.Entries)
}

func TestRunWithRecovery(t *testing.T) {
	h := newHarness(t)

	assert.True(t, h.runner.runWithRecovery("ok", func() error { return nil }))
	assert.False(t, h.runner.runWithRecovery("fails", func() error { return errors.New("boom") }))
	assert.NotPanics(t, func() {
		assert.False(t, h.runner.runWithRecovery("panics", func() error { panic("boom") }))
	})
}

func TestRunAll(t *testing.T) {
	h := newHarness(t)
	h.rent(t, "Daniel", domain.TierStandard, "100", 1)
	h.clock.AdvanceDays(5)

	assert.True(t, h.runner.RunAll())
}
