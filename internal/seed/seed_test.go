package seed_test

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memberclub-rental/internal/domain"
	"memberclub-rental/internal/idgen"
	"memberclub-rental/internal/logger"
	"memberclub-rental/internal/repository/memory"
	"memberclub-rental/internal/seed"
	"memberclub-rental/internal/service"
)

func TestMain(m *testing.M) {
	logger.InitializeWithWriter(io.Discard, "error", "text")
	os.Exit(m.Run())
}

func newServices() (service.InventoryService, service.MembershipService) {
	store := memory.NewStore()
	ids := idgen.New()
	return service.NewInventoryService(store.ItemRepository, ids),
		service.NewMembershipService(store.MemberRepository, store.RentalRepository, ids)
}

func TestLoad_Sample(t *testing.T) {
	inv, ms := newServices()
	res, err := seed.Load(context.Background(), inv, ms, seed.Sample())
	require.NoError(t, err)

	assert.Len(t, res.Items, 18)
	require.Len(t, res.Members, 3)
	assert.Equal(t, "BACK-001", res.Items[0].ID)
	assert.Equal(t, "BACK-002", res.Items[1].ID)
	assert.Equal(t, "TENT-001", res.Items[2].ID)

	assert.Equal(t, int32(1), res.Members[0].ID)
	assert.Equal(t, domain.TierStandard, res.Members[0].Tier)
	assert.Equal(t, domain.TierStudent, res.Members[1].Tier)
	assert.Equal(t, domain.TierPremium, res.Members[2].Tier)

	speedster, err := inv.GetItem(context.Background(), "MBOAT-001")
	require.NoError(t, err)
	assert.Equal(t, "Speedster 2000", speedster.Name)
	assert.True(t, decimal.RequireFromString("2000").Equal(speedster.PricePerDay))
	require.NotNil(t, speedster.Attributes.Boat)
	assert.Equal(t, 150, speedster.Attributes.Boat.Horsepower)
	assert.Equal(t, domain.ItemStatusAvailable, speedster.Status)

	watercraft, err := inv.ListItems(context.Background(), service.ItemFilter{Category: domain.ItemCategoryWatercraft})
	require.NoError(t, err)
	assert.Len(t, watercraft, 5)
}

func TestLoad_BadPrice(t *testing.T) {
	inv, ms := newServices()
	data := []byte(`
items:
  - kind: NET
    name: Broken Net
    price_per_hour: ten
    price_per_day: "80"
`)
	_, err := seed.Load(context.Background(), inv, ms, data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken Net")
}

func TestLoad_RejectedMember(t *testing.T) {
	inv, ms := newServices()
	data := []byte(`
members:
  - {name: Ok Member, tier: STANDARD}
  - {name: Gold Member, tier: GOLD}
`)
	res, err := seed.Load(context.Background(), inv, ms, data)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownTier)
	assert.Len(t, res.Members, 1)
}

func TestLoad_MismatchedAttributes(t *testing.T) {
	inv, ms := newServices()
	data := []byte(`
items:
  - kind: TENT
    name: Odd Tent
    price_per_hour: "1"
    price_per_day: "5"
    attributes:
      rod: {length_m: 2.0, type: FLY}
`)
	_, err := seed.Load(context.Background(), inv, ms, data)
	assert.ErrorIs(t, err, domain.ErrInvalidItem)
}

func TestParse_Malformed(t *testing.T) {
	_, err := seed.Parse([]byte("items: [unterminated"))
	assert.Error(t, err)
}
