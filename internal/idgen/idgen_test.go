package idgen

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memberclub-rental/internal/domain"
)

func TestNextRentalID(t *testing.T) {
	g := New()
	assert.Equal(t, "RENT-001", g.NextRentalID())
	assert.Equal(t, "RENT-002", g.NextRentalID())

	t.Run("Unique under concurrency", func(t *testing.T) {
		var wg sync.WaitGroup
		var mu sync.Mutex
		seen := map[string]bool{}
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				id := g.NextRentalID()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}()
		}
		wg.Wait()
		assert.Len(t, seen, 50)
		assert.Equal(t, "RENT-053", g.NextRentalID())
	})
}

func TestNextItemID(t *testing.T) {
	g := New()

	id, err := g.NextItemID(domain.ItemKindTent)
	require.NoError(t, err)
	assert.Equal(t, "TENT-001", id)

	id, _ = g.NextItemID(domain.ItemKindElectricBoat)
	assert.Equal(t, "EBOAT-001", id)

	id, _ = g.NextItemID(domain.ItemKindTent)
	assert.Equal(t, "TENT-002", id)

	_, err = g.NextItemID("SURFBOARD")
	assert.ErrorIs(t, err, domain.ErrInvalidItem)

	for _, k := range domain.AllItemKinds {
		_, ok := itemPrefixes[k]
		assert.True(t, ok, "missing prefix for %s", k)
	}
}

func TestOtherIDs(t *testing.T) {
	g := New()
	assert.Equal(t, int32(1), g.NextMemberID())
	assert.Equal(t, int32(2), g.NextMemberID())

	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	a := g.NextReceiptID(now)
	b := g.NextReceiptID(now)
	assert.Less(t, a, b)
	parsed, err := ulid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(now), parsed.Time())

	_, err = uuid.Parse(NewEntryID())
	assert.NoError(t, err)
}
