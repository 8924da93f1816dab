package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	m := newTokenManager("test-secret", "memberclub", time.Hour, clock)

	token, err := m.GenerateSessionToken("admin", "Club Admin")
	require.NoError(t, err)

	t.Run("Valid token", func(t *testing.T) {
		claims, err := m.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Username)
		assert.Equal(t, "Club Admin", claims.FullName)
		assert.Equal(t, "memberclub", claims.Issuer)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		other := newTokenManager("other-secret", "memberclub", time.Hour, clock)
		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Wrong issuer", func(t *testing.T) {
		other := newTokenManager("test-secret", "someone-else", time.Hour, clock)
		_, err := other.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		later := newTokenManager("test-secret", "memberclub", time.Hour, func() time.Time {
			return now.Add(2 * time.Hour)
		})
		_, err := later.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := m.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
