package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	repo := NewMemoryStorage(time.Minute)
	repo.now = func() time.Time { return now }

	t.Run("Set and Get", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "sid-1", "email", "test@example.com"))

		got, err := repo.Get(ctx, "sid-1", "email")
		assert.NoError(t, err)
		assert.Equal(t, "test@example.com", got)
	})

	t.Run("Namespaces are isolated", func(t *testing.T) {
		_, err := repo.Get(ctx, "sid-2", "email")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "sid-1", "email", "other@example.com"))

		got, err := repo.Get(ctx, "sid-1", "email")
		assert.NoError(t, err)
		assert.Equal(t, "other@example.com", got)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "sid-1", "email"))

		_, err := repo.Get(ctx, "sid-1", "email")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("Value expires", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "sid-3", "email", "y@example.com"))

		now = now.Add(time.Minute)

		_, err := repo.Get(ctx, "sid-3", "email")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("No expiration", func(t *testing.T) {
		forever := NewMemoryStorage(0)
		require.NoError(t, forever.Set(ctx, "sid", "email", "z@example.com"))

		got, err := forever.Get(ctx, "sid", "email")
		assert.NoError(t, err)
		assert.Equal(t, "z@example.com", got)
	})
}
