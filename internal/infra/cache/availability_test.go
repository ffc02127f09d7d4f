package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedSlots struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

func newTestCache(t *testing.T, ttl time.Duration) (*AvailabilityCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewAvailabilityCache(client, ttl, nil), mr
}

func TestAvailabilityCacheGetSet(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, time.Minute)

	t.Run("miss on empty cache", func(t *testing.T) {
		var dest cachedSlots
		found, err := c.Get(ctx, 1, 100, "2025-06-02", &dest)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("set then get", func(t *testing.T) {
		value := cachedSlots{Date: "2025-06-02", Slots: []string{"09:00", "09:15"}}
		require.NoError(t, c.Set(ctx, 1, 100, "2025-06-02", value))

		var dest cachedSlots
		found, err := c.Get(ctx, 1, 100, "2025-06-02", &dest)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, value, dest)
	})

	t.Run("expires after ttl", func(t *testing.T) {
		value := cachedSlots{Date: "2025-06-03"}
		require.NoError(t, c.Set(ctx, 1, 100, "2025-06-03", value))

		mr.FastForward(2 * time.Minute)

		var dest cachedSlots
		found, err := c.Get(ctx, 1, 100, "2025-06-03", &dest)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("corrupted value treated as miss", func(t *testing.T) {
		require.NoError(t, mr.Set("slots:1:100:2025-06-04", "{not json"))

		var dest cachedSlots
		found, err := c.Get(ctx, 1, 100, "2025-06-04", &dest)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestAvailabilityCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, time.Minute)

	// Две услуги на одну дату, одна на другую
	require.NoError(t, c.Set(ctx, 1, 100, "2025-06-02", cachedSlots{Date: "2025-06-02"}))
	require.NoError(t, c.Set(ctx, 1, 200, "2025-06-02", cachedSlots{Date: "2025-06-02"}))
	require.NoError(t, c.Set(ctx, 1, 100, "2025-06-03", cachedSlots{Date: "2025-06-03"}))
	// Другой салон не затрагивается
	require.NoError(t, c.Set(ctx, 2, 100, "2025-06-02", cachedSlots{Date: "2025-06-02"}))

	require.NoError(t, c.Invalidate(ctx, 1, "2025-06-02"))

	var dest cachedSlots

	found, err := c.Get(ctx, 1, 100, "2025-06-02", &dest)
	require.NoError(t, err)
	assert.False(t, found, "invalidated date, first service")

	found, err = c.Get(ctx, 1, 200, "2025-06-02", &dest)
	require.NoError(t, err)
	assert.False(t, found, "invalidated date, second service")

	found, err = c.Get(ctx, 1, 100, "2025-06-03", &dest)
	require.NoError(t, err)
	assert.True(t, found, "other date survives")

	found, err = c.Get(ctx, 2, 100, "2025-06-02", &dest)
	require.NoError(t, err)
	assert.True(t, found, "other salon survives")
}

func TestAvailabilityCacheInvalidateEmpty(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, time.Minute)

	// Сброс без ключей не ошибка
	assert.NoError(t, c.Invalidate(ctx, 1, "2025-06-02"))
}

func TestAvailabilityCacheNilSafe(t *testing.T) {
	ctx := context.Background()
	var c *AvailabilityCache

	var dest cachedSlots
	found, err := c.Get(ctx, 1, 100, "2025-06-02", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, c.Set(ctx, 1, 100, "2025-06-02", dest))
	assert.NoError(t, c.Invalidate(ctx, 1, "2025-06-02"))
}
