package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_FreshHit(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	c := New(time.Minute, func() time.Time { return now })

	c.Set("k", 42)

	value, stale, ok := c.Get("k")
	require.True(t, ok)
	assert.False(t, stale)
	assert.Equal(t, 42, value)
}

func TestCache_ExpiredEntryIsReturnedStale(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	c := New(time.Minute, func() time.Time { return now })

	c.Set("k", "v")
	now = now.Add(2 * time.Minute)

	value, stale, ok := c.Get("k")
	require.True(t, ok)
	assert.True(t, stale)
	assert.Equal(t, "v", value)
}

func TestCache_ExactExpiryIsStillFresh(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	c := New(time.Minute, func() time.Time { return now })

	c.Set("k", "v")
	now = now.Add(time.Minute)

	_, stale, ok := c.Get("k")
	require.True(t, ok)
	assert.False(t, stale)
}

func TestCache_MissingKey(t *testing.T) {
	c := New(time.Minute, nil)

	_, _, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestCache_SetRefreshesExpiry(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	c := New(time.Minute, func() time.Time { return now })

	c.Set("k", 1)
	now = now.Add(59 * time.Second)
	c.Set("k", 2)
	now = now.Add(59 * time.Second)

	value, stale, ok := c.Get("k")
	require.True(t, ok)
	assert.False(t, stale)
	assert.Equal(t, 2, value)
}

func TestCache_Invalidate(t *testing.T) {
	c := New(time.Minute, nil)

	c.Set("k", 1)
	c.Invalidate("k")

	_, _, ok := c.Get("k")
	assert.False(t, ok)
}
