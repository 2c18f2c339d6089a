package guard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGuard(t *testing.T) {
	ctx := context.Background()
	g := NewMemory()
	key := CheckoutKey(7)
	assert.Equal(t, "checkout_lock:7", key)

	token, ok, err := g.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	_, ok, _ = g.Acquire(ctx, key, time.Minute)
	assert.False(t, ok, "second acquire must fail while held")

	_, ok, _ = g.Acquire(ctx, CheckoutKey(8), time.Minute)
	assert.True(t, ok, "other users are independent")

	g.Release(ctx, key, token)
	_, ok, _ = g.Acquire(ctx, key, time.Minute)
	assert.True(t, ok)
}

func TestMemoryGuardExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	g := NewMemory()
	g.clock = func() time.Time { return now }

	_, ok, _ := g.Acquire(ctx, "k", 10*time.Second)
	require.True(t, ok)

	now = now.Add(11 * time.Second)
	_, ok, _ = g.Acquire(ctx, "k", 10*time.Second)
	assert.True(t, ok, "expired lock is reclaimed")
}

func TestMemoryGuardStaleReleaseKeepsNewLease(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	g := NewMemory()
	g.clock = func() time.Time { return now }

	first, ok, _ := g.Acquire(ctx, "k", 10*time.Second)
	require.True(t, ok)

	now = now.Add(11 * time.Second)
	second, ok, _ := g.Acquire(ctx, "k", 10*time.Second)
	require.True(t, ok)
	require.NotEqual(t, first, second)

	// the first holder finishes late
	g.Release(ctx, "k", first)
	_, ok, _ = g.Acquire(ctx, "k", 10*time.Second)
	assert.False(t, ok, "the newer lease must survive")

	g.Release(ctx, "k", second)
	_, ok, _ = g.Acquire(ctx, "k", 10*time.Second)
	assert.True(t, ok)
}
