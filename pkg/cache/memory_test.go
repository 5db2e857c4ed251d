package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string
	Price float64
}

func TestMemoryCache_SetGet(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", payload{Name: "SOL", Price: 150}, time.Minute))

	var got payload
	require.NoError(t, mc.Get(ctx, "k", &got))
	assert.Equal(t, payload{Name: "SOL", Price: 150}, got)
}

func TestMemoryCache_MissAndExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	var got payload
	assert.ErrorIs(t, mc.Get(ctx, "absent", &got), ErrCacheMiss)

	require.NoError(t, mc.Set(ctx, "short", "v", time.Nanosecond))
	time.Sleep(time.Millisecond)
	var s string
	assert.ErrorIs(t, mc.Get(ctx, "short", &s), ErrCacheMiss)
}

func TestMemoryCache_PrimitiveRoundTrip(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "price", 1.25, time.Minute))

	var price float64
	require.NoError(t, mc.Get(ctx, "price", &price))
	assert.Equal(t, 1.25, price)
}

func TestMemoryCache_EvictsLRU(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "a", "1", time.Minute))
	time.Sleep(time.Millisecond)
	require.NoError(t, mc.Set(ctx, "b", "2", time.Minute))
	time.Sleep(time.Millisecond)

	// Touch "a" so "b" becomes the least recently used entry.
	var v string
	require.NoError(t, mc.Get(ctx, "a", &v))
	time.Sleep(time.Millisecond)

	require.NoError(t, mc.Set(ctx, "c", "3", time.Minute))

	assert.NoError(t, mc.Get(ctx, "a", &v))
	assert.ErrorIs(t, mc.Get(ctx, "b", &v), ErrCacheMiss)
}

func TestMemoryCache_MGetMarshalsValues(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "s", "plain", time.Minute))
	require.NoError(t, mc.Set(ctx, "p", payload{Name: "USDC", Price: 1}, time.Minute))

	got, err := mc.MGet(ctx, "s", "p", "absent")
	require.NoError(t, err)
	assert.Equal(t, "plain", got["s"])
	assert.JSONEq(t, `{"Name":"USDC","Price":1}`, got["p"])
	_, ok := got["absent"]
	assert.False(t, ok)
}

func TestGenerateKeys(t *testing.T) {
	assert.Equal(t, "price:abc", GenerateKey("price", "abc"))
	assert.Equal(t, "route:a:b:100", GenerateKeyWithParams("route", "a", "b", 100))
}
