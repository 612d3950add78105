package memcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetMissingKey(t *testing.T) {
	c := NewFeedCacheMemory()
	_, ok, err := c.Get(context.Background(), "nope")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSetGetRoundtrip(t *testing.T) {
	c := NewFeedCacheMemory()
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	val, ok, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), val)
}

func TestExpiry(t *testing.T) {
	c := NewFeedCacheMemory()
	ctx := context.Background()
	now := time.Now()
	c.now = func() time.Time { return now }

	assert.NoError(t, c.Set(ctx, "k", []byte("v"), 20*time.Second))

	now = now.Add(19 * time.Second)
	_, ok, _ := c.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	c := NewFeedCacheMemory()
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	assert.NoError(t, c.Set(ctx, "b", []byte("2"), time.Minute))
	assert.NoError(t, c.Clear(ctx))

	_, ok, _ := c.Get(ctx, "a")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "b")
	assert.False(t, ok)
}

func TestPurgeExpired(t *testing.T) {
	c := NewFeedCacheMemory()
	ctx := context.Background()
	now := time.Now()
	c.now = func() time.Time { return now }

	assert.NoError(t, c.Set(ctx, "old", []byte("1"), 10*time.Second))
	assert.NoError(t, c.Set(ctx, "fresh", []byte("2"), time.Hour))

	now = now.Add(30 * time.Second)
	assert.Equal(t, 1, c.PurgeExpired(ctx))

	_, ok, _ := c.Get(ctx, "fresh")
	assert.True(t, ok)
	assert.Equal(t, 0, c.PurgeExpired(ctx))
}

func TestSetCopiesValue(t *testing.T) {
	c := NewFeedCacheMemory()
	ctx := context.Background()

	buf := []byte("original")
	assert.NoError(t, c.Set(ctx, "k", buf, time.Minute))
	buf[0] = 'X'

	val, ok, _ := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, []byte("original"), val)
}
