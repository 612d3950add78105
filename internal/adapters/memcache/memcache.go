// Package memcache is the in-process feed-cache backend: a mutex-guarded
// map of key -> (value, deadline). It exists so the service runs without
// a Redis instance; the workers package prunes what TTL expiry leaves
// behind.
package memcache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value    []byte
	deadline time.Time
}

type FeedCacheMemory struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewFeedCacheMemory() *FeedCacheMemory {
	return &FeedCacheMemory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (c *FeedCacheMemory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if c.now().After(e.deadline) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (c *FeedCacheMemory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	buf := make([]byte, len(value))
	copy(buf, value)
	c.entries[key] = entry{value: buf, deadline: c.now().Add(ttl)}
	return nil
}

func (c *FeedCacheMemory) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
	return nil
}

// PurgeExpired drops entries past their deadline and reports how many
// went. Called periodically by the cache janitor.
func (c *FeedCacheMemory) PurgeExpired(ctx context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	purged := 0
	for key, e := range c.entries {
		if now.After(e.deadline) {
			delete(c.entries, key)
			purged++
		}
	}
	return purged
}
