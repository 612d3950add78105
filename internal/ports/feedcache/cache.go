package feedcache

import (
	"context"
	"time"
)

// Cache is a key -> (value, expiry) store for rendered feed pages. Writers
// never update entries in place; entries only leave via TTL expiry or
// Clear. Get's second result is false for a missing or expired key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Clear drops every cached page (the manual full clear).
	Clear(ctx context.Context) error
}
