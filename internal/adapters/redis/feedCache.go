package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// keyPrefix namespaces feed pages so Clear never touches unrelated keys.
const keyPrefix = "feedcache:"

// FeedCacheRedis stores rendered feed pages in Redis; expiry is delegated
// to the server's per-key TTL.
type FeedCacheRedis struct {
	Client *redis.Client
}

func NewFeedCacheRedis(client *redis.Client) *FeedCacheRedis {
	return &FeedCacheRedis{Client: client}
}

func (r *FeedCacheRedis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.Client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *FeedCacheRedis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.Client.Set(ctx, keyPrefix+key, value, ttl).Err()
}

func (r *FeedCacheRedis) Clear(ctx context.Context) error {
	iter := r.Client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.Client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
