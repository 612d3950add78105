package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger is what the janitor prunes; the in-process feed cache
// implements it. The Redis backend expires keys itself and never needs a
// janitor.
type Purger interface {
	PurgeExpired(ctx context.Context) int
}

type CacheJanitor struct {
	Cache    Purger
	Interval time.Duration
	Logger   *zap.Logger
}

func NewCacheJanitor(cache Purger, interval time.Duration, logger *zap.Logger) *CacheJanitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheJanitor{
		Cache:    cache,
		Interval: interval,
		Logger:   logger,
	}
}

// Run prunes expired cache entries until ctx is cancelled.
func (w *CacheJanitor) Run(ctx context.Context) {
	w.Logger.Info("🚀 Cache janitor started", zap.Duration("interval", w.Interval))
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("🛑 Cache janitor stopped")
			return
		case <-ticker.C:
			if purged := w.Cache.PurgeExpired(ctx); purged > 0 {
				w.Logger.Debug("purged expired feed pages", zap.Int("count", purged))
			}
		}
	}
}
