package data

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"traceable-link/internal/metrics"

	"github.com/redis/go-redis/v9"
)

// RedisClickCacheClient is the subset of the go-redis client used by RedisClickCache.
type RedisClickCacheClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Close() error
}

// RedisClickCache shares click fingerprints between replicas. Keys expire on their own.
type RedisClickCache struct {
	client RedisClickCacheClient
	logger *slog.Logger
}

func NewRedisClickCache(client RedisClickCacheClient, logger *slog.Logger) *RedisClickCache {
	return &RedisClickCache{
		client: client,
		logger: logger,
	}
}

// key generates a namespaced Redis key
func (r *RedisClickCache) key(fingerprint string) string {
	return fmt.Sprintf("cache:click:%s", fingerprint)
}

func (r *RedisClickCache) MarkClick(ctx context.Context, key string, window time.Duration) (bool, error) {
	start := time.Now()
	defer func() {
		metrics.CacheOperationDuration.WithLabelValues(metrics.CacheTypeRedis).Observe(time.Since(start).Seconds())
	}()

	first, err := r.client.SetNX(ctx, r.key(key), 1, window).Result()
	if err != nil {
		r.logger.Error("error executing redis SETNX", "error", err)
		return false, fmt.Errorf("failed to mark click: %w", err)
	}

	return first, nil
}

func (r *RedisClickCache) Close() error {
	return r.client.Close()
}
