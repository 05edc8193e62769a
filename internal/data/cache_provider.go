package data

import (
	"fmt"
	"log/slog"
	"traceable-link/internal/config"
	"traceable-link/internal/middlewares"

	"github.com/redis/go-redis/v9"
)

// NewClickCache returns the dedup cache selected by tracking.dedup_cache. It returns nil when
// the dedup window is disabled.
func NewClickCache(cfg *config.Config, logger *slog.Logger, client *redis.Client) (middlewares.ClickCache, error) {
	if cfg.Tracking.DedupWindow <= 0 {
		return nil, nil
	}

	switch cfg.Tracking.DedupCache {
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("redis click cache requires a redis client")
		}
		return NewRedisClickCache(client, logger), nil
	case "memory", "":
		return NewMemClickCache(), nil
	default:
		return nil, fmt.Errorf("unsupported click cache: %s", cfg.Tracking.DedupCache)
	}
}
