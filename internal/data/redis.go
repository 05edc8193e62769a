package data

import (
	"context"
	"fmt"
	"log/slog"
	"traceable-link/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient returns a client for the given database index, going through sentinel when configured.
func NewRedisClient(logger *slog.Logger, cfg *config.RedisConfig, db int) *redis.Client {
	if cfg.Sentinel != nil {
		logger.Debug("using redis sentinel",
			"master", cfg.Sentinel.MasterName,
			"sentinels", cfg.Sentinel.SentinelAddresses,
			"db", db)

		return redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:       cfg.Sentinel.MasterName,
			SentinelAddrs:    cfg.Sentinel.SentinelAddresses,
			SentinelUsername: cfg.Sentinel.SentinelUsername,
			SentinelPassword: cfg.Sentinel.SentinelPassword,
			Username:         cfg.Username,
			Password:         cfg.Password,
			DB:               db,
			MinIdleConns:     2,
		})
	}

	return redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           db,
		MinIdleConns: 2,
	})
}

// ConnectRedis builds a client and verifies the connection with a PING.
func ConnectRedis(ctx context.Context, logger *slog.Logger, cfg *config.RedisConfig, db int) (*redis.Client, error) {
	client := NewRedisClient(logger, cfg, db)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return client, nil
}
