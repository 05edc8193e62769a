package clicklog

import (
	"context"
	"fmt"
	"traceable-link/internal/config"
	"traceable-link/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisStreamClient is the subset of the go-redis client used by RedisSink.
type RedisStreamClient interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	Close() error
}

// RedisSink appends click events to a capped redis stream.
type RedisSink struct {
	client RedisStreamClient
	stream string
	maxLen int64
}

func NewRedisSink(client RedisStreamClient, cfg *config.RedisSinkConfig) *RedisSink {
	return &RedisSink{
		client: client,
		stream: cfg.Stream,
		maxLen: cfg.MaxLen,
	}
}

func (s *RedisSink) Name() string {
	return config.SinkRedis
}

func (s *RedisSink) Write(ctx context.Context, event models.ClickEvent) error {
	record := newClickRecord(event)

	err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"id":         record.ID,
			"sop":        record.Sop,
			"sopName":    record.SopName,
			"target":     record.Target,
			"email":      record.Email,
			"name":       record.Name,
			"date":       record.Date,
			"client_ip":  record.ClientIP,
			"user_agent": record.UserAgent,
			"request_id": record.RequestID,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to add click to stream %s: %w", s.stream, err)
	}

	return nil
}

func (s *RedisSink) Close() error {
	return s.client.Close()
}
