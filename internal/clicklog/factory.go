package clicklog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"traceable-link/internal/config"
	"traceable-link/internal/storage"

	"github.com/redis/go-redis/v9"
)

// NewSinks builds the sinks listed in click_log.sinks. redisClient is only used by the redis sink.
func NewSinks(ctx context.Context, cfg *config.Config, logger *slog.Logger, redisClient *redis.Client) ([]Sink, error) {
	sinks := make([]Sink, 0, len(cfg.ClickLog.Sinks))

	closeAll := func() {
		for _, sink := range sinks {
			_ = sink.Close()
		}
	}

	for _, name := range cfg.ClickLog.Sinks {
		var sink Sink

		switch name {
		case config.SinkStdout:
			sink = NewStdoutSink(os.Stdout, cfg.Log.Format)
		case config.SinkFile:
			fileSink, err := NewFileSink(cfg.ClickLog.File.Path)
			if err != nil {
				closeAll()
				return nil, err
			}
			sink = fileSink
		case config.SinkRedis:
			if redisClient == nil {
				closeAll()
				return nil, fmt.Errorf("redis click sink requires a redis client")
			}
			sink = NewRedisSink(redisClient, cfg.ClickLog.Redis)
		case config.SinkPostgres:
			store, err := storage.NewPostgresClickStore(ctx, cfg.ClickLog.Postgres)
			if err != nil {
				closeAll()
				return nil, err
			}
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				closeAll()
				return nil, err
			}
			sink = NewStoreSink(config.SinkPostgres, store)
		case config.SinkSQLite:
			store, err := storage.NewSQLiteClickStore(ctx, cfg.ClickLog.SQLite.Path)
			if err != nil {
				closeAll()
				return nil, err
			}
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				closeAll()
				return nil, err
			}
			sink = NewStoreSink(config.SinkSQLite, store)
		default:
			closeAll()
			return nil, fmt.Errorf("unsupported click sink: %s", name)
		}

		logger.Debug("click sink enabled", "sink", name)
		sinks = append(sinks, sink)
	}

	return sinks, nil
}
