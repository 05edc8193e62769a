package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type Sweeper interface {
	Sweep() int
}

// ClickCacheSweepJob periodically evicts expired fingerprints from the in-memory dedup cache.
type ClickCacheSweepJob struct {
	cache    Sweeper
	interval time.Duration
	logger   *slog.Logger
}

func NewClickCacheSweepJob(cache Sweeper, interval time.Duration, logger *slog.Logger) *ClickCacheSweepJob {
	return &ClickCacheSweepJob{
		cache:    cache,
		interval: interval,
		logger:   logger,
	}
}

func (j *ClickCacheSweepJob) Name() string {
	return "click_cache_sweep"
}

func (j *ClickCacheSweepJob) Interval() time.Duration {
	return j.interval
}

func (j *ClickCacheSweepJob) Run(ctx context.Context) error {
	if j.interval <= 0 {
		return fmt.Errorf("non-positive ticker interval: %s", j.interval)
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			j.logger.Debug("Click cache sweep canceled")
			return ctx.Err()
		case <-ticker.C:
			if removed := j.cache.Sweep(); removed > 0 {
				j.logger.Debug("Swept expired click fingerprints", "removed", removed)
			}
		}
	}
}
