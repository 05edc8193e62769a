package jobs

import (
	"context"
	"log/slog"
	"time"
)

// ClickRunner drains queued click events until its context is canceled.
type ClickRunner interface {
	Run(ctx context.Context) error
	Pending() int
}

// ClickDispatchJob keeps the click dispatcher running for the lifetime of the server.
type ClickDispatchJob struct {
	dispatcher ClickRunner
	logger     *slog.Logger
}

func NewClickDispatchJob(dispatcher ClickRunner, logger *slog.Logger) *ClickDispatchJob {
	return &ClickDispatchJob{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (j *ClickDispatchJob) Name() string {
	return "click_dispatch"
}

// Interval is zero; the job is event driven.
func (j *ClickDispatchJob) Interval() time.Duration {
	return 0
}

func (j *ClickDispatchJob) Run(ctx context.Context) error {
	j.logger.Debug("Starting click dispatcher")

	err := j.dispatcher.Run(ctx)

	j.logger.Debug("Click dispatcher stopped", "pending", j.dispatcher.Pending())
	return err
}
