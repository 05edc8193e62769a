package clicklog

import (
	"context"
	"log/slog"
	"sync"
	"time"
	"traceable-link/internal/metrics"
	"traceable-link/internal/middlewares"
	"traceable-link/internal/models"
)

const defaultWriteTimeout = 5 * time.Second

// Dispatcher queues click events and fans them out to every sink from a single goroutine.
// Emit never blocks the request path; a full buffer drops the event.
type Dispatcher struct {
	events       chan models.ClickEvent
	sinks        []Sink
	logger       *slog.Logger
	writeTimeout time.Duration
	closeOnce    sync.Once
}

var _ middlewares.ClickLogger = (*Dispatcher)(nil)

func NewDispatcher(logger *slog.Logger, bufferSize int, sinks ...Sink) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1
	}

	return &Dispatcher{
		events:       make(chan models.ClickEvent, bufferSize),
		sinks:        sinks,
		logger:       logger,
		writeTimeout: defaultWriteTimeout,
	}
}

func (d *Dispatcher) Emit(_ context.Context, event models.ClickEvent) {
	select {
	case d.events <- event:
		metrics.ClicksEmitted.Inc()
	default:
		metrics.ClicksDropped.Inc()
		d.logger.Warn("click buffer full, dropping click event",
			"id", event.ID,
			"sop", event.Sop,
			"buffer_size", cap(d.events))
	}
}

// Run writes queued events until ctx is canceled, then drains whatever is still buffered.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			d.drain()
			return ctx.Err()
		case event := <-d.events:
			d.dispatch(event)
		}
	}
}

func (d *Dispatcher) drain() {
	drained := 0
	for {
		select {
		case event := <-d.events:
			d.dispatch(event)
			drained++
		default:
			if drained > 0 {
				d.logger.Debug("drained click buffer", "events", drained)
			}
			return
		}
	}
}

func (d *Dispatcher) dispatch(event models.ClickEvent) {
	for _, sink := range d.sinks {
		start := time.Now()

		ctx, cancel := context.WithTimeout(context.Background(), d.writeTimeout)
		err := sink.Write(ctx, event)
		cancel()

		metrics.ClickSinkDuration.WithLabelValues(sink.Name()).Observe(time.Since(start).Seconds())

		if err != nil {
			metrics.ClickSinkErrors.WithLabelValues(sink.Name()).Inc()
			d.logger.Error("failed to write click event",
				"sink", sink.Name(),
				"id", event.ID,
				"error", err)
			continue
		}

		metrics.ClickSinkWrites.WithLabelValues(sink.Name()).Inc()
	}
}

// Pending returns the number of buffered events.
func (d *Dispatcher) Pending() int {
	return len(d.events)
}

// Close releases every sink. It must only be called once Run has returned.
func (d *Dispatcher) Close() error {
	var firstErr error
	d.closeOnce.Do(func() {
		for _, sink := range d.sinks {
			if err := sink.Close(); err != nil {
				d.logger.Error("failed to close click sink", "sink", sink.Name(), "error", err)
				if firstErr == nil {
					firstErr = err
				}
			}
		}
	})
	return firstErr
}
