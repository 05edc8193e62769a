package clicklog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"
	"traceable-link/internal/models"
	"traceable-link/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	name string
	err  error

	mu     sync.Mutex
	events []models.ClickEvent
	closed bool
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Write(_ context.Context, event models.ClickEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *recordingSink) Events() []models.ClickEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ClickEvent(nil), s.events...)
}

func clickWithID(id string) models.ClickEvent {
	return models.ClickEvent{ID: id, Sop: "sop-" + id, Date: time.Now().UTC()}
}

// runDispatcher starts Run and returns a stop func that cancels it and waits for it to return.
func runDispatcher(t *testing.T, d *Dispatcher) func() {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	return func() {
		cancel()
		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(5 * time.Second):
			t.Fatal("dispatcher did not stop")
		}
	}
}

func TestDispatcher_FansOutToEverySink(t *testing.T) {
	first := &recordingSink{name: "first"}
	second := &recordingSink{name: "second"}
	d := NewDispatcher(slog.Default(), 16, first, second)

	stop := runDispatcher(t, d)
	d.Emit(context.Background(), clickWithID("1"))
	d.Emit(context.Background(), clickWithID("2"))
	stop()

	for _, sink := range []*recordingSink{first, second} {
		events := sink.Events()
		require.Len(t, events, 2, sink.name)
		assert.Equal(t, "1", events[0].ID)
		assert.Equal(t, "2", events[1].ID)
	}
}

func TestDispatcher_DrainsBufferedEventsOnStop(t *testing.T) {
	sink := &recordingSink{name: "sink"}
	d := NewDispatcher(slog.Default(), 8, sink)

	for i := 0; i < 5; i++ {
		d.Emit(context.Background(), clickWithID(string(rune('a'+i))))
	}
	assert.Equal(t, 5, d.Pending())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := d.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, sink.Events(), 5)
	assert.Zero(t, d.Pending())
}

func TestDispatcher_DropsWhenBufferFull(t *testing.T) {
	logHandler := testutil.NewTestLogHandler()
	sink := &recordingSink{name: "sink"}
	d := NewDispatcher(slog.New(logHandler), 2, sink)

	d.Emit(context.Background(), clickWithID("1"))
	d.Emit(context.Background(), clickWithID("2"))
	d.Emit(context.Background(), clickWithID("3"))

	assert.Equal(t, 2, d.Pending())
	assert.True(t, logHandler.ContainsMessage(slog.LevelWarn, "click buffer full, dropping click event"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = d.Run(ctx)

	events := sink.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "1", events[0].ID)
	assert.Equal(t, "2", events[1].ID)
}

func TestDispatcher_SinkFailureIsSwallowed(t *testing.T) {
	logHandler := testutil.NewTestLogHandler()
	broken := &recordingSink{name: "broken", err: errors.New("disk full")}
	healthy := &recordingSink{name: "healthy"}
	d := NewDispatcher(slog.New(logHandler), 4, broken, healthy)

	d.Emit(context.Background(), clickWithID("1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = d.Run(ctx)

	assert.Len(t, healthy.Events(), 1)
	assert.True(t, logHandler.ContainsMessage(slog.LevelError, "failed to write click event"))
}

func TestDispatcher_EmitDoesNotBlockWithoutRunner(t *testing.T) {
	d := NewDispatcher(slog.New(testutil.NewTestLogHandler()), 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			d.Emit(context.Background(), clickWithID("x"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked")
	}
}

func TestDispatcher_CloseClosesSinksOnce(t *testing.T) {
	sink := &recordingSink{name: "sink"}
	d := NewDispatcher(slog.Default(), 1, sink)

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())
	assert.True(t, sink.closed)
}

func slogDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
