package clicklog

import (
	"context"
	"io"
	"log/slog"
	"traceable-link/internal/config"
	"traceable-link/internal/models"
)

// StdoutSink writes one "CLICK LOG" line per event.
type StdoutSink struct {
	logger *slog.Logger
}

func NewStdoutSink(w io.Writer, format string) *StdoutSink {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, nil)
	} else {
		handler = slog.NewTextHandler(w, nil)
	}

	return &StdoutSink{logger: slog.New(handler)}
}

func (s *StdoutSink) Name() string {
	return config.SinkStdout
}

func (s *StdoutSink) Write(ctx context.Context, event models.ClickEvent) error {
	s.logger.InfoContext(ctx, "CLICK LOG",
		"sop", event.Sop,
		"sopName", event.SopName,
		"target", event.Target,
		"email", event.Email,
		"name", event.Name,
		"date", event.FormattedDate(),
		"id", event.ID)
	return nil
}

func (s *StdoutSink) Close() error {
	return nil
}
