package clicklog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"traceable-link/internal/config"
	"traceable-link/internal/models"
)

// FileSink appends click events to a file as JSON lines.
type FileSink struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

func NewFileSink(path string) (*FileSink, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open click log file: %w", err)
	}

	return &FileSink{
		file: file,
		enc:  json.NewEncoder(file),
	}, nil
}

func (s *FileSink) Name() string {
	return config.SinkFile
}

func (s *FileSink) Write(_ context.Context, event models.ClickEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enc.Encode(newClickRecord(event)); err != nil {
		return fmt.Errorf("failed to append click event: %w", err)
	}
	return nil
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
