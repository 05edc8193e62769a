package clicklog

import (
	"context"
	"traceable-link/internal/models"
	"traceable-link/internal/storage"
)

// StoreSink writes click events to a SQL click store.
type StoreSink struct {
	name  string
	store storage.ClickStore
}

func NewStoreSink(name string, store storage.ClickStore) *StoreSink {
	return &StoreSink{name: name, store: store}
}

func (s *StoreSink) Name() string {
	return s.name
}

func (s *StoreSink) Write(ctx context.Context, event models.ClickEvent) error {
	return s.store.InsertClick(ctx, event)
}

func (s *StoreSink) Close() error {
	return s.store.Close()
}
