package storage

import (
	"context"
	"errors"
	"traceable-link/internal/models"
	"traceable-link/internal/utils"
)

var ErrStoreNotConfigured = errors.New("click store is not configured")

// ClickStore persists click events in a SQL database.
type ClickStore interface {
	EnsureSchema(ctx context.Context) error
	InsertClick(ctx context.Context, event models.ClickEvent) error
	CountClicks(ctx context.Context) (int, error)
	Close() error
}

// clickRow is a click event flattened into table columns, including the parsed user agent.
type clickRow struct {
	models.ClickEvent
	utils.UserAgentDetails
}

func newClickRow(event models.ClickEvent) clickRow {
	return clickRow{
		ClickEvent:       event,
		UserAgentDetails: utils.ParseUserAgent(event.UserAgent),
	}
}
