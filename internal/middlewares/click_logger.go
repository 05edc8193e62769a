package middlewares

import (
	"context"
	"time"
	"traceable-link/internal/models"
)

//go:generate mockgen -source=click_logger.go -destination=../mocks/click.go -package=mocks

// ClickLogger accepts click events. Emit must not block the caller and never reports failure.
type ClickLogger interface {
	Emit(ctx context.Context, event models.ClickEvent)
}

// ClickCache remembers recently seen click fingerprints.
type ClickCache interface {
	// MarkClick records key for window and reports whether it was not already present.
	MarkClick(ctx context.Context, key string, window time.Duration) (first bool, err error)
}
