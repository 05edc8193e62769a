package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"traceable-link/internal/models"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS clicks (
		id              TEXT PRIMARY KEY,
		sop             TEXT NOT NULL DEFAULT '',
		sop_name        TEXT NOT NULL DEFAULT '',
		target          TEXT NOT NULL DEFAULT '',
		email           TEXT NOT NULL DEFAULT '',
		name            TEXT NOT NULL DEFAULT '',
		clicked_at      INTEGER NOT NULL,
		client_ip       TEXT NOT NULL DEFAULT '',
		user_agent      TEXT NOT NULL DEFAULT '',
		browser_name    TEXT NOT NULL DEFAULT '',
		browser_version TEXT NOT NULL DEFAULT '',
		os_name         TEXT NOT NULL DEFAULT '',
		os_version      TEXT NOT NULL DEFAULT '',
		device_type     TEXT NOT NULL DEFAULT '',
		request_id      TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS clicks_sop_idx ON clicks (sop);
	CREATE INDEX IF NOT EXISTS clicks_clicked_at_idx ON clicks (clicked_at);
`

// SQLiteClickStore keeps clicks in a local SQLite file. Timestamps are stored as unix milliseconds.
type SQLiteClickStore struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func NewSQLiteClickStore(ctx context.Context, path string) (*SQLiteClickStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	return &SQLiteClickStore{sqlDB: sqlDB}, nil
}

func (s *SQLiteClickStore) EnsureSchema(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return ErrStoreNotConfigured
	}

	if _, err := s.sqlDB.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to create clicks table: %w", err)
	}
	return nil
}

func (s *SQLiteClickStore) InsertClick(ctx context.Context, event models.ClickEvent) error {
	if s == nil || s.sqlDB == nil {
		return ErrStoreNotConfigured
	}

	query := `
		INSERT INTO clicks (id, sop, sop_name, target, email, name, clicked_at, client_ip, user_agent,
		                    browser_name, browser_version, os_name, os_version, device_type, request_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`

	row := newClickRow(event)
	_, err := s.sqlDB.ExecContext(ctx, query,
		row.ID, row.Sop, row.SopName, row.Target, row.Email, row.Name, toMillis(row.Date),
		row.ClientIP, row.UserAgent,
		row.BrowserName, row.BrowserVersion, row.OSName, row.OSVersion, row.DeviceType,
		row.RequestID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert click: %w", err)
	}

	return nil
}

// GetClick returns a stored click by id together with its parsed user agent columns.
func (s *SQLiteClickStore) GetClick(ctx context.Context, id string) (*models.ClickEvent, map[string]string, error) {
	if s == nil || s.sqlDB == nil {
		return nil, nil, ErrStoreNotConfigured
	}

	query := `
		SELECT id, sop, sop_name, target, email, name, clicked_at, client_ip, user_agent,
		       browser_name, browser_version, os_name, os_version, device_type, request_id
		FROM clicks
		WHERE id = ?
	`

	var (
		event     models.ClickEvent
		clickedAt int64
		row       clickRow
	)
	err := s.sqlDB.QueryRowContext(ctx, query, id).Scan(
		&event.ID, &event.Sop, &event.SopName, &event.Target, &event.Email, &event.Name,
		&clickedAt, &event.ClientIP, &event.UserAgent,
		&row.BrowserName, &row.BrowserVersion, &row.OSName, &row.OSVersion, &row.DeviceType,
		&event.RequestID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get click: %w", err)
	}
	event.Date = fromMillis(clickedAt)

	return &event, map[string]string{
		"browser_name":    row.BrowserName,
		"browser_version": row.BrowserVersion,
		"os_name":         row.OSName,
		"os_version":      row.OSVersion,
		"device_type":     row.DeviceType,
	}, nil
}

func (s *SQLiteClickStore) CountClicks(ctx context.Context) (int, error) {
	if s == nil || s.sqlDB == nil {
		return 0, ErrStoreNotConfigured
	}

	var count int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM clicks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count clicks: %w", err)
	}
	return count, nil
}

func (s *SQLiteClickStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}
