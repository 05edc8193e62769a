package storage

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"traceable-link/internal/config"
	"traceable-link/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS clicks (
		id              TEXT PRIMARY KEY,
		sop             TEXT NOT NULL DEFAULT '',
		sop_name        TEXT NOT NULL DEFAULT '',
		target          TEXT NOT NULL DEFAULT '',
		email           TEXT NOT NULL DEFAULT '',
		name            TEXT NOT NULL DEFAULT '',
		clicked_at      TIMESTAMPTZ NOT NULL,
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

type PostgresClickStore struct {
	pool *pgxpool.Pool
}

func NewPostgresClickStore(ctx context.Context, cfg *config.PostgresSinkConfig) (*PostgresClickStore, error) {
	dbPool, err := pgxpool.New(ctx, GetConnectionStringFromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresClickStore{pool: dbPool}, nil
}

// GetConnectionStringFromConfig renders the sink config as a postgres:// URL understood by pgxpool.
func GetConnectionStringFromConfig(cfg *config.PostgresSinkConfig) string {
	connURL := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Database,
	}

	if cfg.Password != "" {
		connURL.User = url.UserPassword(cfg.Username, cfg.Password)
	} else if cfg.Username != "" {
		connURL.User = url.User(cfg.Username)
	}

	return connURL.String()
}

func (p *PostgresClickStore) EnsureSchema(ctx context.Context) error {
	if p == nil || p.pool == nil {
		return ErrStoreNotConfigured
	}

	if _, err := p.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create clicks table: %w", err)
	}
	return nil
}

func (p *PostgresClickStore) InsertClick(ctx context.Context, event models.ClickEvent) error {
	if p == nil || p.pool == nil {
		return ErrStoreNotConfigured
	}

	query := `
		INSERT INTO clicks (id, sop, sop_name, target, email, name, clicked_at, client_ip, user_agent,
		                    browser_name, browser_version, os_name, os_version, device_type, request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO NOTHING
	`

	row := newClickRow(event)
	_, err := p.pool.Exec(ctx, query,
		row.ID, row.Sop, row.SopName, row.Target, row.Email, row.Name, row.Date,
		row.ClientIP, row.UserAgent,
		row.BrowserName, row.BrowserVersion, row.OSName, row.OSVersion, row.DeviceType,
		row.RequestID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert click: %w", err)
	}

	return nil
}

func (p *PostgresClickStore) CountClicks(ctx context.Context) (int, error) {
	if p == nil || p.pool == nil {
		return 0, ErrStoreNotConfigured
	}

	var count int
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clicks`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count clicks: %w", err)
	}
	return count, nil
}

func (p *PostgresClickStore) Close() error {
	if p != nil && p.pool != nil {
		p.pool.Close()
	}
	return nil
}
