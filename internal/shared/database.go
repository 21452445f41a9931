package shared

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/desertthunder/panelstore/internal/dialect"
)

// Client is the storage capability handed to migrations, the validator and every repository.
//
// It pairs an open connection pool with the dialect chosen from configuration.
type Client struct {
	DB      *sql.DB
	Dialect dialect.Dialect
}

// NewClient wraps an already opened database. Useful for tests that supply their own [sql.DB].
func NewClient(db *sql.DB, d dialect.Dialect) *Client {
	return &Client{DB: db, Dialect: d}
}

// NewDatabase opens a connection for the configured driver and verifies it with a ping.
//
// For sqlite the path can be ":memory:" for an in-memory database; the pool is then pinned
// to a single connection since every sqlite connection would otherwise get its own database.
func NewDatabase(ctx context.Context, cfg DatabaseConfig) (*Client, error) {
	d, err := dialect.Get(cfg.Driver)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownDialect, err)
	}

	db, err := sql.Open(d.DriverName(), cfg.Source())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if isMemory(cfg) {
		ConfigureDatabase(db, 1, 1)
	} else {
		ConfigureDatabase(db, cfg.MaxOpenConns, cfg.MaxIdleConns)
	}

	return NewClient(db, d), nil
}

// ConfigureDatabase sets connection pool settings for the database.
// Non-positive values leave the database/sql defaults in place.
func ConfigureDatabase(db *sql.DB, maxOpenConns, maxIdleConns int) {
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
}

// Close closes the underlying connection pool.
func (c *Client) Close() error {
	return c.DB.Close()
}

func isMemory(cfg DatabaseConfig) bool {
	return cfg.Driver == "sqlite" && strings.Contains(cfg.Path, ":memory:")
}
