package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/kvload/internal/retry"
	"github.com/vvka-141/kvload/pkg/kvload"
)

// Connection pool configuration constants
const (
	// A load writes from a single goroutine.
	DefaultMaxConns = 2

	DefaultMinConns = 1

	DefaultMaxConnIdleTime = 30 * time.Minute
)

// PostgresStore keeps entries in a two-column table (key text primary key, value bytea).
//
// Thread-Safety: Safe for concurrent use (pgxpool.Pool is thread-safe).
type PostgresStore struct {
	pool   *pgxpool.Pool
	table  string
	upsert string
}

// NewPostgresStore wraps an existing pool writing into table.
// table may be schema qualified ("public.kv_store"); each part is quoted.
func NewPostgresStore(pool *pgxpool.Pool, table string) *PostgresStore {
	if pool == nil {
		panic("pool cannot be nil")
	}
	ident := QuoteTable(table)
	return &PostgresStore{
		pool:  pool,
		table: ident,
		upsert: fmt.Sprintf(
			"INSERT INTO %s (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value",
			ident),
	}
}

// QuoteTable quotes a possibly schema qualified table name.
func QuoteTable(table string) string {
	return pgx.Identifier(strings.Split(table, ".")).Sanitize()
}

func configurePool(poolConfig *pgxpool.Config, logger kvload.Logger) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		logger.Verbose("%s", notice.Message)
	}
}

func openPostgres(ctx context.Context, rawURL, table string, executor *retry.Executor, logger kvload.Logger) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid PostgreSQL URL %s: %v: %w", Redact(rawURL), err, kvload.ErrInvalidConfig)
	}
	configurePool(poolConfig, logger)
	addr := fmt.Sprintf("%s:%d/%s", poolConfig.ConnConfig.Host, poolConfig.ConnConfig.Port, poolConfig.ConnConfig.Database)

	var pool *pgxpool.Pool
	err = executor.Execute(ctx, func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, wrapConnectionError(err, "PostgreSQL", addr)
	}

	s := NewPostgresStore(pool, table)
	if err := s.ensureTable(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Verbose("Writing into table %s", s.table)
	return s, nil
}

func (s *PostgresStore) ensureTable(ctx context.Context) error {
	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (key text PRIMARY KEY, value bytea NOT NULL)", s.table)
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("%w: creating table %s: %w", kvload.ErrStoreWrite, s.table, err)
	}
	return nil
}

// Set upserts one row.
func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.pool.Exec(ctx, s.upsert, key, value); err != nil {
		return fmt.Errorf("%w: upsert %q: %w", kvload.ErrStoreWrite, key, err)
	}
	return nil
}

// Close closes the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
