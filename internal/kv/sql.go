package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // driver: duckdb
	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

// Dialect names a SQL backend.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectDuckDB   Dialect = "duckdb"
	DialectPostgres Dialect = "postgres"
)

type dialectQueries struct {
	driver     string
	defaultDSN string
	selectSQL  string
	upsertSQL  string
}

const createTableSQL = `CREATE TABLE IF NOT EXISTS kv_store (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at BIGINT NOT NULL
)`

var dialects = map[Dialect]dialectQueries{
	DialectSQLite: {
		driver:     "sqlite",
		defaultDSN: "file:quizdeck.db?mode=rwc&_pragma=busy_timeout(5000)",
		selectSQL:  `SELECT value FROM kv_store WHERE key = ?`,
		upsertSQL: `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
	},
	DialectDuckDB: {
		driver:     "duckdb",
		defaultDSN: "quizdeck.duckdb",
		selectSQL:  `SELECT value FROM kv_store WHERE key = ?`,
		upsertSQL: `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
	},
	DialectPostgres: {
		driver:     "pgx",
		defaultDSN: "postgres://localhost:5432/quizdeck?sslmode=disable",
		selectSQL:  `SELECT value FROM kv_store WHERE key = $1`,
		upsertSQL: `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
	},
}

// SQL stores values in a kv_store table through database/sql.
type SQL struct {
	db      *sql.DB
	dialect dialectQueries
	now     func() time.Time
}

// OpenSQL opens a database for dialect, verifies it responds and ensures the
// kv_store table exists. An empty dsn uses the dialect default.
func OpenSQL(ctx context.Context, dialect Dialect, dsn string) (*SQL, error) {
	d, ok := dialects[dialect]
	if !ok {
		return nil, fmt.Errorf("kv: unsupported sql dialect %q", dialect)
	}
	if dsn == "" {
		dsn = d.defaultDSN
	}
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if dialect != DialectPostgres {
		// Embedded engines take a single writer.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}
	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure %s schema: %w", dialect, err)
	}
	return &SQL{db: db, dialect: d, now: time.Now}, nil
}

// Get returns the value for key, if present.
func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}
	var value string
	err := s.db.QueryRowContext(ctx, s.dialect.selectSQL, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select %q: %w", key, err)
	}
	return value, true, nil
}

// Set upserts value under key.
func (s *SQL) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if _, err := s.db.ExecContext(ctx, s.dialect.upsertSQL, key, value, s.now().UnixMilli()); err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQL) Close() error {
	return s.db.Close()
}
