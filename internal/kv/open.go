package kv

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Backend names a Store implementation.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendFile     Backend = "file"
	BackendSQLite   Backend = "sqlite"
	BackendDuckDB   Backend = "duckdb"
	BackendPostgres Backend = "postgres"
	BackendRedis    Backend = "redis"
)

// Backends lists every supported backend name.
var Backends = []Backend{BackendMemory, BackendFile, BackendSQLite, BackendDuckDB, BackendPostgres, BackendRedis}

// Options selects and configures a backend.
type Options struct {
	Backend Backend
	// Path is the file backend location.
	Path string
	// DSN is the data source for the sql backends.
	DSN   string
	Redis RedisOptions
	// Logger receives backend warnings. Nil discards them.
	Logger *slog.Logger
}

// ParseBackend validates a backend name.
func ParseBackend(value string) (Backend, error) {
	normalized := Backend(strings.ToLower(strings.TrimSpace(value)))
	for _, backend := range Backends {
		if normalized == backend {
			return backend, nil
		}
	}
	return "", fmt.Errorf("unknown storage backend %q", value)
}

// Open creates the Store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile, "":
		store, err := NewFile(opts.Path)
		if err != nil {
			return nil, err
		}
		if opts.Logger != nil {
			store.logger = opts.Logger
		}
		return store, nil
	case BackendSQLite:
		return OpenSQL(ctx, DialectSQLite, opts.DSN)
	case BackendDuckDB:
		return OpenSQL(ctx, DialectDuckDB, opts.DSN)
	case BackendPostgres:
		return OpenSQL(ctx, DialectPostgres, opts.DSN)
	case BackendRedis:
		return OpenRedis(ctx, opts.Redis)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
