package kv

import (
	"context"
	"fmt"
	"strings"
)

// Open selects a backend from the DSN scheme:
//
//	memory://           in-process store (no persistence)
//	file:///var/data    one file per key under the directory
//	sqlite:store.db     SQLite database file
//	postgres://...      PostgreSQL (full pgx DSN)
//
// A DSN without a scheme is treated as a SQLite file path.
func Open(ctx context.Context, dsn string, quota int64) (Store, error) {
	switch {
	case dsn == "memory://" || dsn == "memory":
		return NewMemoryStore(int(quota)), nil
	case strings.HasPrefix(dsn, "file://"):
		return NewFileStore(strings.TrimPrefix(dsn, "file://"), quota)
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return NewPostgresStore(ctx, dsn)
	case strings.HasPrefix(dsn, "sqlite:"):
		return NewSQLiteStore(ctx, strings.TrimPrefix(dsn, "sqlite:"))
	case dsn != "":
		return NewSQLiteStore(ctx, dsn)
	default:
		return nil, fmt.Errorf("empty store DSN")
	}
}
