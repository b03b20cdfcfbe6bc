package kv

import (
	"errors"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
)

// Kind is the coarse failure category of a store error.
type Kind int

const (
	// KindUnknown is any error that is neither a capacity nor an
	// availability condition.
	KindUnknown Kind = iota

	// KindQuota means the write failed because the backend is full.
	KindQuota

	// KindUnavailable means the backend could not be reached or opened.
	KindUnavailable
)

// pgDiskFull is the PostgreSQL class 53 "insufficient resources" code for
// disk_full.
const pgDiskFull = "53100"

// Classify maps a store error to its failure category. All engine-specific
// capacity heuristics live here; callers must never inspect error strings
// themselves.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	if errors.Is(err, ErrQuotaExceeded) {
		return KindQuota
	}
	if errors.Is(err, syscall.ENOSPC) {
		return KindQuota
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgDiskFull {
			return KindQuota
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "database or disk is full"),
		strings.Contains(msg, "sqlite_full"),
		strings.Contains(msg, "no space left on device"),
		strings.Contains(msg, "quota"):
		return KindQuota
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "database is locked"):
		return KindUnavailable
	}

	return KindUnknown
}
