package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/osse101/QRHunt_Go/internal/domain"
)

// classify wraps a driver error with the matching domain sentinel
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrTimeout) || errors.Is(err, domain.ErrUnavailable) {
		return err
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s: %w", domain.ErrTimeout, op, err)
	case errors.Is(err, sql.ErrConnDone) || isBusy(err):
		return fmt.Errorf("%w: %s: %w", domain.ErrUnavailable, op, err)
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}

func isBusy(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	default:
		return false
	}
}
