// Package sqlite implements the repositories on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/osse101/QRHunt_Go/internal/clock"
	"github.com/osse101/QRHunt_Go/internal/database/migrations"
	"github.com/osse101/QRHunt_Go/internal/logger"
	"github.com/osse101/QRHunt_Go/internal/repository"
)

// Store implements repository.Store on SQLite
type Store struct {
	db    *sql.DB
	clock clock.Clock
}

var _ repository.Store = (*Store)(nil)

// Option configures a Store
type Option func(*Store)

// WithClock sets the clock used to check identity expiry
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// Open opens (or creates) the database at path and applies migrations
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && path != MemoryPath {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(DriverName, fmt.Sprintf(DSNFormat, path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serializes writers and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrations.Up(ctx, db, migrations.DialectSQLite); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("%w (also failed to close db: %v)", err, cerr)
		}
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgOpened, "path", path)

	s := &Store{db: db, clock: clock.NewReal()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Ping checks the database handle
func (s *Store) Ping(ctx context.Context) error {
	return classify("ping", s.db.PingContext(ctx))
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// withTx runs fn in a transaction, rolling back on any error
func (s *Store) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(op, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return classify(op, err)
	}
	if err := tx.Commit(); err != nil {
		return classify(op, fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}
