// Package postgres implements the collection and profile repositories on PostgreSQL.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QRHunt_Go/internal/clock"
	"github.com/osse101/QRHunt_Go/internal/repository"
)

// Store implements repository.Store for PostgreSQL
type Store struct {
	db    *pgxpool.Pool
	clock clock.Clock
}

var _ repository.Store = (*Store)(nil)

// Option configures a Store
type Option func(*Store)

// WithClock sets the clock used to check identity expiry
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// NewStore creates a new Store over an open pool. The schema must already be migrated.
func NewStore(db *pgxpool.Pool, opts ...Option) *Store {
	s := &Store{db: db, clock: clock.NewReal()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping checks database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return classify("ping", s.db.Ping(ctx))
}

// Close releases the pool
func (s *Store) Close() error {
	s.db.Close()
	return nil
}
