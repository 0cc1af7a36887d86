// Package pgtest starts a throwaway Postgres container for integration tests.
package pgtest

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Start runs postgres:15-alpine and returns its connection string and a terminate func.
// A Docker failure (including a panic inside testcontainers) is reported as an error
// so callers can skip instead of failing.
func Start(ctx context.Context) (connStr string, terminate func(), err error) {
	defer func() {
		if r := recover(); r != nil {
			connStr, terminate, err = "", func() {}, fmt.Errorf("postgres container panicked (likely Docker issue): %v", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return "", func() {}, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return "", func() {}, fmt.Errorf("failed to get connection string: %w", err)
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}, nil
}
