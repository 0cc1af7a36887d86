package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/QRHunt_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// withTx runs fn inside a transaction, committing on success.
// Use SafeRollback semantics: any error from fn or Commit rolls back.
func withTx(ctx context.Context, db *pgxpool.Pool, op string, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return classify(op, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer SafeRollback(ctx, tx)

	if err := fn(tx); err != nil {
		return classify(op, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return classify(op, fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}
