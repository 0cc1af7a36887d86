package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/QRHunt_Go/internal/domain"
)

// Read returns the items owned by userID
func (s *Store) Read(ctx context.Context, caller domain.Identity, userID string) (domain.ItemSet, error) {
	if err := caller.Authorize(userID, s.clock.Now()); err != nil {
		return nil, err
	}

	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM collections WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return nil, classify(OpReadCollection, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, userID)
	}

	rows, err := s.db.Query(ctx, `SELECT item_id FROM collection_items WHERE user_id = $1`, userID)
	if err != nil {
		return nil, classify(OpReadCollection, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, classify(OpReadCollection, err)
	}

	return domain.NewItemSet(ids...), nil
}

// AppendIfAbsent inserts the (user, item) row; the primary key turns a duplicate into a no-op.
func (s *Store) AppendIfAbsent(ctx context.Context, caller domain.Identity, userID, itemID string) (bool, error) {
	if err := caller.Authorize(userID, s.clock.Now()); err != nil {
		return false, err
	}
	if itemID == "" {
		return false, fmt.Errorf("%w: empty item id", domain.ErrInvalidInput)
	}

	var added bool
	err := withTx(ctx, s.db, OpAppendItem, func(tx pgx.Tx) error {
		if err := ensureCollection(ctx, tx, userID); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `
			INSERT INTO collection_items (user_id, item_id)
			VALUES ($1, $2)
			ON CONFLICT (user_id, item_id) DO NOTHING
		`, userID, itemID)
		if err != nil {
			return err
		}
		added = tag.RowsAffected() == 1
		return nil
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// Create makes an empty collection for userID
func (s *Store) Create(ctx context.Context, caller domain.Identity, userID string) error {
	if err := caller.Authorize(userID, s.clock.Now()); err != nil {
		return err
	}
	return withTx(ctx, s.db, OpCreateCollection, func(tx pgx.Tx) error {
		return ensureCollection(ctx, tx, userID)
	})
}

func ensureCollection(ctx context.Context, tx pgx.Tx, userID string) error {
	_, err := tx.Exec(ctx, `INSERT INTO collections (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return fmt.Errorf("failed to ensure collection: %w", err)
	}
	return nil
}
