package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/osse101/QRHunt_Go/internal/domain"
)

// Read returns the items owned by userID
func (s *Store) Read(ctx context.Context, caller domain.Identity, userID string) (domain.ItemSet, error) {
	if err := caller.Authorize(userID, s.clock.Now()); err != nil {
		return nil, err
	}

	var exists int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM collections WHERE user_id = ?`, userID).Scan(&exists); err != nil {
		return nil, classify(OpReadCollection, err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, userID)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT item_id FROM collection_items WHERE user_id = ?`, userID)
	if err != nil {
		return nil, classify(OpReadCollection, err)
	}
	defer rows.Close()

	items := domain.NewItemSet()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, classify(OpReadCollection, err)
		}
		items.Add(id)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(OpReadCollection, err)
	}
	return items, nil
}

// AppendIfAbsent inserts the (user, item) row with INSERT OR IGNORE
func (s *Store) AppendIfAbsent(ctx context.Context, caller domain.Identity, userID, itemID string) (bool, error) {
	if err := caller.Authorize(userID, s.clock.Now()); err != nil {
		return false, err
	}
	if itemID == "" {
		return false, fmt.Errorf("%w: empty item id", domain.ErrInvalidInput)
	}

	var added bool
	err := s.withTx(ctx, OpAppendItem, func(tx *sql.Tx) error {
		if err := ensureCollection(ctx, tx, userID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO collection_items (user_id, item_id) VALUES (?, ?)`, userID, itemID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		added = n == 1
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
	return s.withTx(ctx, OpCreateCollection, func(tx *sql.Tx) error {
		return ensureCollection(ctx, tx, userID)
	})
}

func ensureCollection(ctx context.Context, tx *sql.Tx, userID string) error {
	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO collections (user_id) VALUES (?)`, userID); err != nil {
		return fmt.Errorf("failed to ensure collection: %w", err)
	}
	return nil
}
