package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/osse101/QRHunt_Go/internal/domain"
)

// GetProfile returns the caller's profile
func (s *Store) GetProfile(ctx context.Context, caller domain.Identity, userID string) (*domain.Profile, error) {
	if err := caller.Authorize(userID, s.clock.Now()); err != nil {
		return nil, err
	}

	p, err := getProfile(ctx, s.db, userID)
	if err != nil {
		return nil, classify(OpGetProfile, err)
	}
	return p, nil
}

// CreateProfile inserts p and an empty collection unless a profile exists
func (s *Store) CreateProfile(ctx context.Context, caller domain.Identity, p domain.Profile) (*domain.Profile, bool, error) {
	if err := caller.Authorize(p.UserID, s.clock.Now()); err != nil {
		return nil, false, err
	}

	var (
		stored  *domain.Profile
		created bool
	)
	err := s.withTx(ctx, OpCreateProfile, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO profiles (user_id, email, display_name, created_at)
			VALUES (?, ?, ?, ?)
		`, p.UserID, p.Email, p.DisplayName, p.CreatedAt.UTC())
		if err != nil {
			return fmt.Errorf("failed to insert profile: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		created = n == 1

		if err := ensureCollection(ctx, tx, p.UserID); err != nil {
			return err
		}

		stored, err = getProfile(ctx, tx, p.UserID)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return stored, created, nil
}

// ListMembers returns every profile with its badge count, most badges first
func (s *Store) ListMembers(ctx context.Context) ([]domain.Member, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.user_id, p.display_name, COUNT(ci.item_id) AS badge_count
		FROM profiles p
		LEFT JOIN collection_items ci ON ci.user_id = p.user_id
		GROUP BY p.user_id, p.display_name
		ORDER BY badge_count DESC, p.display_name ASC, p.user_id ASC
	`)
	if err != nil {
		return nil, classify(OpListMembers, err)
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.UserID, &m.DisplayName, &m.BadgeCount); err != nil {
			return nil, classify(OpListMembers, err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(OpListMembers, err)
	}
	return members, nil
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getProfile(ctx context.Context, q rowQuerier, userID string) (*domain.Profile, error) {
	var p domain.Profile
	err := q.QueryRowContext(ctx, `
		SELECT user_id, email, display_name, created_at
		FROM profiles
		WHERE user_id = ?
	`, userID).Scan(&p.UserID, &p.Email, &p.DisplayName, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, userID)
		}
		return nil, err
	}
	return &p, nil
}
