package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

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

// CreateProfile inserts p and an empty collection unless a profile already exists
func (s *Store) CreateProfile(ctx context.Context, caller domain.Identity, p domain.Profile) (*domain.Profile, bool, error) {
	if err := caller.Authorize(p.UserID, s.clock.Now()); err != nil {
		return nil, false, err
	}

	var (
		stored  *domain.Profile
		created bool
	)
	err := withTx(ctx, s.db, OpCreateProfile, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			INSERT INTO profiles (user_id, email, display_name, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id) DO NOTHING
		`, p.UserID, p.Email, p.DisplayName, p.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert profile: %w", err)
		}
		created = tag.RowsAffected() == 1

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
	rows, err := s.db.Query(ctx, `
		SELECT p.user_id, p.display_name, COUNT(ci.item_id)::int AS badge_count
		FROM profiles p
		LEFT JOIN collection_items ci ON ci.user_id = p.user_id
		GROUP BY p.user_id, p.display_name
		ORDER BY badge_count DESC, p.display_name ASC, p.user_id ASC
	`)
	if err != nil {
		return nil, classify(OpListMembers, err)
	}

	members, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Member, error) {
		var m domain.Member
		err := row.Scan(&m.UserID, &m.DisplayName, &m.BadgeCount)
		return m, err
	})
	if err != nil {
		return nil, classify(OpListMembers, err)
	}
	return members, nil
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getProfile(ctx context.Context, q rowQuerier, userID string) (*domain.Profile, error) {
	var p domain.Profile
	err := q.QueryRow(ctx, `
		SELECT user_id, email, display_name, created_at
		FROM profiles
		WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.Email, &p.DisplayName, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, userID)
		}
		return nil, err
	}
	return &p, nil
}
