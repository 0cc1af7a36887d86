package repository

import (
	"context"

	"github.com/osse101/QRHunt_Go/internal/domain"
)

//go:generate mockery

// Collection defines the interface for per-user item collections.
//
// Every method authorizes caller against userID before touching storage and
// fails with domain.ErrUnauthorized on mismatch or expiry.
type Collection interface {
	// Read returns the items owned by userID, or domain.ErrCollectionNotFound
	// when the user has never redeemed anything.
	Read(ctx context.Context, caller domain.Identity, userID string) (domain.ItemSet, error)

	// AppendIfAbsent atomically adds itemID to the collection, creating the
	// collection when missing. added is false when the item was already owned.
	AppendIfAbsent(ctx context.Context, caller domain.Identity, userID, itemID string) (added bool, err error)

	// Create makes an empty collection for userID. Idempotent.
	Create(ctx context.Context, caller domain.Identity, userID string) error
}

// Profile defines the interface for member profiles and the directory.
type Profile interface {
	// GetProfile returns domain.ErrProfileNotFound when absent.
	GetProfile(ctx context.Context, caller domain.Identity, userID string) (*domain.Profile, error)

	// CreateProfile inserts p (and an empty collection) when no profile exists
	// for p.UserID and returns the stored profile. created reports whether a row was inserted.
	CreateProfile(ctx context.Context, caller domain.Identity, p domain.Profile) (stored *domain.Profile, created bool, err error)

	// ListMembers returns every profile with its collection size.
	ListMembers(ctx context.Context) ([]domain.Member, error)
}

// Store bundles the repositories a backend provides.
type Store interface {
	Collection
	Profile
	Ping(ctx context.Context) error
	Close() error
}
