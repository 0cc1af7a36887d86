// Package memory implements the repositories in process memory.
// Data is lost on restart; used for local runs and tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/osse101/QRHunt_Go/internal/clock"
	"github.com/osse101/QRHunt_Go/internal/concurrency"
	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/repository"
)

// Store implements repository.Store in memory
type Store struct {
	clock clock.Clock
	locks *concurrency.KeyedMutex

	// collections maps userID -> domain.ItemSet. Each set is guarded by its user lock.
	collections sync.Map

	profilesMu sync.RWMutex
	profiles   map[string]domain.Profile
}

var _ repository.Store = (*Store)(nil)

// Option configures a Store
type Option func(*Store)

// WithClock sets the clock used to check identity expiry
func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// NewStore creates an empty Store
func NewStore(opts ...Option) *Store {
	s := &Store{
		clock:    clock.NewReal(),
		locks:    concurrency.NewKeyedMutex(),
		profiles: make(map[string]domain.Profile),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read returns a copy of the items owned by userID
func (s *Store) Read(ctx context.Context, caller domain.Identity, userID string) (domain.ItemSet, error) {
	if err := s.authorize(ctx, caller, userID); err != nil {
		return nil, err
	}

	v, ok := s.collections.Load(userID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, userID)
	}

	unlock := s.locks.Lock(userID)
	defer unlock()
	return v.(domain.ItemSet).Clone(), nil
}

// AppendIfAbsent adds itemID while holding the user's lock across check and insert
func (s *Store) AppendIfAbsent(ctx context.Context, caller domain.Identity, userID, itemID string) (bool, error) {
	if err := s.authorize(ctx, caller, userID); err != nil {
		return false, err
	}
	if itemID == "" {
		return false, fmt.Errorf("%w: empty item id", domain.ErrInvalidInput)
	}

	v, _ := s.collections.LoadOrStore(userID, domain.NewItemSet())

	unlock := s.locks.Lock(userID)
	defer unlock()
	return v.(domain.ItemSet).Add(itemID), nil
}

// Create makes an empty collection for userID
func (s *Store) Create(ctx context.Context, caller domain.Identity, userID string) error {
	if err := s.authorize(ctx, caller, userID); err != nil {
		return err
	}
	s.collections.LoadOrStore(userID, domain.NewItemSet())
	return nil
}

// GetProfile returns the caller's profile
func (s *Store) GetProfile(ctx context.Context, caller domain.Identity, userID string) (*domain.Profile, error) {
	if err := s.authorize(ctx, caller, userID); err != nil {
		return nil, err
	}

	s.profilesMu.RLock()
	p, ok := s.profiles[userID]
	s.profilesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProfileNotFound, userID)
	}
	return &p, nil
}

// CreateProfile stores p and an empty collection unless a profile exists
func (s *Store) CreateProfile(ctx context.Context, caller domain.Identity, p domain.Profile) (*domain.Profile, bool, error) {
	if err := s.authorize(ctx, caller, p.UserID); err != nil {
		return nil, false, err
	}

	s.profilesMu.Lock()
	existing, ok := s.profiles[p.UserID]
	if !ok {
		s.profiles[p.UserID] = p
		existing = p
	}
	s.profilesMu.Unlock()

	s.collections.LoadOrStore(p.UserID, domain.NewItemSet())
	return &existing, !ok, nil
}

// ListMembers returns every profile with its badge count, most badges first
func (s *Store) ListMembers(ctx context.Context) ([]domain.Member, error) {
	if err := ctx.Err(); err != nil {
		return nil, contextErr(err)
	}

	s.profilesMu.RLock()
	members := make([]domain.Member, 0, len(s.profiles))
	for _, p := range s.profiles {
		members = append(members, domain.Member{UserID: p.UserID, DisplayName: p.DisplayName})
	}
	s.profilesMu.RUnlock()

	for i := range members {
		if v, ok := s.collections.Load(members[i].UserID); ok {
			unlock := s.locks.Lock(members[i].UserID)
			members[i].BadgeCount = v.(domain.ItemSet).Len()
			unlock()
		}
	}

	sort.Slice(members, func(i, j int) bool {
		a, b := members[i], members[j]
		if a.BadgeCount != b.BadgeCount {
			return a.BadgeCount > b.BadgeCount
		}
		if a.DisplayName != b.DisplayName {
			return a.DisplayName < b.DisplayName
		}
		return a.UserID < b.UserID
	})
	return members, nil
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op
func (s *Store) Close() error {
	return nil
}

func (s *Store) authorize(ctx context.Context, caller domain.Identity, userID string) error {
	if err := caller.Authorize(userID, s.clock.Now()); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return contextErr(err)
	}
	return nil
}

func contextErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrTimeout, err)
	}
	return err
}
