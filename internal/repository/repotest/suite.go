// Package repotest holds the behaviour every repository.Store backend must share.
package repotest

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/repository"
)

// Factory returns a fresh, empty store. The store is closed by the suite.
type Factory func(t *testing.T) repository.Store

// Identity returns a non-expiring identity for userID
func Identity(userID string) domain.Identity {
	return domain.Identity{UserID: userID, Email: userID + "@example.com"}
}

// RunStoreSuite runs the shared collection and profile contract against newStore
func RunStoreSuite(t *testing.T, newStore Factory) {
	t.Helper()

	open := func(t *testing.T) repository.Store {
		s := newStore(t)
		t.Cleanup(func() { _ = s.Close() })
		return s
	}

	t.Run("read missing collection", func(t *testing.T) {
		s := open(t)
		_, err := s.Read(context.Background(), Identity("alice"), "alice")
		assert.ErrorIs(t, err, domain.ErrCollectionNotFound)
	})

	t.Run("append twice keeps one occurrence", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		alice := Identity("alice")

		added, err := s.AppendIfAbsent(ctx, alice, "alice", "ifc")
		require.NoError(t, err)
		assert.True(t, added)

		added, err = s.AppendIfAbsent(ctx, alice, "alice", "ifc")
		require.NoError(t, err)
		assert.False(t, added)

		items, err := s.Read(ctx, alice, "alice")
		require.NoError(t, err)
		assert.Equal(t, []string{"ifc"}, items.Slice())
	})

	t.Run("collections are per user", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		_, err := s.AppendIfAbsent(ctx, Identity("alice"), "alice", "ifc")
		require.NoError(t, err)
		added, err := s.AppendIfAbsent(ctx, Identity("bob"), "bob", "ifc")
		require.NoError(t, err)
		assert.True(t, added)

		_, err = s.AppendIfAbsent(ctx, Identity("bob"), "bob", "bnb")
		require.NoError(t, err)

		items, err := s.Read(ctx, Identity("alice"), "alice")
		require.NoError(t, err)
		assert.Equal(t, []string{"ifc"}, items.Slice())
	})

	t.Run("concurrent append of one item adds once", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		alice := Identity("alice")

		const workers = 16
		var addedCount atomic.Int32
		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				added, err := s.AppendIfAbsent(ctx, alice, "alice", "edm")
				if !assert.NoError(t, err) {
					return
				}
				if added {
					addedCount.Add(1)
				}
			}()
		}
		close(start)
		wg.Wait()

		assert.Equal(t, int32(1), addedCount.Load())
		items, err := s.Read(ctx, alice, "alice")
		require.NoError(t, err)
		assert.Equal(t, 1, items.Len())
	})

	t.Run("concurrent append of distinct items keeps all", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		alice := Identity("alice")

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := s.AppendIfAbsent(ctx, alice, "alice", fmt.Sprintf("item-%d", i))
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		items, err := s.Read(ctx, alice, "alice")
		require.NoError(t, err)
		assert.Equal(t, 10, items.Len())
	})

	t.Run("rejects foreign and expired identities", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		expired := domain.Identity{UserID: "alice", ExpiresAt: time.Now().Add(-time.Minute)}

		_, err := s.AppendIfAbsent(ctx, Identity("mallory"), "alice", "ifc")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		_, err = s.AppendIfAbsent(ctx, expired, "alice", "ifc")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		_, err = s.AppendIfAbsent(ctx, domain.Identity{}, "alice", "ifc")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		_, err = s.Read(ctx, Identity("mallory"), "alice")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		assert.ErrorIs(t, s.Create(ctx, Identity("mallory"), "alice"), domain.ErrUnauthorized)

		_, err = s.Read(ctx, Identity("alice"), "alice")
		assert.ErrorIs(t, err, domain.ErrCollectionNotFound, "rejected calls must not create a collection")
	})

	t.Run("rejects empty item id", func(t *testing.T) {
		s := open(t)
		_, err := s.AppendIfAbsent(context.Background(), Identity("alice"), "alice", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("create is idempotent and empty", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		alice := Identity("alice")

		require.NoError(t, s.Create(ctx, alice, "alice"))
		require.NoError(t, s.Create(ctx, alice, "alice"))

		items, err := s.Read(ctx, alice, "alice")
		require.NoError(t, err)
		assert.Zero(t, items.Len())

		_, err = s.AppendIfAbsent(ctx, alice, "alice", "rdb")
		require.NoError(t, err)
		require.NoError(t, s.Create(ctx, alice, "alice"))
		items, err = s.Read(ctx, alice, "alice")
		require.NoError(t, err)
		assert.Equal(t, 1, items.Len(), "create must not reset an existing collection")
	})

	t.Run("profile lifecycle", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		alice := Identity("alice")

		_, err := s.GetProfile(ctx, alice, "alice")
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)

		createdAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		p, created, err := s.CreateProfile(ctx, alice, domain.Profile{
			UserID: "alice", Email: "alice@example.com", DisplayName: "Alice", CreatedAt: createdAt,
		})
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "Alice", p.DisplayName)

		p, created, err = s.CreateProfile(ctx, alice, domain.Profile{
			UserID: "alice", Email: "alice@example.com", DisplayName: "Renamed", CreatedAt: createdAt,
		})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, "Alice", p.DisplayName, "existing profile must be kept")

		got, err := s.GetProfile(ctx, alice, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", got.Email)
		assert.True(t, createdAt.Equal(got.CreatedAt))

		items, err := s.Read(ctx, alice, "alice")
		require.NoError(t, err, "profile creation makes an empty collection")
		assert.Zero(t, items.Len())

		_, _, err = s.CreateProfile(ctx, Identity("mallory"), domain.Profile{UserID: "alice", DisplayName: "x"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("list members orders by badge count", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		for _, u := range []struct {
			id, name string
			items    []string
		}{
			{"u1", "Carol", []string{"ifc"}},
			{"u2", "Bob", []string{"ifc", "bnb", "edm"}},
			{"u3", "Alice", []string{"ifc"}},
			{"u4", "Dave", nil},
		} {
			id := Identity(u.id)
			_, _, err := s.CreateProfile(ctx, id, domain.Profile{UserID: u.id, Email: id.Email, DisplayName: u.name, CreatedAt: time.Now()})
			require.NoError(t, err)
			for _, item := range u.items {
				_, err := s.AppendIfAbsent(ctx, id, u.id, item)
				require.NoError(t, err)
			}
		}

		members, err := s.ListMembers(ctx)
		require.NoError(t, err)
		require.Len(t, members, 4)
		assert.Equal(t, domain.Member{UserID: "u2", DisplayName: "Bob", BadgeCount: 3}, members[0])
		assert.Equal(t, "Alice", members[1].DisplayName)
		assert.Equal(t, "Carol", members[2].DisplayName)
		assert.Equal(t, domain.Member{UserID: "u4", DisplayName: "Dave", BadgeCount: 0}, members[3])
	})

	t.Run("cancelled context", func(t *testing.T) {
		s := open(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.AppendIfAbsent(ctx, Identity("alice"), "alice", "ifc")
		assert.Error(t, err)
	})

	t.Run("ping", func(t *testing.T) {
		s := open(t)
		assert.NoError(t, s.Ping(context.Background()))
	})
}
