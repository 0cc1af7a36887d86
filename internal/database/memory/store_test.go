package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QRHunt_Go/internal/clock"
	"github.com/osse101/QRHunt_Go/internal/database/memory"
	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/repository"
	"github.com/osse101/QRHunt_Go/internal/repository/repotest"
)

func TestStore(t *testing.T) {
	repotest.RunStoreSuite(t, func(t *testing.T) repository.Store {
		return memory.NewStore()
	})
}

func TestStore_ExpiryUsesInjectedClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clk := clock.NewSimulated(start)
	s := memory.NewStore(memory.WithClock(clk))
	id := domain.Identity{UserID: "alice", ExpiresAt: start.Add(time.Minute)}

	_, err := s.AppendIfAbsent(context.Background(), id, "alice", "ifc")
	require.NoError(t, err)

	clk.Advance(time.Minute)
	_, err = s.AppendIfAbsent(context.Background(), id, "alice", "bnb")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestStore_ReadReturnsCopy(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	id := repotest.Identity("alice")

	_, err := s.AppendIfAbsent(ctx, id, "alice", "ifc")
	require.NoError(t, err)

	items, err := s.Read(ctx, id, "alice")
	require.NoError(t, err)
	items.Add("forged")

	items, err = s.Read(ctx, id, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"ifc"}, items.Slice())
}

func TestStore_DeadlineMapsToTimeout(t *testing.T) {
	s := memory.NewStore()
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := s.AppendIfAbsent(ctx, repotest.Identity("alice"), "alice", "ifc")
	assert.ErrorIs(t, err, domain.ErrTimeout)
}
