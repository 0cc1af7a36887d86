package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QRHunt_Go/internal/database/sqlite"
	"github.com/osse101/QRHunt_Go/internal/domain"
	"github.com/osse101/QRHunt_Go/internal/repository"
	"github.com/osse101/QRHunt_Go/internal/repository/repotest"
)

func openTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "qrhunt.db"))
	require.NoError(t, err)
	return s
}

func TestStore(t *testing.T) {
	repotest.RunStoreSuite(t, func(t *testing.T) repository.Store {
		return openTestStore(t)
	})
}

func TestOpen_InMemory(t *testing.T) {
	s, err := sqlite.Open(context.Background(), sqlite.MemoryPath)
	require.NoError(t, err)
	defer s.Close()

	added, err := s.AppendIfAbsent(context.Background(), repotest.Identity("alice"), "alice", "ifc")
	require.NoError(t, err)
	assert.True(t, added)
}

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "qrhunt.db")
	id := repotest.Identity("alice")

	s, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	_, err = s.AppendIfAbsent(ctx, id, "alice", "cafofo")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = sqlite.Open(ctx, path)
	require.NoError(t, err, "migrations must be idempotent")
	defer s.Close()

	items, err := s.Read(ctx, id, "alice")
	require.NoError(t, err)
	assert.True(t, items.Contains("cafofo"))
}

func TestStore_ClosedDatabaseFails(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Close())

	_, err := s.AppendIfAbsent(context.Background(), repotest.Identity("alice"), "alice", "ifc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}
