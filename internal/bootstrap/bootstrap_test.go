package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QRHunt_Go/internal/config"
	"github.com/osse101/QRHunt_Go/internal/domain"
)

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2024-01-%02d_00-00-00", i+1))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, LogFilePermission))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, LogFilePermission))

	cleanupLogs(dir, LogFileRetentionCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var logs []string
	for _, e := range entries {
		if filepath.Ext(e.Name()) == LogFileExtension {
			logs = append(logs, e.Name())
		}
	}
	assert.Len(t, logs, LogFileRetentionCount)
	assert.NotContains(t, logs, "session_2024-01-01_00-00-00.log")
	assert.Contains(t, logs, "session_2024-01-12_00-00-00.log")
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestSetupLogger_WritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	f, err := SetupLogger(&config.Config{LogLevel: "info", LogFormat: "json", LogDir: dir, Environment: "test"})
	require.NoError(t, err)
	require.NotNil(t, f)
	t.Cleanup(func() { _ = f.Close() })

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), LogMsgStartingQRHunt)
}

func TestSetupLogger_StdoutOnly(t *testing.T) {
	f, err := SetupLogger(&config.Config{LogLevel: "warn", LogFormat: "text"})
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, err := OpenStore(ctx, &config.Config{StoreBackend: config.BackendMemory})
		require.NoError(t, err)
		assert.NoError(t, store.Ping(ctx))
		assert.NoError(t, store.Close())
	})

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "db", "qrhunt.db")
		store, err := OpenStore(ctx, &config.Config{StoreBackend: config.BackendSQLite, SQLitePath: path})
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })

		caller := domain.Identity{UserID: "u1"}
		added, err := store.AppendIfAbsent(ctx, caller, "u1", "ifc")
		require.NoError(t, err)
		assert.True(t, added)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := OpenStore(ctx, &config.Config{StoreBackend: "redis"})
		assert.ErrorContains(t, err, ErrMsgUnknownBackend)
	})
}

func TestInitializeServices(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{StoreBackend: config.BackendMemory, RedemptionTimeout: config.DefaultRedemptionTimeout}
	store, err := OpenStore(ctx, cfg)
	require.NoError(t, err)

	events, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, events.Shutdown(ctx)) }()

	svcs, err := InitializeServices(ctx, cfg, store, events.Bus)
	require.NoError(t, err)

	caller := domain.Identity{UserID: "u1"}
	out := svcs.Redemption.Redeem(ctx, caller, "ifc.jpeg")
	assert.Equal(t, domain.OutcomeAdded, out.Kind)

	hub := StartEventStream(events.Bus)
	defer hub.Stop()
	assert.Zero(t, hub.ClientCount())

	_, err = InitializeServices(ctx, &config.Config{CatalogPath: filepath.Join(t.TempDir(), "missing.json")}, store, events.Bus)
	assert.ErrorContains(t, err, ErrMsgFailedLoadCatalog)
}

func TestInitializeEventSystem_DeadLetterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events", "deadletter.jsonl")
	events, err := InitializeEventSystem(&config.Config{EventDeadLetterPath: path})
	require.NoError(t, err)

	assert.FileExists(t, path)
	assert.NoError(t, events.Shutdown(context.Background()))
}

type fakeStopper struct{ err error }

func (f *fakeStopper) Stop(context.Context) error { return f.err }

type fakeEvents struct{ stopped bool }

func (f *fakeEvents) Stop() { f.stopped = true }

type fakeBus struct{ drained bool }

func (f *fakeBus) Shutdown(context.Context) error {
	f.drained = true
	return nil
}

type fakeCloser struct{ closed bool }

func (f *fakeCloser) Close() error {
	f.closed = true
	return nil
}

func TestGracefulShutdown(t *testing.T) {
	closer := &fakeCloser{}
	events := &fakeEvents{}
	bus := &fakeBus{}
	GracefulShutdown(context.Background(), ShutdownComponents{
		Server: &fakeStopper{err: errors.New("deadline")},
		Events: events,
		Bus:    bus,
		Store:  closer,
	})
	assert.True(t, events.stopped)
	assert.True(t, bus.drained)
	assert.True(t, closer.closed, "store closed even when server stop fails")

	GracefulShutdown(context.Background(), ShutdownComponents{})
}
