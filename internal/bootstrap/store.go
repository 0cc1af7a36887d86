package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/QRHunt_Go/internal/config"
	"github.com/osse101/QRHunt_Go/internal/database"
	"github.com/osse101/QRHunt_Go/internal/database/memory"
	"github.com/osse101/QRHunt_Go/internal/database/postgres"
	"github.com/osse101/QRHunt_Go/internal/database/sqlite"
	"github.com/osse101/QRHunt_Go/internal/repository"
)

// OpenStore connects the collection store selected by cfg.StoreBackend and
// brings its schema up to date.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, StoreConnectTimeout)
	defer cancel()

	var (
		store repository.Store
		err   error
	)
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		store, err = openPostgres(ctx, cfg)
	case config.BackendSQLite:
		store, err = sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			err = fmt.Errorf("%s: %w", ErrMsgFailedOpenSQLite, err)
		}
	case config.BackendMemory:
		store = memory.NewStore()
	default:
		err = fmt.Errorf("%s: %q", ErrMsgUnknownBackend, cfg.StoreBackend)
	}
	if err != nil {
		return nil, err
	}

	slog.Info(LogMsgStoreReady, "backend", cfg.StoreBackend)
	return store, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectStore, err)
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateStore, err)
	}
	return postgres.NewStore(pool), nil
}
