// Command reset wipes every collection and profile by rolling the schema back
// to version zero and reapplying it. STORE_BACKEND picks postgres or sqlite.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/osse101/QRHunt_Go/internal/config"
	"github.com/osse101/QRHunt_Go/internal/database"
	"github.com/osse101/QRHunt_Go/internal/database/migrations"
	"github.com/osse101/QRHunt_Go/internal/database/sqlite"
)

const resetTimeout = time.Minute

func main() {
	force := flag.Bool("force", false, "skip the confirmation prompt")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if !*force {
		fmt.Printf("This deletes all %s data. Type 'yes' to continue: ", cfg.StoreBackend)
		var answer string
		if _, err := fmt.Scanln(&answer); err != nil || answer != "yes" {
			fmt.Println("Aborted.")
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), resetTimeout)
	defer cancel()

	db, dialect, closeFn, err := open(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closeFn()

	if err := reset(ctx, db, dialect); err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println("Reset complete.")
}

func reset(ctx context.Context, db *sql.DB, dialect string) error {
	if err := migrations.Reset(ctx, db, dialect); err != nil {
		return err
	}
	return migrations.Up(ctx, db, dialect)
}

func open(ctx context.Context, cfg *config.Config) (*sql.DB, string, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, "", nil, err
		}
		db := stdlib.OpenDBFromPool(pool)
		return db, migrations.DialectPostgres, func() {
			_ = db.Close()
			pool.Close()
		}, nil

	case config.BackendSQLite:
		db, err := sql.Open(sqlite.DriverName, fmt.Sprintf(sqlite.DSNFormat, cfg.SQLitePath))
		if err != nil {
			return nil, "", nil, fmt.Errorf("failed to open database: %w", err)
		}
		return db, migrations.DialectSQLite, func() { _ = db.Close() }, nil

	default:
		return nil, "", nil, fmt.Errorf("nothing to reset for store backend %q", cfg.StoreBackend)
	}
}
