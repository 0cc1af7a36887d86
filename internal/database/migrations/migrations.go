// Package migrations embeds the SQL schema for each store backend and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/osse101/QRHunt_Go/internal/logger"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedded embed.FS

// Dialects with an embedded migration set
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Log messages
const (
	LogMsgMigrationApplied = "Applied migration"
	LogMsgSchemaUpToDate   = "Database schema up to date"
)

// Up applies every pending migration for dialect to db.
func Up(ctx context.Context, db *sql.DB, dialect string) error {
	provider, err := newProvider(db, dialect)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply %s migrations: %w", dialect, err)
	}

	log := logger.FromContext(ctx)
	for _, r := range results {
		log.Info(LogMsgMigrationApplied, "dialect", dialect, "version", r.Source.Version, "duration", r.Duration)
	}
	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read %s schema version: %w", dialect, err)
	}
	log.Debug(LogMsgSchemaUpToDate, "dialect", dialect, "version", version)
	return nil
}

// Reset rolls back every applied migration. Used by tests.
func Reset(ctx context.Context, db *sql.DB, dialect string) error {
	provider, err := newProvider(db, dialect)
	if err != nil {
		return err
	}
	if _, err := provider.DownTo(ctx, 0); err != nil {
		return fmt.Errorf("failed to reset %s schema: %w", dialect, err)
	}
	return nil
}

func newProvider(db *sql.DB, dialect string) (*goose.Provider, error) {
	var gooseDialect goose.Dialect
	switch dialect {
	case DialectPostgres:
		gooseDialect = goose.DialectPostgres
	case DialectSQLite:
		gooseDialect = goose.DialectSQLite3
	default:
		return nil, fmt.Errorf("unsupported migration dialect %q", dialect)
	}

	fsys, err := fs.Sub(embedded, dialect)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s migrations: %w", dialect, err)
	}

	provider, err := goose.NewProvider(gooseDialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}
