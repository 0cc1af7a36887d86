package config

import "time"

// Store backends
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Defaults
const (
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultSQLitePath = "data/qrhunt.db"

	DefaultRedemptionTimeout = 5 * time.Second
	DefaultScanDebounce      = time.Second

	DefaultMemberCacheSize = 128
	DefaultMemberCacheTTL  = 30 * time.Second

	DefaultEventMaxRetries     = 3
	DefaultEventRetryDelay     = 500 * time.Millisecond
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Configuration file paths
const (
	ConfigPathCatalog = "configs/catalog.json"
)
