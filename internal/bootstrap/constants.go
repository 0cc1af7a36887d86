package bootstrap

import "time"

// File system permissions
const (
	DirPermission     = 0o755
	LogFilePermission = 0o644
)

// Logger file rotation
const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"

	// LogFileRetentionCount is the number of older log files kept beside the new one
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingQRHunt      = "Starting QRHunt"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
)

// Store initialization
const (
	StoreConnectTimeout = 30 * time.Second

	LogMsgStoreReady         = "Collection store ready"
	ErrMsgFailedConnectStore = "failed to connect to postgres"
	ErrMsgFailedMigrateStore = "failed to migrate postgres"
	ErrMsgFailedOpenSQLite   = "failed to open sqlite store"
	ErrMsgUnknownBackend     = "unknown store backend"
	ErrMsgFailedLoadCatalog  = "failed to load catalog"

	ErrMsgFailedOpenDeadLetter = "failed to open event dead-letter file"
)

// Event system
const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgMemberCacheRegistered      = "Member directory cache invalidation registered"
)

// Shutdown messages
const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgClosingEventStreams  = "Closing event streams..."
	LogMsgClosingStore         = "Closing collection store..."
	LogMsgStoreCloseFailed     = "Collection store close failed"
	LogMsgDrainingEvents       = "Draining event redeliveries..."
	LogMsgEventDrainFailed     = "Event redeliveries did not drain"
)
