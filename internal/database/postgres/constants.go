package postgres

// PostgreSQL error classes treated as a lost connection
const (
	PgErrorClassConnection        = "08"    // connection_exception
	PgErrorCodeAdminShutdown      = "57P01" // admin_shutdown
	PgErrorCodeCannotConnectNow   = "57P03" // cannot_connect_now
	PgErrorCodeTooManyConnections = "53300" // too_many_connections
)

// Operation names used when wrapping errors
const (
	OpReadCollection   = "read collection"
	OpAppendItem       = "append item"
	OpCreateCollection = "create collection"
	OpGetProfile       = "get profile"
	OpCreateProfile    = "create profile"
	OpListMembers      = "list members"
)
