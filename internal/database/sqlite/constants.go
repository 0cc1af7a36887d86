package sqlite

// Driver settings
const (
	DriverName = "sqlite"
	MemoryPath = ":memory:"
	DSNFormat  = "file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_txlock=immediate"
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

// Log messages
const (
	LogMsgOpened = "Opened SQLite database"
)
