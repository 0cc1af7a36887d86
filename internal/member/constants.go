package member

import "time"

// Cache defaults
const (
	DefaultCacheSize = 128
	DefaultCacheTTL  = 30 * time.Second

	// directoryKey is the singleflight key for loading the full directory.
	directoryKey = "members"
)

// Log messages
const (
	LogMsgCacheHit         = "Member directory cache hit"
	LogMsgDirectoryLoaded  = "Member directory loaded"
	LogMsgCacheInvalidated = "Member directory cache invalidated"
)

// Error message formats
const (
	ErrMsgListMembersFmt = "failed to list members: %w"
)
