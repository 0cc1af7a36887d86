package redemption

import "time"

// DefaultTimeout bounds one store mutation when no timeout is configured.
const DefaultTimeout = 5 * time.Second

// Log messages
const (
	LogMsgRedemptionDecided = "Redemption decided"
	LogMsgRedemptionFailed  = "Redemption failed"
	LogMsgStorePanicked     = "Collection store panicked during redemption"
	LogMsgPublishFailed     = "Failed to publish redemption event"
	LogMsgInventoryRead     = "Inventory read"
	LogMsgUnknownItem       = "Collected item missing from catalog"
)

// Error message formats
const (
	ErrMsgStorePanicFmt     = "%w: %v"
	ErrMsgReadCollectionFmt = "failed to read collection: %w"
)
