package event

import "time"

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Metadata keys
const (
	MetadataKeyRequestID = "request_id"
)

// Log message constants
const (
	LogMsgPublishFailed = "Event publish failed"

	// Log message for handler errors
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %w"
)

// Payload decoding errors; the verb takes a zero value of the target type
const (
	ErrMsgNilPayloadFmt    = "nil payload for %T"
	ErrMsgDecodePayloadFmt = "decode payload as %T: %w"
)

// Retry and dead-letter settings
const (
	DefaultMaxRetries         = 3
	DefaultRetryDelay         = 500 * time.Millisecond
	DeadLetterSchemaVersion   = "1.0"
	DeadLetterFilePermissions = 0o644
)

// Resilient publisher log messages
const (
	LogMsgRetryScheduled   = "Event handlers failed, retrying in background"
	LogMsgRetrySucceeded   = "Event delivered after retry"
	LogMsgRetryFailed      = "Event retry failed"
	LogMsgDeadLettered     = "Event dead-lettered"
	LogMsgDeadLetterFailed = "Failed to write dead-letter entry"
	LogMsgRetryAbandoned   = "Shutdown interrupted event retry"
)
