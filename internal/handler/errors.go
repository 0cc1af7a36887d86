package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingIdentity       = "Missing caller identity"

	ErrMsgGetInventoryFailed = "Failed to get inventory"
	ErrMsgGetMembersFailed   = "Failed to get members"
	ErrMsgGetProfileFailed   = "Failed to get profile"
	ErrMsgSaveProfileFailed  = "Failed to save profile"
)

// Health endpoint values
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	MsgStoreUnreachable     = "store unreachable"
)

// Log messages
const (
	LogMsgRedeemDecoded     = "Redeem request decoded"
	LogMsgReadinessFailed   = "Readiness check failed"
	LogMsgEncodeFailed      = "Failed to encode JSON response"
	LogMsgWriteFailed       = "Failed to write response buffer"
	LogMsgServiceError      = "Service error"
	LogMsgDecodeFailedFmt   = "Failed to decode %s request"
	LogMsgRequestDecodedFmt = "%s request decoded"
)
