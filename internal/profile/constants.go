package profile

// Log messages
const (
	LogMsgProfileCreated  = "Profile created"
	LogMsgProfileExisting = "Profile already exists"
	LogMsgNameFallback    = "Display name derived from email"
	LogMsgPublishFailed   = "Failed to publish profile event"
)

// Error message formats
const (
	ErrMsgGetProfileFmt     = "failed to get profile: %w"
	ErrMsgCreateProfileFmt  = "failed to create profile: %w"
	ErrMsgInvalidProfileFmt = "%w: %s"
)
