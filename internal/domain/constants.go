package domain

// Default user-facing messages for redemption outcomes.
// The presentation layer may replace these; the core only defines the vocabulary.
const (
	MsgFmtItemAdded        = "Badge %q added to your inventory!"
	MsgFmtItemAlreadyOwned = "Badge %q is already in your inventory."
	MsgInvalidCode         = "This QR code does not match any badge."
	MsgSessionExpired      = "Your session has expired. Please sign in again."
	MsgTryAgain            = "Could not reach the server. Please scan again."
	MsgRedemptionFailed    = "Something went wrong while updating your inventory."
)

// Profile constraints
const (
	MinDisplayNameLength = 3
	MaxDisplayNameLength = 30
)
