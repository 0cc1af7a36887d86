package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "redemption.completed")
const (
	// EventTypeRedemptionCompleted is published once per redemption attempt, whatever the outcome
	EventTypeRedemptionCompleted = "redemption.completed"

	// EventTypeProfileCreated is published when a member profile is created
	EventTypeProfileCreated = "profile.created"

	// EventTypeScanDropped is published when a scan session drops a payload
	EventTypeScanDropped = "scan.dropped"
)

// RedemptionCompletedPayload is the payload of EventTypeRedemptionCompleted
type RedemptionCompletedPayload struct {
	UserID     string        `json:"user_id"`
	Kind       OutcomeKind   `json:"kind"`
	ItemID     string        `json:"item_id,omitempty"`
	Reason     FailureReason `json:"reason,omitempty"`
	DurationMs int64         `json:"duration_ms"`
}

// ProfileCreatedPayload is the payload of EventTypeProfileCreated
type ProfileCreatedPayload struct {
	UserID string `json:"user_id"`
}

// ScanDroppedPayload is the payload of EventTypeScanDropped
type ScanDroppedPayload struct {
	Reason string `json:"reason"`
}
