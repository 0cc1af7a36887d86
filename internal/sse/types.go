package sse

import "github.com/osse101/QRHunt_Go/internal/domain"

// RedemptionPayload is what a player's device sees after a scan lands
type RedemptionPayload struct {
	Kind      domain.OutcomeKind   `json:"kind"`
	ItemID    string               `json:"item_id,omitempty"`
	Reason    domain.FailureReason `json:"reason,omitempty"`
	Retryable bool                 `json:"retryable"`
	Message   string               `json:"message"`
}

// MemberJoinedPayload announces a new player to the directory
type MemberJoinedPayload struct {
	UserID string `json:"user_id"`
}
