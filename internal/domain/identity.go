package domain

import (
	"fmt"
	"time"
)

// Identity is a caller already authenticated by the identity provider.
// It is passed explicitly to every store and engine call.
type Identity struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Valid reports whether the identity carries a user and has not expired at now.
// A zero ExpiresAt never expires.
func (i Identity) Valid(now time.Time) bool {
	if i.UserID == "" {
		return false
	}
	return i.ExpiresAt.IsZero() || now.Before(i.ExpiresAt)
}

// Authorize checks that the identity may act on the collection owned by userID.
func (i Identity) Authorize(userID string, now time.Time) error {
	if i.UserID == "" {
		return fmt.Errorf("%w: missing caller identity", ErrUnauthorized)
	}
	if !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt) {
		return fmt.Errorf("%w: %s", ErrUnauthorized, ErrMsgIdentityExpire)
	}
	if i.UserID != userID {
		return fmt.Errorf("%w: caller %s cannot access collection of %s", ErrUnauthorized, i.UserID, userID)
	}
	return nil
}
