package domain

import "time"

// Profile is the member document created on first sign-in.
type Profile struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Member is a directory entry for another player.
type Member struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	BadgeCount  int    `json:"badge_count"`
}
