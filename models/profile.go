package models

import "time"

// Profile is the merged projection of the user account row and its nested
// profile row. UpdatedAt carries the later of the two source timestamps,
// which is also the value the snapshot reader compares against the client's
// watermark when deciding whether to include the profile in an envelope.
type Profile struct {
	UserID    int64     `json:"user_id"`
	Login     string    `json:"login"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	City      string    `json:"city,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
