package models

import "time"

// Favorite links a user to a listing they bookmarked. The embedded Listing
// reference is populated by a shallow join for offline display and is nil
// when the referenced listing no longer exists.
type Favorite struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	ListingID int64       `json:"listing_id"`
	Listing   *ListingRef `json:"listing,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
