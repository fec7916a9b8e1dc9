package models

import "time"

// Notification is a user-facing event (price drop, new message, booking
// update) delivered to mobile clients during sync. When the notification
// concerns a listing, ListingID and the shallow Listing reference are set;
// a listing deleted after the notification was created degrades to a nil
// reference instead of failing the read.
type Notification struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	Type      string      `json:"type"`
	Title     string      `json:"title"`
	Body      string      `json:"body,omitempty"`
	Read      bool        `json:"read"`
	ListingID *int64      `json:"listing_id,omitempty"`
	Listing   *ListingRef `json:"listing,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
