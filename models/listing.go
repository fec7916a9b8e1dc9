package models

import "time"

// ListingStatus enumerates the lifecycle states a marketplace listing can be in.
type ListingStatus string

const (
	// ListingStatusDraft marks a listing that is still being composed on a
	// device and is not yet visible to other marketplace users.
	ListingStatusDraft ListingStatus = "draft"

	// ListingStatusActive marks a published listing.
	ListingStatusActive ListingStatus = "active"

	// ListingStatusSold marks a listing whose vehicle has been sold or rented
	// out; kept so offline clients can grey it out instead of dropping it.
	ListingStatusSold ListingStatus = "sold"
)

// Listing is the denormalized projection of a vehicle listing used by mobile
// clients for offline display. It deliberately carries only the subset of
// columns a device needs to render list and detail screens — no relational
// graph, no seller statistics, no media gallery beyond the primary photo.
type Listing struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"user_id"`
	Title       string        `json:"title"`
	Make        string        `json:"make"`
	Model       string        `json:"model"`
	Year        int           `json:"year"`
	Price       int64         `json:"price"`
	Mileage     int64         `json:"mileage"`
	City        string        `json:"city"`
	PhotoURL    string        `json:"photo_url,omitempty"`
	Status      ListingStatus `json:"status"`
	ForRent     bool          `json:"for_rent"`
	Description string        `json:"description,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ListingRef is the one-level shallow join of a listing embedded into
// favorites and notifications. A referenced listing that has been deleted
// after the favorite/notification was created is represented by a nil
// *ListingRef rather than failing the read.
type ListingRef struct {
	ID       int64         `json:"id"`
	Title    string        `json:"title"`
	Price    int64         `json:"price"`
	PhotoURL string        `json:"photo_url,omitempty"`
	Status   ListingStatus `json:"status"`
}
