//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

package store

import (
	"context"
	"time"

	"github.com/motormarket/go-mobile-sync/models"
)

// ErrorClassificator tags a database error as retryable or not, so the
// best-effort audit path can log lost writes with enough detail to triage.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository handles marketplace account creation and lookup.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, user models.User) (models.User, error)
}

// SnapshotRepository is the entity snapshot reader: every method returns the
// owner-scoped rows of one entity type changed strictly after the given
// watermark, newest updated_at first. A zero since means full sync. All
// methods are read-only, and every result set is all-or-nothing — a failure
// mid-scan fails the whole read.
type SnapshotRepository interface {
	// ListingsSince returns the user's non-draft listings changed after since.
	ListingsSince(ctx context.Context, userID int64, since time.Time) ([]models.Listing, error)

	// DraftsSince returns the user's draft listings changed after since.
	DraftsSince(ctx context.Context, userID int64, since time.Time) ([]models.Listing, error)

	// FavoritesSince returns the user's favorites changed after since with a
	// shallow join of the referenced listing; a deleted listing degrades to
	// a nil reference.
	FavoritesSince(ctx context.Context, userID int64, since time.Time) ([]models.Favorite, error)

	// NotificationsSince returns the user's notifications changed after
	// since, with the same shallow listing join semantics as favorites.
	NotificationsSince(ctx context.Context, userID int64, since time.Time) ([]models.Notification, error)

	// ProfileSince returns the user's merged profile projection when either
	// the user row or the nested profile row changed after since, nil
	// otherwise.
	ProfileSince(ctx context.Context, userID int64, since time.Time) (*models.Profile, error)

	// CountChangedSince counts rows per entity type changed after since,
	// feeding the pending-changes section of the sync status read path.
	CountChangedSince(ctx context.Context, userID int64, since time.Time) (models.PendingChanges, error)
}

// SyncLogRepository persists and reads the append-only sync audit log.
type SyncLogRepository interface {
	// Append inserts one immutable audit row.
	Append(ctx context.Context, entry models.SyncLogEntry) error

	// LastSync returns the most recent entry for the user, narrowed to one
	// device when deviceID is non-empty. Returns nil when the user has
	// never synced.
	LastSync(ctx context.Context, userID int64, deviceID string) (*models.SyncLogEntry, error)

	// ActiveDevices returns the distinct device ids that appear in the
	// user's log entries since the given cutoff.
	ActiveDevices(ctx context.Context, userID int64, since time.Time) ([]string, error)
}

// ConflictRepository applies conflict resolutions as ordinary entity
// mutations. Ownership is enforced solely by the id+user_id filter of each
// statement: a resolution targeting another user's record matches zero rows
// and mutates nothing.
type ConflictRepository interface {
	// UpdateListing overwrites the whitelisted columns present in fields
	// and stamps updated_at to now.
	UpdateListing(ctx context.Context, userID, listingID int64, fields map[string]any) error

	// UpsertFavorite ensures the favorite exists; inserting an existing
	// favorite is a no-op.
	UpsertFavorite(ctx context.Context, userID, listingID int64) error

	// DeleteFavorite removes the favorite unconditionally; deleting an
	// absent favorite is not an error.
	DeleteFavorite(ctx context.Context, userID, listingID int64) error
}
