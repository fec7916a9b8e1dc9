// Package agent implements the headless sync client: a resty-based gateway
// adapter, a SQLite cache of synced entities with a persisted watermark, and
// a ticker-driven sync job with exponential backoff on transient failures.
package agent

//go:generate mockgen -source=interfaces.go -destination=../mock/agent_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/motormarket/go-mobile-sync/models"
)

// GatewayAdapter is the agent's view of the sync gateway's REST API.
type GatewayAdapter interface {
	// Register creates an account and stores the returned bearer token on
	// the adapter.
	Register(ctx context.Context, login, password, name string) error

	// Login authenticates and stores the returned bearer token.
	Login(ctx context.Context, login, password string) error

	// SetToken installs a previously persisted bearer token.
	SetToken(token string)

	// Token returns the bearer token currently held by the adapter.
	Token() string

	// Sync posts one sync call and returns the decoded envelope payload.
	Sync(ctx context.Context, req models.SyncRequest) (SyncData, error)

	// Status fetches the sync status for this device.
	Status(ctx context.Context, deviceID string) (models.SyncStatus, error)

	// ResolveConflicts submits a conflict batch under one strategy.
	ResolveConflicts(ctx context.Context, req models.ConflictRequest) (models.ConflictResponse, error)
}

// CacheStore is the agent's local persistence: the entity cache displayed
// offline, the sync watermark, and the session token.
type CacheStore interface {
	// SaveEnvelope replaces the cached rows of every entity type present
	// in data and advances the stored watermark to data.Timestamp.
	SaveEnvelope(ctx context.Context, data SyncData) error

	// Watermark returns the stored watermark, zero when the agent has
	// never completed a sync.
	Watermark(ctx context.Context) (time.Time, error)

	// SaveSession persists the bearer token and device id.
	SaveSession(ctx context.Context, token, deviceID string) error

	// Session returns the persisted token and device id, or ErrNoSession.
	Session(ctx context.Context) (token, deviceID string, err error)

	// SavePendingChange records a local edit awaiting submission to the
	// gateway; a second save for the same entity replaces the first.
	SavePendingChange(ctx context.Context, change PendingChange) error

	// PendingChanges returns recorded local edits, oldest first.
	PendingChanges(ctx context.Context) ([]PendingChange, error)

	// ClearPendingChange removes one recorded edit after it has been
	// accepted by the gateway.
	ClearPendingChange(ctx context.Context, entityType string, entityID int64) error

	// Close releases the underlying database handle.
	Close() error
}

// PendingChange is a local edit made while offline (or ahead of the server)
// that the sync job submits as a conflict on its next cycle. EntityType uses
// the gateway's singular conflict naming ("listing", "favorite").
type PendingChange struct {
	EntityType string
	EntityID   int64
	Payload    map[string]any
}

// SyncData is the decoded "data" object of a sync response. The gateway
// emits entity keys only for requested types, so absent collections decode
// as nil and must not clobber cached rows of types that were not requested.
type SyncData struct {
	Timestamp     time.Time             `json:"timestamp"`
	UserID        int64                 `json:"user_id"`
	Listings      []models.Listing      `json:"listings"`
	Favorites     []models.Favorite     `json:"favorites"`
	Notifications []models.Notification `json:"notifications"`
	Profile       *models.Profile       `json:"profile"`
	Drafts        []models.Listing      `json:"drafts"`
}
