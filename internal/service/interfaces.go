//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

package service

import (
	"context"

	"github.com/motormarket/go-mobile-sync/models"
)

// AuthService handles account registration, credential verification, and
// JWT token lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// SyncService builds sync envelopes and answers sync status queries.
type SyncService interface {
	// BuildEnvelope assembles the per-entity-type change sets for one sync
	// call. One reader call per requested type; any reader failure fails
	// the whole call — partial envelopes are never returned. The envelope
	// timestamp is computed once, after all reads, and is the watermark
	// the client stores for its next incremental sync.
	BuildEnvelope(ctx context.Context, req models.SyncRequest) (models.SyncEnvelope, error)

	// Status reports the most recent sync for the device (or for the user
	// as a whole when deviceID is empty), the per-type pending-change
	// counts since that sync, and the multi-device heuristic.
	Status(ctx context.Context, userID int64, deviceID string) (models.SyncStatus, error)
}

// ConflictService resolves client-reported sync conflicts by converting
// them into ordinary entity mutations.
type ConflictService interface {
	// Resolve applies the strategy to every conflict in the batch. A
	// conflict naming an entity type without a registered handler fails
	// the whole batch with ErrUnsupportedConflictEntityType before any
	// mutation happens.
	Resolve(ctx context.Context, userID int64, conflicts []models.SyncConflict, strategy models.ResolutionStrategy) ([]models.ResolvedConflict, error)
}

// ConflictHandler applies one resolved conflict of a single entity type.
// Implementations are registered per entity-type name; dispatch outside the
// registry fails loudly instead of silently succeeding.
type ConflictHandler interface {
	// Apply performs the storage mutation for an already-computed
	// resolution. Under the server_wins strategy implementations write
	// nothing — the server value already stands.
	Apply(ctx context.Context, userID int64, conflict models.SyncConflict, strategy models.ResolutionStrategy, resolved map[string]any) error
}
