// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Motormarket

package service

import (
	"context"
	"fmt"

	"github.com/motormarket/go-mobile-sync/internal/logger"
	"github.com/motormarket/go-mobile-sync/internal/store"
	"github.com/motormarket/go-mobile-sync/models"
)

// Conflict entity-type names accepted by the resolver. These are singular —
// a conflict targets one record — unlike the plural sync entity types.
const (
	ConflictEntityListing  = "listing"
	ConflictEntityFavorite = "favorite"
)

// conflictService is the concrete implementation of ConflictService.
//
// Dispatch goes through a closed handler registry built at construction
// time. An entity type without a handler fails the whole batch up front,
// before any handler runs, so a rejected batch provably mutates nothing.
type conflictService struct {
	handlers map[string]ConflictHandler
	logger   *logger.Logger
}

// NewConflictService constructs a ConflictService with the listing and
// favorite handlers registered.
func NewConflictService(conflicts store.ConflictRepository, logger *logger.Logger) ConflictService {
	return &conflictService{
		handlers: map[string]ConflictHandler{
			ConflictEntityListing:  &listingConflictHandler{conflicts: conflicts},
			ConflictEntityFavorite: &favoriteConflictHandler{conflicts: conflicts},
		},
		logger: logger,
	}
}

// Resolve implements ConflictService.
func (c *conflictService) Resolve(ctx context.Context, userID int64, conflicts []models.SyncConflict, strategy models.ResolutionStrategy) ([]models.ResolvedConflict, error) {
	log := logger.FromContext(ctx)

	if len(conflicts) == 0 {
		return nil, ErrNoConflictsProvided
	}

	// Validate the whole batch before touching storage: one unsupported
	// entity type rejects everything, leaving no partial mutation behind.
	for _, conflict := range conflicts {
		if _, ok := c.handlers[conflict.EntityType]; !ok {
			log.Error().
				Str("entity_type", conflict.EntityType).
				Int64("entity_id", conflict.EntityID).
				Msg("conflict names an entity type without a registered handler")
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedConflictEntityType, conflict.EntityType)
		}
	}

	resolved := make([]models.ResolvedConflict, 0, len(conflicts))

	for _, conflict := range conflicts {
		resolvedData, err := resolveData(conflict, strategy)
		if err != nil {
			return nil, fmt.Errorf("resolving %s/%d: %w", conflict.EntityType, conflict.EntityID, err)
		}

		handler := c.handlers[conflict.EntityType]
		if err := handler.Apply(ctx, userID, conflict, strategy, resolvedData); err != nil {
			log.Err(err).
				Str("entity_type", conflict.EntityType).
				Int64("entity_id", conflict.EntityID).
				Str("strategy", string(strategy)).
				Msg("applying conflict resolution failed")
			return nil, fmt.Errorf("applying %s/%d: %w", conflict.EntityType, conflict.EntityID, err)
		}

		resolved = append(resolved, models.ResolvedConflict{
			EntityType:   conflict.EntityType,
			EntityID:     conflict.EntityID,
			Resolution:   strategy,
			ResolvedData: resolvedData,
		})
	}

	return resolved, nil
}

// resolveData computes the winning field set for one conflict without
// touching storage.
//
//   - server_wins: the server value stands unchanged.
//   - client_wins: the client value replaces the server's.
//   - merge: shallow key-by-key merge, client keys taking precedence;
//     server keys absent from the client payload survive. There are no
//     field-level timestamps, so a colliding server key is always lost to
//     the client side.
//   - manual (and any unrecognized strategy string): the caller-supplied
//     resolved_data is taken verbatim, with no validation against either
//     side.
func resolveData(conflict models.SyncConflict, strategy models.ResolutionStrategy) (map[string]any, error) {
	switch strategy {
	case models.ResolutionServerWins:
		return conflict.ServerData, nil

	case models.ResolutionClientWins:
		return conflict.ClientData, nil

	case models.ResolutionMerge:
		// A present client key wins regardless of its value: false, 0,
		// and "" are legitimate resolutions (unpublishing a rental,
		// zeroing a price, clearing a description), not absent fields.
		merged := make(map[string]any, len(conflict.ServerData)+len(conflict.ClientData))
		for k, v := range conflict.ServerData {
			merged[k] = v
		}
		for k, v := range conflict.ClientData {
			merged[k] = v
		}
		return merged, nil

	default:
		return conflict.ResolvedData, nil
	}
}

// listingConflictHandler applies resolutions for the "listing" entity type.
type listingConflictHandler struct {
	conflicts store.ConflictRepository
}

// Apply writes the resolved field set over the listing row. Under
// server_wins nothing is written: the stored row already is the resolution.
// Ownership is enforced by the repository's id+user_id filter alone — a
// listing belonging to another user matches zero rows and nothing happens.
func (h *listingConflictHandler) Apply(ctx context.Context, userID int64, conflict models.SyncConflict, strategy models.ResolutionStrategy, resolved map[string]any) error {
	if strategy == models.ResolutionServerWins {
		return nil
	}

	return h.conflicts.UpdateListing(ctx, userID, conflict.EntityID, resolved)
}

// favoriteConflictHandler applies resolutions for the "favorite" entity
// type. The conflict's EntityID is the listing id: a favorite is identified
// by its (user, listing) pair, not by its own row id.
type favoriteConflictHandler struct {
	conflicts store.ConflictRepository
}

// Apply converges the favorite to the resolved "exists" field. Both writes
// are idempotent: the upsert is a no-op when the favorite already exists,
// and the delete matches zero rows when it is already absent.
func (h *favoriteConflictHandler) Apply(ctx context.Context, userID int64, conflict models.SyncConflict, strategy models.ResolutionStrategy, resolved map[string]any) error {
	if strategy == models.ResolutionServerWins {
		return nil
	}

	if exists, ok := resolved["exists"].(bool); ok && !exists {
		return h.conflicts.DeleteFavorite(ctx, userID, conflict.EntityID)
	}

	return h.conflicts.UpsertFavorite(ctx, userID, conflict.EntityID)
}
