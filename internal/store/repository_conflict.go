package store

import (
	"context"
	"fmt"

	"github.com/motormarket/go-mobile-sync/internal/logger"
)

// conflictRepository is the PostgreSQL-backed implementation of
// [ConflictRepository]. Resolutions are applied as plain single-row
// mutations; the id+user_id WHERE clause is the only ownership check, so a
// payload aimed at another user's record simply matches zero rows.
type conflictRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewConflictRepository constructs a [ConflictRepository] backed by the
// provided database connection and logger.
func NewConflictRepository(db *DB, logger *logger.Logger) ConflictRepository {
	logger.Debug().Msg("creating conflict repository")
	return &conflictRepository{
		db:     db,
		logger: logger,
	}
}

// UpdateListing implements [ConflictRepository]. A resolved payload with no
// whitelisted fields still stamps updated_at, so the resolution is visible
// to the next incremental sync. Zero matched rows is not an error.
func (r *conflictRepository) UpdateListing(ctx context.Context, userID, listingID int64, fields map[string]any) error {
	log := logger.FromContext(ctx)

	query, args, err := buildListingConflictUpdateQuery(userID, listingID, fields)
	if err != nil {
		log.Err(err).
			Str("func", "*conflictRepository.UpdateListing").
			Int64("listing_id", listingID).
			Msg("failed to build conflict update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "*conflictRepository.UpdateListing").
			Int64("user_id", userID).
			Int64("listing_id", listingID).
			Msg("failed to apply listing resolution")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// UpsertFavorite implements [ConflictRepository]. Inserting a favorite that
// already exists hits the (user_id, listing_id) unique constraint and is
// swallowed by ON CONFLICT DO NOTHING.
func (r *conflictRepository) UpsertFavorite(ctx context.Context, userID, listingID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, upsertFavorite, userID, listingID); err != nil {
		log.Err(err).
			Str("func", "*conflictRepository.UpsertFavorite").
			Int64("user_id", userID).
			Int64("listing_id", listingID).
			Msg("failed to upsert favorite")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// DeleteFavorite implements [ConflictRepository]. Deleting an absent
// favorite matches zero rows and succeeds.
func (r *conflictRepository) DeleteFavorite(ctx context.Context, userID, listingID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteFavorite, userID, listingID); err != nil {
		log.Err(err).
			Str("func", "*conflictRepository.DeleteFavorite").
			Int64("user_id", userID).
			Int64("listing_id", listingID).
			Msg("failed to delete favorite")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
