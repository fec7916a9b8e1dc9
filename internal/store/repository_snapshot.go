// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Motormarket

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/motormarket/go-mobile-sync/internal/logger"
	"github.com/motormarket/go-mobile-sync/models"
)

// snapshotRepository is the PostgreSQL-backed implementation of
// [SnapshotRepository] — the entity snapshot reader of the sync protocol.
// It is stateless: every method is a pure function of (entity type, owner
// id, watermark) over the authoritative store, with no side effects.
type snapshotRepository struct {
	*DB
	logger *logger.Logger
}

// NewSnapshotRepository constructs a [SnapshotRepository] backed by the
// provided database connection and logger.
func NewSnapshotRepository(db *DB, logger *logger.Logger) SnapshotRepository {
	return &snapshotRepository{
		DB:     db,
		logger: logger,
	}
}

// ListingsSince implements [SnapshotRepository].
func (s *snapshotRepository) ListingsSince(ctx context.Context, userID int64, since time.Time) ([]models.Listing, error) {
	return s.listings(ctx, userID, since, false)
}

// DraftsSince implements [SnapshotRepository]. Drafts share the listings
// table, narrowed to draft status.
func (s *snapshotRepository) DraftsSince(ctx context.Context, userID int64, since time.Time) ([]models.Listing, error) {
	return s.listings(ctx, userID, since, true)
}

func (s *snapshotRepository) listings(ctx context.Context, userID int64, since time.Time, draftsOnly bool) ([]models.Listing, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListingsSinceQuery(userID, since, draftsOnly)
	if err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.listings").
			Int64("user_id", userID).
			Msg("failed to build listings query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.listings").
			Int64("user_id", userID).
			Bool("drafts_only", draftsOnly).
			Msg("failed to execute listings snapshot query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Listing, 0, 50)

	for rows.Next() {
		var item models.Listing
		var photoURL, description sql.NullString

		scanErr := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Title,
			&item.Make,
			&item.Model,
			&item.Year,
			&item.Price,
			&item.Mileage,
			&item.City,
			&photoURL,
			&item.Status,
			&item.ForRent,
			&description,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "snapshotRepository.listings").
				Int64("user_id", userID).
				Msg("failed to scan listing row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		item.PhotoURL = photoURL.String
		item.Description = description.String

		results = append(results, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "snapshotRepository.listings").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// FavoritesSince implements [SnapshotRepository].
func (s *snapshotRepository) FavoritesSince(ctx context.Context, userID int64, since time.Time) ([]models.Favorite, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFavoritesSinceQuery(userID, since)
	if err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.FavoritesSince").
			Int64("user_id", userID).
			Msg("failed to build favorites query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.FavoritesSince").
			Int64("user_id", userID).
			Msg("failed to execute favorites snapshot query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Favorite, 0, 50)

	for rows.Next() {
		var item models.Favorite
		var ref nullableListingRef

		scanErr := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ListingID,
			&item.CreatedAt,
			&item.UpdatedAt,
			&ref.id,
			&ref.title,
			&ref.price,
			&ref.photoURL,
			&ref.status,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "snapshotRepository.FavoritesSince").
				Int64("user_id", userID).
				Msg("failed to scan favorite row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		item.Listing = ref.toModel()

		results = append(results, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "snapshotRepository.FavoritesSince").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// NotificationsSince implements [SnapshotRepository].
func (s *snapshotRepository) NotificationsSince(ctx context.Context, userID int64, since time.Time) ([]models.Notification, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildNotificationsSinceQuery(userID, since)
	if err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.NotificationsSince").
			Int64("user_id", userID).
			Msg("failed to build notifications query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.NotificationsSince").
			Int64("user_id", userID).
			Msg("failed to execute notifications snapshot query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Notification, 0, 50)

	for rows.Next() {
		var item models.Notification
		var body sql.NullString
		var listingID sql.NullInt64
		var ref nullableListingRef

		scanErr := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Type,
			&item.Title,
			&body,
			&item.Read,
			&listingID,
			&item.CreatedAt,
			&item.UpdatedAt,
			&ref.id,
			&ref.title,
			&ref.price,
			&ref.photoURL,
			&ref.status,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "snapshotRepository.NotificationsSince").
				Int64("user_id", userID).
				Msg("failed to scan notification row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		item.Body = body.String
		if listingID.Valid {
			item.ListingID = &listingID.Int64
		}
		item.Listing = ref.toModel()

		results = append(results, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "snapshotRepository.NotificationsSince").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// ProfileSince implements [SnapshotRepository].
//
// The account row and the nested profile row carry independent updated_at
// timestamps; the projection is included only when the later of the two is
// strictly greater than since. A user without a profiles row still syncs —
// the LEFT JOIN columns scan as NULLs.
func (s *snapshotRepository) ProfileSince(ctx context.Context, userID int64, since time.Time) (*models.Profile, error) {
	log := logger.FromContext(ctx)

	var profile models.Profile
	var name, phone, city, avatarURL sql.NullString
	var userUpdatedAt time.Time
	var profileUpdatedAt sql.NullTime

	row := s.DB.QueryRowContext(ctx, getProfileProjection, userID)
	if err := row.Scan(
		&profile.UserID,
		&profile.Login,
		&name,
		&phone,
		&city,
		&avatarURL,
		&userUpdatedAt,
		&profileUpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Token verified but the account row is gone — nothing to sync.
			return nil, nil
		}

		log.Err(err).
			Str("func", "snapshotRepository.ProfileSince").
			Int64("user_id", userID).
			Msg("failed to scan profile projection")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	profile.Name = name.String
	profile.Phone = phone.String
	profile.City = city.String
	profile.AvatarURL = avatarURL.String

	profile.UpdatedAt = userUpdatedAt
	if profileUpdatedAt.Valid && profileUpdatedAt.Time.After(profile.UpdatedAt) {
		profile.UpdatedAt = profileUpdatedAt.Time
	}

	if !profile.UpdatedAt.After(since) {
		return nil, nil
	}

	return &profile, nil
}

// CountChangedSince implements [SnapshotRepository]. The three counts are
// independent queries; a failure of any one fails the whole read so the
// status endpoint never reports a partially computed pending-changes block.
func (s *snapshotRepository) CountChangedSince(ctx context.Context, userID int64, since time.Time) (models.PendingChanges, error) {
	log := logger.FromContext(ctx)

	var pending models.PendingChanges

	counts := []struct {
		table string
		dest  *int64
	}{
		{"listings", &pending.Listings},
		{"favorites", &pending.Favorites},
		{"notifications", &pending.Notifications},
	}

	for _, c := range counts {
		query, args, err := buildCountChangedQuery(c.table, userID, since)
		if err != nil {
			log.Err(err).
				Str("func", "snapshotRepository.CountChangedSince").
				Str("table", c.table).
				Msg("failed to build count query")
			return models.PendingChanges{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if err := s.DB.QueryRowContext(ctx, query, args...).Scan(c.dest); err != nil {
			log.Err(err).
				Str("func", "snapshotRepository.CountChangedSince").
				Str("table", c.table).
				Int64("user_id", userID).
				Msg("failed to count changed rows")
			return models.PendingChanges{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return pending, nil
}

// nullableListingRef buffers the LEFT JOIN columns of a referenced listing.
// When the listing has been deleted all columns are NULL and toModel
// returns nil.
type nullableListingRef struct {
	id       sql.NullInt64
	title    sql.NullString
	price    sql.NullInt64
	photoURL sql.NullString
	status   sql.NullString
}

func (r nullableListingRef) toModel() *models.ListingRef {
	if !r.id.Valid {
		return nil
	}

	return &models.ListingRef{
		ID:       r.id.Int64,
		Title:    r.title.String,
		Price:    r.price.Int64,
		PhotoURL: r.photoURL.String,
		Status:   models.ListingStatus(r.status.String),
	}
}
