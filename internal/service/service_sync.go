// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Motormarket

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/motormarket/go-mobile-sync/internal/logger"
	"github.com/motormarket/go-mobile-sync/internal/store"
	"github.com/motormarket/go-mobile-sync/models"
)

// multiDeviceWindow is the trailing window the multi-device heuristic
// looks at when counting distinct device ids in the sync log.
const multiDeviceWindow = 24 * time.Hour

// syncService is the concrete implementation of SyncService. Envelope
// building is a pure read composition: one snapshot read per requested
// entity type against a single watermark, assembled into a typed envelope
// stamped with one server timestamp.
type syncService struct {
	snapshots store.SnapshotRepository
	syncLogs  store.SyncLogRepository
	logger    *logger.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewSyncService constructs a SyncService over the given repositories.
func NewSyncService(snapshots store.SnapshotRepository, syncLogs store.SyncLogRepository, logger *logger.Logger) SyncService {
	return &syncService{
		snapshots: snapshots,
		syncLogs:  syncLogs,
		logger:    logger,
		now:       time.Now,
	}
}

// BuildEnvelope implements SyncService.
//
// Unknown entity-type names in the request have already been dropped by
// RequestedTypes, so a request of only unknown types degrades to a
// metadata-only envelope rather than an error. Any snapshot read failure
// fails the whole call: a partial envelope would advance the client's
// watermark past changes it never received.
func (s *syncService) BuildEnvelope(ctx context.Context, req models.SyncRequest) (models.SyncEnvelope, error) {
	log := logger.FromContext(ctx)

	since := req.Watermark()
	requested := req.RequestedTypes()

	envelope := models.SyncEnvelope{
		UserID:     req.UserID,
		DeviceID:   req.DeviceID,
		AppVersion: req.AppVersion,
		Requested:  requested,
	}

	for _, entityType := range requested {
		var err error

		switch entityType {
		case models.EntityListings:
			envelope.Listings, err = s.snapshots.ListingsSince(ctx, req.UserID, since)
		case models.EntityDrafts:
			envelope.Drafts, err = s.snapshots.DraftsSince(ctx, req.UserID, since)
		case models.EntityFavorites:
			envelope.Favorites, err = s.snapshots.FavoritesSince(ctx, req.UserID, since)
		case models.EntityNotifications:
			envelope.Notifications, err = s.snapshots.NotificationsSince(ctx, req.UserID, since)
		case models.EntityProfile:
			envelope.Profile, err = s.snapshots.ProfileSince(ctx, req.UserID, since)
		}

		if err != nil {
			log.Err(err).
				Str("entity_type", string(entityType)).
				Int64("user_id", req.UserID).
				Msg("snapshot read failed, aborting envelope")
			return models.SyncEnvelope{}, fmt.Errorf("reading %s snapshot: %w", entityType, err)
		}
	}

	// Stamped once, after all reads: this is the watermark the client
	// stores, so it must not predate any row already inside the envelope.
	envelope.Timestamp = s.now().UTC()

	return envelope, nil
}

// Status implements SyncService.
func (s *syncService) Status(ctx context.Context, userID int64, deviceID string) (models.SyncStatus, error) {
	log := logger.FromContext(ctx)

	now := s.now().UTC()

	status := models.SyncStatus{
		ServerTimestamp: now,
	}

	lastEntry, err := s.syncLogs.LastSync(ctx, userID, deviceID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("reading last sync failed")
		return models.SyncStatus{}, fmt.Errorf("reading last sync: %w", err)
	}

	// A device that has never synced has everything pending: the zero
	// since below makes the counts full-table counts for the user.
	var since time.Time
	if lastEntry != nil {
		since = lastEntry.SyncTimestamp
		status.LastSync = &models.LastSyncInfo{
			Timestamp: lastEntry.SyncTimestamp,
			DeviceID:  lastEntry.DeviceID,
			Entities:  splitEntities(lastEntry.Entities),
			DataSize:  lastEntry.DataSize,
		}
	}

	status.PendingChanges, err = s.snapshots.CountChangedSince(ctx, userID, since)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("counting pending changes failed")
		return models.SyncStatus{}, fmt.Errorf("counting pending changes: %w", err)
	}

	devices, err := s.syncLogs.ActiveDevices(ctx, userID, now.Add(-multiDeviceWindow))
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("reading active devices failed")
		return models.SyncStatus{}, fmt.Errorf("reading active devices: %w", err)
	}

	status.ActiveDevices = len(devices)
	status.HasMultipleDevices = len(devices) > 1

	return status, nil
}

func splitEntities(joined string) []string {
	if joined == "" {
		return []string{}
	}

	parts := strings.Split(joined, ",")
	entities := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			entities = append(entities, trimmed)
		}
	}

	return entities
}
