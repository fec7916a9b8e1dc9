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

// syncLogRepository is the PostgreSQL-backed implementation of
// [SyncLogRepository]. The sync_logs table is append-only; nothing here
// updates or deletes rows.
type syncLogRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSyncLogRepository constructs a [SyncLogRepository] backed by the
// provided database connection and logger.
func NewSyncLogRepository(db *DB, logger *logger.Logger) SyncLogRepository {
	logger.Debug().Msg("creating sync log repository")
	return &syncLogRepository{
		db:     db,
		logger: logger,
	}
}

// Append implements [SyncLogRepository].
func (r *syncLogRepository) Append(ctx context.Context, entry models.SyncLogEntry) error {
	log := logger.FromContext(ctx)

	var lastSync sql.NullTime
	if entry.LastSyncTimestamp != nil {
		lastSync = sql.NullTime{Time: *entry.LastSyncTimestamp, Valid: true}
	}

	row := r.db.QueryRowContext(ctx, insertSyncLog,
		entry.UserID,
		entry.DeviceID,
		entry.AppVersion,
		entry.Entities,
		lastSync,
		entry.SyncTimestamp,
		entry.DataSize,
	)

	var id int64
	if err := row.Scan(&id); err != nil {
		log.Err(err).
			Str("func", "*syncLogRepository.Append").
			Int64("user_id", entry.UserID).
			Str("device_id", entry.DeviceID).
			Msg("failed to insert sync log entry")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// LastSync implements [SyncLogRepository]. A user who has never synced is
// not an error: the method returns (nil, nil).
func (r *syncLogRepository) LastSync(ctx context.Context, userID int64, deviceID string) (*models.SyncLogEntry, error) {
	log := logger.FromContext(ctx)

	var row *sql.Row
	if deviceID == "" {
		row = r.db.QueryRowContext(ctx, lastSyncForUser, userID)
	} else {
		row = r.db.QueryRowContext(ctx, lastSyncForDevice, userID, deviceID)
	}

	var entry models.SyncLogEntry
	var lastSync sql.NullTime

	err := row.Scan(
		&entry.ID,
		&entry.UserID,
		&entry.DeviceID,
		&entry.AppVersion,
		&entry.Entities,
		&lastSync,
		&entry.SyncTimestamp,
		&entry.DataSize,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		log.Err(err).
			Str("func", "*syncLogRepository.LastSync").
			Int64("user_id", userID).
			Str("device_id", deviceID).
			Msg("failed to scan sync log entry")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if lastSync.Valid {
		entry.LastSyncTimestamp = &lastSync.Time
	}

	return &entry, nil
}

// ActiveDevices implements [SyncLogRepository].
func (r *syncLogRepository) ActiveDevices(ctx context.Context, userID int64, since time.Time) ([]string, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, activeDevicesSince, userID, since)
	if err != nil {
		log.Err(err).
			Str("func", "*syncLogRepository.ActiveDevices").
			Int64("user_id", userID).
			Msg("failed to query active devices")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	devices := make([]string, 0, 2)

	for rows.Next() {
		var deviceID string
		if scanErr := rows.Scan(&deviceID); scanErr != nil {
			log.Err(scanErr).
				Str("func", "*syncLogRepository.ActiveDevices").
				Int64("user_id", userID).
				Msg("failed to scan device id")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		devices = append(devices, deviceID)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*syncLogRepository.ActiveDevices").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return devices, nil
}
