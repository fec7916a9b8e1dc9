// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Motormarket

package agent

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/motormarket/go-mobile-sync/internal/config"
	"github.com/motormarket/go-mobile-sync/internal/logger"
	"github.com/motormarket/go-mobile-sync/models"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS sessions
(
    id        INTEGER PRIMARY KEY CHECK (id = 1),
    token     TEXT NOT NULL,
    device_id TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sync_state
(
    id        INTEGER PRIMARY KEY CHECK (id = 1),
    watermark TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS entities
(
    entity_type TEXT    NOT NULL,
    entity_id   INTEGER NOT NULL,
    payload     TEXT    NOT NULL,
    updated_at  TEXT    NOT NULL,
    PRIMARY KEY (entity_type, entity_id)
);

CREATE TABLE IF NOT EXISTS pending_changes
(
    entity_type TEXT    NOT NULL,
    entity_id   INTEGER NOT NULL,
    payload     TEXT    NOT NULL,
    created_at  TEXT    NOT NULL,
    PRIMARY KEY (entity_type, entity_id)
);
`

// sqliteCache is the SQLite-backed implementation of [CacheStore]. Entity
// rows are stored as JSON payloads keyed by (type, id); the watermark and
// session occupy single-row tables.
type sqliteCache struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewSQLiteCache opens (creating if needed) the agent's local cache file
// and ensures the schema exists.
func NewSQLiteCache(ctx context.Context, cfg config.AgentStorage, log *logger.Logger) (CacheStore, error) {
	if err := createLocalDBFileIfNotExists(cfg.CacheDSN); err != nil {
		log.Err(err).Str("func", "NewSQLiteCache").Msg("error creating cache file")
		return nil, fmt.Errorf("error creating cache file: %w", err)
	}

	conn, err := sql.Open("sqlite3", cfg.CacheDSN)
	if err != nil {
		log.Err(err).Str("func", "NewSQLiteCache").Msg("error opening cache database")
		return nil, fmt.Errorf("error opening cache database: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewSQLiteCache").Msg("error connecting cache database (ping)")
		return nil, err
	}

	if _, err = conn.ExecContext(ctx, cacheSchema); err != nil {
		log.Err(err).Str("func", "NewSQLiteCache").Msg("error creating cache schema")
		return nil, fmt.Errorf("error creating cache schema: %w", err)
	}

	log.Debug().Str("func", "NewSQLiteCache").Msg("connected to cache database successfully")

	return &sqliteCache{db: conn, logger: log}, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if dbFile == "" || dbFile == ":memory:" {
		return nil
	}

	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating cache file: %w", err)
		}
		f.Close()
	}

	return nil
}

// SaveEnvelope implements [CacheStore]. Only the entity types present in
// data are touched; rows arrive as changed-since-watermark deltas and are
// upserted over the existing cache. The watermark advances in the same
// transaction, so a crash mid-save never leaves the watermark ahead of the
// cached rows.
func (s *sqliteCache) SaveEnvelope(ctx context.Context, data SyncData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache transaction: %w", err)
	}
	defer tx.Rollback()

	for _, listing := range data.Listings {
		if err = upsertEntity(ctx, tx, string(models.EntityListings), listing.ID, listing, listing.UpdatedAt); err != nil {
			return err
		}
	}
	for _, draft := range data.Drafts {
		if err = upsertEntity(ctx, tx, string(models.EntityDrafts), draft.ID, draft, draft.UpdatedAt); err != nil {
			return err
		}
	}
	for _, favorite := range data.Favorites {
		if err = upsertEntity(ctx, tx, string(models.EntityFavorites), favorite.ID, favorite, favorite.UpdatedAt); err != nil {
			return err
		}
	}
	for _, notification := range data.Notifications {
		if err = upsertEntity(ctx, tx, string(models.EntityNotifications), notification.ID, notification, notification.UpdatedAt); err != nil {
			return err
		}
	}
	if data.Profile != nil {
		if err = upsertEntity(ctx, tx, string(models.EntityProfile), data.Profile.UserID, data.Profile, data.Profile.UpdatedAt); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sync_state (id, watermark) VALUES (1, ?)
         ON CONFLICT (id) DO UPDATE SET watermark = excluded.watermark;`,
		data.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store watermark: %w", err)
	}

	return tx.Commit()
}

func upsertEntity(ctx context.Context, tx *sql.Tx, entityType string, entityID int64, payload any, updatedAt time.Time) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode cached %s: %w", entityType, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO entities (entity_type, entity_id, payload, updated_at) VALUES (?, ?, ?, ?)
         ON CONFLICT (entity_type, entity_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at;`,
		entityType, entityID, string(body), updatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert cached %s: %w", entityType, err)
	}

	return nil
}

// Watermark implements [CacheStore].
func (s *sqliteCache) Watermark(ctx context.Context) (time.Time, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT watermark FROM sync_state WHERE id = 1;`).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("read watermark: %w", err)
	}

	watermark, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse watermark %q: %w", raw, err)
	}

	return watermark, nil
}

// SaveSession implements [CacheStore].
func (s *sqliteCache) SaveSession(ctx context.Context, token, deviceID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, token, device_id) VALUES (1, ?, ?)
         ON CONFLICT (id) DO UPDATE SET token = excluded.token, device_id = excluded.device_id;`,
		token, deviceID,
	)
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	return nil
}

// Session implements [CacheStore].
func (s *sqliteCache) Session(ctx context.Context) (string, string, error) {
	var token, deviceID string
	err := s.db.QueryRowContext(ctx, `SELECT token, device_id FROM sessions WHERE id = 1;`).Scan(&token, &deviceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", ErrNoSession
		}
		return "", "", fmt.Errorf("read session: %w", err)
	}

	return token, deviceID, nil
}

// SavePendingChange implements [CacheStore].
func (s *sqliteCache) SavePendingChange(ctx context.Context, change PendingChange) error {
	body, err := json.Marshal(change.Payload)
	if err != nil {
		return fmt.Errorf("encode pending %s change: %w", change.EntityType, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO pending_changes (entity_type, entity_id, payload, created_at) VALUES (?, ?, ?, ?)
         ON CONFLICT (entity_type, entity_id) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at;`,
		change.EntityType, change.EntityID, string(body), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("store pending %s change: %w", change.EntityType, err)
	}

	return nil
}

// PendingChanges implements [CacheStore].
func (s *sqliteCache) PendingChanges(ctx context.Context) ([]PendingChange, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT entity_type, entity_id, payload FROM pending_changes ORDER BY created_at, entity_type, entity_id;`)
	if err != nil {
		return nil, fmt.Errorf("read pending changes: %w", err)
	}
	defer rows.Close()

	var changes []PendingChange
	for rows.Next() {
		var change PendingChange
		var body string
		if err = rows.Scan(&change.EntityType, &change.EntityID, &body); err != nil {
			return nil, fmt.Errorf("scan pending change: %w", err)
		}
		if err = json.Unmarshal([]byte(body), &change.Payload); err != nil {
			return nil, fmt.Errorf("decode pending %s change: %w", change.EntityType, err)
		}
		changes = append(changes, change)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("read pending changes: %w", err)
	}

	return changes, nil
}

// ClearPendingChange implements [CacheStore].
func (s *sqliteCache) ClearPendingChange(ctx context.Context, entityType string, entityID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM pending_changes WHERE entity_type = ? AND entity_id = ?;`,
		entityType, entityID,
	)
	if err != nil {
		return fmt.Errorf("clear pending %s change: %w", entityType, err)
	}

	return nil
}

// Close implements [CacheStore].
func (s *sqliteCache) Close() error {
	return s.db.Close()
}
