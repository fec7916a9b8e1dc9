package store

import (
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// psql is the shared statement builder configured for PostgreSQL
// positional placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	createUser = `INSERT INTO users (login, auth_hash, name)
    VALUES ($1, $2, $3)
    RETURNING user_id, login, auth_hash, name, created_at, updated_at;`

	findUserByLogin = `SELECT user_id, login, auth_hash, name, created_at, updated_at
    FROM users
    WHERE login = $1;`

	// The profile projection merges the account row and its nested profile
	// row; both updated_at columns are scanned so the reader can take the
	// later of the two before comparing against the watermark.
	getProfileProjection = `SELECT u.user_id, u.login, u.name, p.phone, p.city, p.avatar_url, u.updated_at, p.updated_at
    FROM users u
    LEFT JOIN profiles p ON p.user_id = u.user_id
    WHERE u.user_id = $1;`

	upsertFavorite = `INSERT INTO favorites (user_id, listing_id)
    VALUES ($1, $2)
    ON CONFLICT (user_id, listing_id) DO NOTHING;`

	deleteFavorite = `DELETE FROM favorites
    WHERE user_id = $1 AND listing_id = $2;`

	insertSyncLog = `INSERT INTO sync_logs (user_id, device_id, app_version, entities, last_sync_timestamp, sync_timestamp, data_size)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING id;`

	lastSyncForUser = `SELECT id, user_id, device_id, app_version, entities, last_sync_timestamp, sync_timestamp, data_size
    FROM sync_logs
    WHERE user_id = $1
    ORDER BY sync_timestamp DESC
    LIMIT 1;`

	lastSyncForDevice = `SELECT id, user_id, device_id, app_version, entities, last_sync_timestamp, sync_timestamp, data_size
    FROM sync_logs
    WHERE user_id = $1 AND device_id = $2
    ORDER BY sync_timestamp DESC
    LIMIT 1;`

	activeDevicesSince = `SELECT DISTINCT device_id
    FROM sync_logs
    WHERE user_id = $1 AND sync_timestamp > $2 AND device_id <> '';`
)

// listingColumns is the denormalized projection mobile clients cache for
// offline display.
var listingColumns = []string{
	"id", "user_id", "title", "make", "model", "year", "price",
	"mileage", "city", "photo_url", "status", "for_rent", "description",
	"created_at", "updated_at",
}

// buildListingsSinceQuery selects the user's listings changed strictly after
// since, newest first. draftsOnly toggles between the published-listings and
// drafts entity types, which share the listings table.
//
// A zero since means full sync: the watermark predicate is omitted entirely
// instead of comparing against the epoch.
func buildListingsSinceQuery(userID int64, since time.Time, draftsOnly bool) (string, []any, error) {
	q := psql.Select(listingColumns...).
		From("listings").
		Where(sq.Eq{"user_id": userID})

	if draftsOnly {
		q = q.Where(sq.Eq{"status": "draft"})
	} else {
		q = q.Where(sq.NotEq{"status": "draft"})
	}

	if !since.IsZero() {
		q = q.Where(sq.Gt{"updated_at": since})
	}

	return q.OrderBy("updated_at DESC", "id DESC").ToSql()
}

// buildFavoritesSinceQuery selects the user's favorites changed after since
// with a one-level LEFT JOIN of the referenced listing. The join is LEFT so
// that a favorite whose listing has since been deleted still syncs — the
// listing reference degrades to NULLs scanned into a nil *ListingRef.
func buildFavoritesSinceQuery(userID int64, since time.Time) (string, []any, error) {
	q := psql.Select(
		"f.id", "f.user_id", "f.listing_id", "f.created_at", "f.updated_at",
		"l.id", "l.title", "l.price", "l.photo_url", "l.status",
	).
		From("favorites f").
		LeftJoin("listings l ON l.id = f.listing_id").
		Where(sq.Eq{"f.user_id": userID})

	if !since.IsZero() {
		q = q.Where(sq.Gt{"f.updated_at": since})
	}

	return q.OrderBy("f.updated_at DESC", "f.id DESC").ToSql()
}

// buildNotificationsSinceQuery selects the user's notifications changed
// after since, with the same shallow listing join semantics as favorites.
func buildNotificationsSinceQuery(userID int64, since time.Time) (string, []any, error) {
	q := psql.Select(
		"n.id", "n.user_id", "n.type", "n.title", "n.body", "n.read",
		"n.listing_id", "n.created_at", "n.updated_at",
		"l.id", "l.title", "l.price", "l.photo_url", "l.status",
	).
		From("notifications n").
		LeftJoin("listings l ON l.id = n.listing_id").
		Where(sq.Eq{"n.user_id": userID})

	if !since.IsZero() {
		q = q.Where(sq.Gt{"n.updated_at": since})
	}

	return q.OrderBy("n.updated_at DESC", "n.id DESC").ToSql()
}

// buildCountChangedQuery counts the user's rows in table changed after
// since. Used by the status read path to compute pending changes.
func buildCountChangedQuery(table string, userID int64, since time.Time) (string, []any, error) {
	q := psql.Select("COUNT(*)").
		From(table).
		Where(sq.Eq{"user_id": userID})

	if !since.IsZero() {
		q = q.Where(sq.Gt{"updated_at": since})
	}

	return q.ToSql()
}

// listingConflictColumns whitelists the listing fields a conflict resolution
// may overwrite. Identity and bookkeeping columns (id, user_id, created_at,
// updated_at) are deliberately absent so client payloads cannot touch them;
// updated_at is stamped by the UPDATE itself.
var listingConflictColumns = map[string]struct{}{
	"title":       {},
	"make":        {},
	"model":       {},
	"year":        {},
	"price":       {},
	"mileage":     {},
	"city":        {},
	"photo_url":   {},
	"status":      {},
	"for_rent":    {},
	"description": {},
}

// buildListingConflictUpdateQuery builds the UPDATE applying a resolved
// conflict payload to one listing. Keys outside the whitelist are skipped
// silently — the resolver trusts the payload's values, never its shape.
// Keys are applied in sorted order so the generated SQL is deterministic.
//
// The WHERE clause is the protocol's only ownership check: a listing id
// belonging to another user matches zero rows and the update is a no-op.
func buildListingConflictUpdateQuery(userID, listingID int64, fields map[string]any) (string, []any, error) {
	q := psql.Update("listings").
		Set("updated_at", sq.Expr("NOW()"))

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if _, ok := listingConflictColumns[k]; ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		q = q.Set(k, fields[k])
	}

	return q.Where(sq.Eq{"id": listingID, "user_id": userID}).ToSql()
}
