// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Motormarket

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildListingsSinceQuery_FullSync_OmitsWatermark(t *testing.T) {
	userID := int64(42)

	query, args, err := buildListingsSinceQuery(userID, time.Time{}, false)
	require.NoError(t, err)

	// A zero watermark must not appear as an epoch comparison: the
	// predicate is dropped entirely.
	require.NotContains(t, query, "updated_at >")
	require.Len(t, args, 2)
	require.Equal(t, userID, args[0])
	require.Equal(t, "draft", args[1])

	q := strings.ToLower(query)
	require.Contains(t, q, "from listings")
	require.Contains(t, q, "user_id")
	require.Contains(t, q, "status <>")
	require.Contains(t, q, "order by updated_at desc, id desc")
	require.Contains(t, query, "$1")
}

func Test_buildListingsSinceQuery_Incremental_AddsWatermark(t *testing.T) {
	since := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	query, args, err := buildListingsSinceQuery(7, since, false)
	require.NoError(t, err)

	require.Contains(t, query, "updated_at > ")
	require.Len(t, args, 3)
	require.Equal(t, since, args[2])
}

func Test_buildListingsSinceQuery_DraftsOnly(t *testing.T) {
	query, args, err := buildListingsSinceQuery(7, time.Time{}, true)
	require.NoError(t, err)

	require.Contains(t, query, "status = ")
	require.NotContains(t, query, "status <>")
	require.Equal(t, []any{int64(7), "draft"}, args)
}

func Test_buildListingsSinceQuery_SelectsAllProjectionColumns(t *testing.T) {
	query, _, err := buildListingsSinceQuery(1, time.Time{}, false)
	require.NoError(t, err)

	q := strings.ToLower(query)
	for _, c := range listingColumns {
		require.Contains(t, q, c)
	}
}

func Test_buildFavoritesSinceQuery(t *testing.T) {
	since := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	query, args, err := buildFavoritesSinceQuery(42, since)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "from favorites f")
	require.Contains(t, q, "left join listings l on l.id = f.listing_id")
	require.Contains(t, q, "f.user_id")
	require.Contains(t, q, "f.updated_at >")
	require.Contains(t, q, "order by f.updated_at desc, f.id desc")

	require.Equal(t, []any{int64(42), since}, args)
}

func Test_buildNotificationsSinceQuery(t *testing.T) {
	query, args, err := buildNotificationsSinceQuery(42, time.Time{})
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "from notifications n")
	require.Contains(t, q, "left join listings l on l.id = n.listing_id")
	require.NotContains(t, q, "n.updated_at >")

	require.Equal(t, []any{int64(42)}, args)
}

func Test_buildCountChangedQuery(t *testing.T) {
	since := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		since    time.Time
		wantArgs []any
	}{
		{
			name:     "full count without watermark",
			since:    time.Time{},
			wantArgs: []any{int64(9)},
		},
		{
			name:     "incremental count with watermark",
			since:    since,
			wantArgs: []any{int64(9), since},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildCountChangedQuery("favorites", 9, tt.since)
			require.NoError(t, err)

			assert.Contains(t, strings.ToLower(query), "count(*)")
			assert.Contains(t, strings.ToLower(query), "from favorites")
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func Test_buildListingConflictUpdateQuery_WhitelistAndOrder(t *testing.T) {
	fields := map[string]any{
		"price":      int64(120),
		"title":      "BMW 320i",
		"user_id":    int64(999), // identity column, must be dropped
		"id":         int64(888), // identity column, must be dropped
		"created_at": "2020-01-01",
		"bogus":      "x",
	}

	query, args, err := buildListingConflictUpdateQuery(42, 7, fields)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "update listings")
	require.Contains(t, q, "updated_at = now()")
	require.NotContains(t, q, "created_at =")
	require.NotContains(t, q, "bogus")

	// Whitelisted keys are applied in sorted order, then the WHERE args.
	require.Equal(t, []any{int64(120), "BMW 320i", int64(7), int64(42)}, args)
}

func Test_buildListingConflictUpdateQuery_Deterministic(t *testing.T) {
	fields := map[string]any{
		"title":   "a",
		"price":   1,
		"mileage": 2,
		"city":    "Praha",
		"year":    2019,
	}

	first, firstArgs, err := buildListingConflictUpdateQuery(1, 2, fields)
	require.NoError(t, err)

	// Map iteration order must never leak into the generated SQL.
	for i := 0; i < 20; i++ {
		query, args, err := buildListingConflictUpdateQuery(1, 2, fields)
		require.NoError(t, err)
		require.Equal(t, first, query)
		require.Equal(t, firstArgs, args)
	}
}

func Test_buildListingConflictUpdateQuery_EmptyPayloadStillStampsUpdatedAt(t *testing.T) {
	query, args, err := buildListingConflictUpdateQuery(42, 7, map[string]any{})
	require.NoError(t, err)

	require.Contains(t, strings.ToLower(query), "updated_at = now()")
	require.Equal(t, []any{int64(7), int64(42)}, args)
}
