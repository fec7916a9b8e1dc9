package agent

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/motormarket/go-mobile-sync/internal/config"
	"github.com/motormarket/go-mobile-sync/internal/logger"
	"github.com/motormarket/go-mobile-sync/models"
)

// newTestCache opens a cache backed by a file in a per-test temp dir, so
// the file-creation path of the constructor is exercised too.
func newTestCache(t *testing.T) *sqliteCache {
	t.Helper()

	store, err := NewSQLiteCache(
		context.Background(),
		config.AgentStorage{CacheDSN: filepath.Join(t.TempDir(), "cache.db")},
		logger.Nop(),
	)
	if err != nil {
		t.Fatalf("NewSQLiteCache() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cache, ok := store.(*sqliteCache)
	if !ok {
		t.Fatalf("NewSQLiteCache() returned %T, want *sqliteCache", store)
	}

	return cache
}

func (s *sqliteCache) countEntities(t *testing.T, entityType string) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM entities WHERE entity_type = ?;`, entityType).Scan(&n); err != nil {
		t.Fatalf("count %s entities: %v", entityType, err)
	}
	return n
}

func TestWatermark_EmptyCacheReturnsZero(t *testing.T) {
	cache := newTestCache(t)

	watermark, err := cache.Watermark(context.Background())
	if err != nil {
		t.Fatalf("Watermark() error = %v", err)
	}
	if !watermark.IsZero() {
		t.Errorf("Watermark() = %v, want zero time on empty cache", watermark)
	}
}

func TestSaveEnvelope_AdvancesWatermark(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	first := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	for _, ts := range []time.Time{first, second} {
		if err := cache.SaveEnvelope(ctx, SyncData{Timestamp: ts, UserID: 42}); err != nil {
			t.Fatalf("SaveEnvelope() error = %v", err)
		}
	}

	watermark, err := cache.Watermark(ctx)
	if err != nil {
		t.Fatalf("Watermark() error = %v", err)
	}
	if !watermark.Equal(second) {
		t.Errorf("Watermark() = %v, want %v", watermark, second)
	}
}

func TestSaveEnvelope_UpsertsEntities(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	data := SyncData{
		Timestamp: now,
		UserID:    42,
		Listings: []models.Listing{
			{ID: 1, UserID: 42, Title: "BMW 320i", Price: 100, UpdatedAt: now},
			{ID: 2, UserID: 42, Title: "Audi A4", Price: 90, UpdatedAt: now},
		},
		Favorites: []models.Favorite{
			{ID: 5, UserID: 42, ListingID: 1, UpdatedAt: now},
		},
		Profile: &models.Profile{UserID: 42, Login: "ivan", UpdatedAt: now},
	}

	if err := cache.SaveEnvelope(ctx, data); err != nil {
		t.Fatalf("SaveEnvelope() error = %v", err)
	}

	if got := cache.countEntities(t, string(models.EntityListings)); got != 2 {
		t.Errorf("cached listings = %d, want 2", got)
	}
	if got := cache.countEntities(t, string(models.EntityFavorites)); got != 1 {
		t.Errorf("cached favorites = %d, want 1", got)
	}
	if got := cache.countEntities(t, string(models.EntityProfile)); got != 1 {
		t.Errorf("cached profile rows = %d, want 1", got)
	}

	// A later delta for the same listing replaces the row instead of
	// duplicating it.
	data.Listings = []models.Listing{
		{ID: 1, UserID: 42, Title: "BMW 320i xDrive", Price: 110, UpdatedAt: now.Add(time.Hour)},
	}
	data.Timestamp = now.Add(time.Hour)
	if err := cache.SaveEnvelope(ctx, data); err != nil {
		t.Fatalf("SaveEnvelope() error = %v", err)
	}

	if got := cache.countEntities(t, string(models.EntityListings)); got != 2 {
		t.Errorf("cached listings after upsert = %d, want 2", got)
	}

	var payload string
	err := cache.db.QueryRow(
		`SELECT payload FROM entities WHERE entity_type = ? AND entity_id = 1;`,
		string(models.EntityListings),
	).Scan(&payload)
	if err != nil {
		t.Fatalf("read cached listing: %v", err)
	}

	var listing models.Listing
	if err = json.Unmarshal([]byte(payload), &listing); err != nil {
		t.Fatalf("decode cached listing: %v", err)
	}
	if listing.Title != "BMW 320i xDrive" || listing.Price != 110 {
		t.Errorf("cached listing = %+v, want updated title and price", listing)
	}
}

func TestSaveEnvelope_SkipsAbsentTypes(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	seed := SyncData{
		Timestamp: now,
		Listings:  []models.Listing{{ID: 1, UserID: 42, UpdatedAt: now}},
	}
	if err := cache.SaveEnvelope(ctx, seed); err != nil {
		t.Fatalf("SaveEnvelope() error = %v", err)
	}

	// A metadata-only envelope must leave previously cached rows intact.
	if err := cache.SaveEnvelope(ctx, SyncData{Timestamp: now.Add(time.Hour)}); err != nil {
		t.Fatalf("SaveEnvelope() error = %v", err)
	}

	if got := cache.countEntities(t, string(models.EntityListings)); got != 1 {
		t.Errorf("cached listings = %d, want 1 after metadata-only envelope", got)
	}
}

func TestPendingChanges_RoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	changes, err := cache.PendingChanges(ctx)
	if err != nil {
		t.Fatalf("PendingChanges() error = %v", err)
	}
	if len(changes) != 0 {
		t.Fatalf("PendingChanges() = %v, want none on empty cache", changes)
	}

	first := PendingChange{EntityType: "listing", EntityID: 7, Payload: map[string]any{"price": float64(120)}}
	second := PendingChange{EntityType: "favorite", EntityID: 3, Payload: map[string]any{"exists": true}}

	for _, change := range []PendingChange{first, second} {
		if err = cache.SavePendingChange(ctx, change); err != nil {
			t.Fatalf("SavePendingChange() error = %v", err)
		}
	}

	// A second save for the same entity replaces the payload instead of
	// adding a row.
	first.Payload = map[string]any{"price": float64(130)}
	if err = cache.SavePendingChange(ctx, first); err != nil {
		t.Fatalf("SavePendingChange() error = %v", err)
	}

	changes, err = cache.PendingChanges(ctx)
	if err != nil {
		t.Fatalf("PendingChanges() error = %v", err)
	}
	if len(changes) != 2 {
		t.Fatalf("PendingChanges() returned %d changes, want 2", len(changes))
	}

	byType := map[string]PendingChange{}
	for _, change := range changes {
		byType[change.EntityType] = change
	}
	if got := byType["listing"].Payload["price"]; got != float64(130) {
		t.Errorf("listing payload price = %v, want 130", got)
	}
	if got := byType["favorite"].Payload["exists"]; got != true {
		t.Errorf("favorite payload exists = %v, want true", got)
	}

	if err = cache.ClearPendingChange(ctx, "listing", 7); err != nil {
		t.Fatalf("ClearPendingChange() error = %v", err)
	}

	changes, err = cache.PendingChanges(ctx)
	if err != nil {
		t.Fatalf("PendingChanges() error = %v", err)
	}
	if len(changes) != 1 || changes[0].EntityType != "favorite" {
		t.Errorf("PendingChanges() = %v, want only the favorite change", changes)
	}
}

func TestClearPendingChange_AbsentRowIsNoop(t *testing.T) {
	cache := newTestCache(t)

	if err := cache.ClearPendingChange(context.Background(), "listing", 99); err != nil {
		t.Errorf("ClearPendingChange() error = %v, want nil for absent row", err)
	}
}

func TestSession_EmptyCacheReturnsNoSession(t *testing.T) {
	cache := newTestCache(t)

	_, _, err := cache.Session(context.Background())
	if !errors.Is(err, ErrNoSession) {
		t.Errorf("Session() error = %v, want ErrNoSession", err)
	}
}

func TestSaveSession_RoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.SaveSession(ctx, "token-123", "device-1"); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}

	token, deviceID, err := cache.Session(ctx)
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if token != "token-123" || deviceID != "device-1" {
		t.Errorf("Session() = (%q, %q), want (token-123, device-1)", token, deviceID)
	}

	// A fresh login replaces the stored session.
	if err = cache.SaveSession(ctx, "token-456", "device-1"); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}

	token, _, err = cache.Session(ctx)
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if token != "token-456" {
		t.Errorf("Session() token = %q, want token-456", token)
	}
}
