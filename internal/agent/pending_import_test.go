package agent

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/motormarket/go-mobile-sync/internal/logger"
)

func writeSpool(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pending.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write spool file: %v", err)
	}
	return path
}

func TestImportPendingChanges_QueuesAndConsumesSpool(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	path := writeSpool(t, `[
		{"entity_type": "listing", "entity_id": 7, "payload": {"price": 120}},
		{"entity_type": "favorite", "entity_id": 3, "payload": {"exists": false}}
	]`)

	imported, err := ImportPendingChanges(ctx, cache, path, logger.Nop())
	if err != nil {
		t.Fatalf("ImportPendingChanges() error = %v", err)
	}
	if imported != 2 {
		t.Errorf("imported = %d, want 2", imported)
	}

	changes, err := cache.PendingChanges(ctx)
	if err != nil {
		t.Fatalf("PendingChanges() error = %v", err)
	}
	if len(changes) != 2 {
		t.Fatalf("PendingChanges() returned %d changes, want 2", len(changes))
	}

	if _, err = os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("spool file still exists after import, stat err = %v", err)
	}
}

func TestImportPendingChanges_MissingFileIsNoop(t *testing.T) {
	cache := newTestCache(t)

	imported, err := ImportPendingChanges(context.Background(), cache, filepath.Join(t.TempDir(), "absent.json"), logger.Nop())
	if err != nil {
		t.Fatalf("ImportPendingChanges() error = %v", err)
	}
	if imported != 0 {
		t.Errorf("imported = %d, want 0 for missing spool", imported)
	}
}

func TestImportPendingChanges_SkipsUnknownEntityTypes(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	path := writeSpool(t, `[
		{"entity_type": "review", "entity_id": 1, "payload": {"stars": 5}},
		{"entity_type": "listing", "entity_id": 7, "payload": {"price": 120}}
	]`)

	imported, err := ImportPendingChanges(ctx, cache, path, logger.Nop())
	if err != nil {
		t.Fatalf("ImportPendingChanges() error = %v", err)
	}
	if imported != 1 {
		t.Errorf("imported = %d, want 1 (unknown type skipped)", imported)
	}

	changes, err := cache.PendingChanges(ctx)
	if err != nil {
		t.Fatalf("PendingChanges() error = %v", err)
	}
	if len(changes) != 1 || changes[0].EntityType != "listing" {
		t.Errorf("PendingChanges() = %v, want only the listing change", changes)
	}
}

func TestImportPendingChanges_MalformedSpoolFails(t *testing.T) {
	cache := newTestCache(t)

	path := writeSpool(t, `{"not": "an array"`)

	_, err := ImportPendingChanges(context.Background(), cache, path, logger.Nop())
	if err == nil {
		t.Fatal("ImportPendingChanges() error = nil, want decode error")
	}

	// The broken spool is left in place for inspection.
	if _, statErr := os.Stat(path); statErr != nil {
		t.Errorf("spool file missing after failed import: %v", statErr)
	}
}
