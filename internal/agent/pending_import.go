package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/motormarket/go-mobile-sync/internal/logger"
)

// pendingChangeFile is the on-disk shape of one spooled local edit.
type pendingChangeFile struct {
	EntityType string         `json:"entity_type"`
	EntityID   int64          `json:"entity_id"`
	Payload    map[string]any `json:"payload"`
}

// ImportPendingChanges drains a spool file of local edits into the cache's
// pending queue and removes the file once every entry is recorded. The spool
// is how other processes on the device (the app UI, scripts) hand edits to
// the headless agent: they write a JSON array of changes and the agent picks
// it up on its next start. A missing file means nothing to import.
func ImportPendingChanges(ctx context.Context, cache CacheStore, path string, log *logger.Logger) (int, error) {
	body, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading pending changes spool: %w", err)
	}

	var entries []pendingChangeFile
	if err = json.Unmarshal(body, &entries); err != nil {
		return 0, fmt.Errorf("decoding pending changes spool: %w", err)
	}

	imported := 0
	for _, entry := range entries {
		switch entry.EntityType {
		case conflictEntityListing, conflictEntityFavorite:
		default:
			log.Warn().
				Str("entity_type", entry.EntityType).
				Int64("entity_id", entry.EntityID).
				Msg("skipping spooled change with unknown entity type")
			continue
		}

		change := PendingChange{
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID,
			Payload:    entry.Payload,
		}
		if err = cache.SavePendingChange(ctx, change); err != nil {
			return imported, fmt.Errorf("recording spooled %s/%d: %w", entry.EntityType, entry.EntityID, err)
		}
		imported++
	}

	// The cache is now the durable queue; leaving the spool behind would
	// resubmit stale payloads on the next start.
	if err = os.Remove(path); err != nil {
		return imported, fmt.Errorf("removing consumed spool: %w", err)
	}

	return imported, nil
}
