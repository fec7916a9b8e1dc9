package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/motormarket/go-mobile-sync/internal/config"
	"github.com/motormarket/go-mobile-sync/internal/logger"
	"github.com/motormarket/go-mobile-sync/models"
)

const (
	defaultSyncInterval   = 5 * time.Minute
	syncBackoffBase       = time.Second
	syncBackoffMaxRetries = 4
)

// Singular conflict entity names used on the PUT /api/sync wire.
const (
	conflictEntityListing  = "listing"
	conflictEntityFavorite = "favorite"
)

// Runner drives the agent's sync loop: it reads the local watermark, asks
// the gateway for changes, persists the envelope into the cache, and
// repeats on a ticker. Transient gateway failures are retried with
// exponential backoff inside a single cycle; a cycle that still fails is
// logged and retried at the next tick.
type Runner struct {
	gateway GatewayAdapter
	cache   CacheStore
	job     config.AgentJob
	logger  *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRunner constructs a Runner. The job is idle until Start is called.
func NewRunner(gateway GatewayAdapter, cache CacheStore, job config.AgentJob, logger *logger.Logger) *Runner {
	return &Runner{
		gateway: gateway,
		cache:   cache,
		job:     job,
		logger:  logger,
	}
}

// SyncOnce performs one full sync cycle. The gateway call is retried with
// exponential backoff for retryable failures; a permanent failure (4xx)
// aborts the cycle immediately.
func (r *Runner) SyncOnce(ctx context.Context) error {
	log := logger.FromContext(ctx)

	watermark, err := r.cache.Watermark(ctx)
	if err != nil {
		return fmt.Errorf("reading local watermark: %w", err)
	}

	req := models.SyncRequest{
		Entities:   r.job.Entities,
		DeviceID:   r.job.DeviceID,
		AppVersion: r.job.AppVersion,
	}
	if !watermark.IsZero() {
		req.LastSyncTimestamp = &watermark
	}

	backoff := retry.WithMaxRetries(syncBackoffMaxRetries, retry.NewExponential(syncBackoffBase))

	var data SyncData
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		data, err = r.gateway.Sync(ctx, req)
		if err != nil {
			if isRetryable(err) {
				log.Warn().Err(err).Msg("sync call failed, will retry")
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sync call: %w", err)
	}

	if err = r.cache.SaveEnvelope(ctx, data); err != nil {
		return fmt.Errorf("saving envelope to cache: %w", err)
	}

	// Local edits recorded since the previous cycle go up as a conflict
	// batch. A failed submission is not fatal: the rows stay pending and
	// the next cycle retries them.
	if err = r.submitPendingChanges(ctx, data); err != nil {
		log.Warn().Err(err).Msg("submitting pending local changes failed")
	}

	log.Info().
		Time("watermark", data.Timestamp).
		Int("listings", len(data.Listings)).
		Int("favorites", len(data.Favorites)).
		Int("notifications", len(data.Notifications)).
		Int("drafts", len(data.Drafts)).
		Bool("profile", data.Profile != nil).
		Msg("sync cycle completed")

	return nil
}

// submitPendingChanges sends every recorded local edit to the gateway as
// one conflict batch under the configured strategy. The server side of each
// conflict is filled from the freshly fetched delta when the same entity
// changed there, so a merge resolution sees both versions. Accepted changes
// are cleared from the cache.
func (r *Runner) submitPendingChanges(ctx context.Context, data SyncData) error {
	pending, err := r.cache.PendingChanges(ctx)
	if err != nil {
		return fmt.Errorf("reading pending changes: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	conflicts := make([]models.SyncConflict, 0, len(pending))
	for _, change := range pending {
		conflicts = append(conflicts, models.SyncConflict{
			EntityType: change.EntityType,
			EntityID:   change.EntityID,
			ClientData: change.Payload,
			ServerData: serverDataFor(data, change),
		})
	}

	resp, err := r.gateway.ResolveConflicts(ctx, models.ConflictRequest{
		Conflicts:  conflicts,
		Resolution: r.job.ConflictStrategy,
	})
	if err != nil {
		return fmt.Errorf("resolve conflicts call: %w", err)
	}

	for _, resolved := range resp.ResolvedConflicts {
		if err = r.cache.ClearPendingChange(ctx, resolved.EntityType, resolved.EntityID); err != nil {
			return fmt.Errorf("clearing pending change: %w", err)
		}
	}

	logger.FromContext(ctx).Info().
		Int("submitted", len(conflicts)).
		Int("resolved", len(resp.ResolvedConflicts)).
		Str("strategy", r.job.ConflictStrategy).
		Msg("pending local changes submitted")

	return nil
}

// serverDataFor extracts the server's version of a pending change from the
// delta, as a loose field map. Nil when the entity did not change on the
// server side.
func serverDataFor(data SyncData, change PendingChange) map[string]any {
	switch change.EntityType {
	case conflictEntityListing:
		for _, listing := range data.Listings {
			if listing.ID == change.EntityID {
				return structToMap(listing)
			}
		}
		for _, draft := range data.Drafts {
			if draft.ID == change.EntityID {
				return structToMap(draft)
			}
		}
	case conflictEntityFavorite:
		for _, favorite := range data.Favorites {
			if favorite.ListingID == change.EntityID {
				return structToMap(favorite)
			}
		}
	}
	return nil
}

func structToMap(v any) map[string]any {
	body, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err = json.Unmarshal(body, &m); err != nil {
		return nil
	}
	return m
}

// Start stops any previously running job, then launches a background
// goroutine that calls SyncOnce every interval. If the configured interval
// is zero or negative it defaults to 5 minutes. The goroutine exits when
// ctx is cancelled or Stop is called.
func (r *Runner) Start(ctx context.Context) {
	interval := r.job.SyncInterval
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	r.Stop()

	r.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := r.SyncOnce(jobCtx); err != nil {
					r.logger.Warn().Err(err).Msg("sync cycle failed")
				}
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until it has
// fully exited. Safe to call when the job is not running.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	r.wg.Wait()
}
