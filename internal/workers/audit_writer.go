// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Motormarket

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/motormarket/go-mobile-sync/internal/config"
	"github.com/motormarket/go-mobile-sync/internal/logger"
	"github.com/motormarket/go-mobile-sync/internal/store"
	"github.com/motormarket/go-mobile-sync/models"
)

const (
	defaultQueueSize       = 256
	defaultShutdownTimeout = 5 * time.Second
)

// AuditWriter is the asynchronous sync-log recorder. Sync handlers enqueue
// entries through Record; a single background goroutine drains the channel
// into the SyncLogRepository.
//
// Audit persistence is strictly best-effort: a full queue drops the entry,
// and a failed insert is logged and swallowed. Neither ever affects the
// sync call that produced the entry.
type AuditWriter struct {
	syncLogs   store.SyncLogRepository
	classifier store.ErrorClassificator
	logger     *logger.Logger

	queue           chan models.SyncLogEntry
	done            chan struct{}
	shutdownTimeout time.Duration

	mu     sync.RWMutex
	closed bool
}

// NewAuditWriter constructs an AuditWriter with the queue capacity and
// shutdown drain timeout from cfg, falling back to defaults on zero values.
func NewAuditWriter(syncLogs store.SyncLogRepository, classifier store.ErrorClassificator, cfg config.Audit, logger *logger.Logger) *AuditWriter {
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &AuditWriter{
		syncLogs:        syncLogs,
		classifier:      classifier,
		logger:          logger,
		queue:           make(chan models.SyncLogEntry, queueSize),
		done:            make(chan struct{}),
		shutdownTimeout: shutdownTimeout,
	}
}

// Record implements AuditRecorder. It never blocks: when the queue is full,
// or the writer has already shut down, the entry is dropped with a warning.
func (w *AuditWriter) Record(entry models.SyncLogEntry) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if w.closed {
		w.logger.Warn().
			Int64("user_id", entry.UserID).
			Str("device_id", entry.DeviceID).
			Msg("audit writer stopped, dropping sync log entry")
		return
	}

	select {
	case w.queue <- entry:
	default:
		w.logger.Warn().
			Int64("user_id", entry.UserID).
			Str("device_id", entry.DeviceID).
			Msg("audit queue full, dropping sync log entry")
	}
}

// Run implements Worker: it starts the drain goroutine and returns.
func (w *AuditWriter) Run() {
	go w.drain()
}

func (w *AuditWriter) drain() {
	defer close(w.done)

	for entry := range w.queue {
		w.write(entry)
	}
}

func (w *AuditWriter) write(entry models.SyncLogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
	defer cancel()

	if err := w.syncLogs.Append(ctx, entry); err != nil {
		// Best effort: the sync already succeeded, only the audit trail
		// loses this row. Classification tells operators whether the loss
		// came from transient contention or a permanent failure.
		w.logger.Warn().
			Err(err).
			Int64("user_id", entry.UserID).
			Str("device_id", entry.DeviceID).
			Bool("retryable", w.classifier.Classify(err) == store.Retryable).
			Msg("failed to persist sync log entry")
	}
}

// Shutdown stops accepting entries and waits for the queue to drain, up to
// the configured shutdown timeout. It is safe to call concurrently with
// Record: late entries are dropped instead of racing the channel close.
func (w *AuditWriter) Shutdown() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()

	close(w.queue)

	select {
	case <-w.done:
	case <-time.After(w.shutdownTimeout):
		w.logger.Warn().Msg("audit writer shutdown timed out before queue drained")
	}
}
