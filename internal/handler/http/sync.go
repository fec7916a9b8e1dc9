// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Motormarket

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/motormarket/go-mobile-sync/internal/logger"
	"github.com/motormarket/go-mobile-sync/internal/utils"
	"github.com/motormarket/go-mobile-sync/models"
)

// sync handles POST /api/sync: it builds the incremental change envelope
// for the authenticated user and enqueues one audit entry after the
// response has been written. The audit write is asynchronous and
// best-effort; it can never fail the sync call.
func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	req.UserID = userID

	envelope, err := h.services.SyncService.BuildEnvelope(ctx, req)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("building sync envelope failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	response := models.SyncResponse{
		Success:         true,
		Data:            envelope,
		ServerTimestamp: envelope.Timestamp,
	}

	written, err := utils.WriteJSON(w, response, http.StatusOK)
	if err != nil {
		log.Err(err).Msg("writing sync response failed")
		return
	}

	// The entity list is recorded exactly as received, unknown names
	// included, so the audit trail shows what clients actually ask for.
	h.audit.Record(models.SyncLogEntry{
		UserID:            userID,
		DeviceID:          req.DeviceID,
		AppVersion:        req.AppVersion,
		Entities:          strings.Join(req.Entities, ","),
		LastSyncTimestamp: req.LastSyncTimestamp,
		SyncTimestamp:     envelope.Timestamp,
		DataSize:          int64(written),
	})
}

// syncStatus handles GET /api/sync?device_id=: last sync, pending-change
// counts, and the multi-device heuristic.
func (h *Handler) syncStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	deviceID := r.URL.Query().Get("device_id")

	status, err := h.services.SyncService.Status(ctx, userID, deviceID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("reading sync status failed")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	if _, err = utils.WriteJSON(w, status, http.StatusOK); err != nil {
		log.Err(err).Msg("writing sync status response failed")
	}
}

// resolveConflicts handles PUT /api/sync: a batch of client-reported
// conflicts resolved under a single strategy. A batch naming an entity type
// without a registered handler is rejected with 422 before any mutation.
func (h *Handler) resolveConflicts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.ConflictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	strategy := models.ParseResolutionStrategy(req.Resolution)

	resolved, err := h.services.ConflictService.Resolve(ctx, userID, req.Conflicts, strategy)
	if err != nil {
		log.Err(err).
			Int64("user_id", userID).
			Str("strategy", string(strategy)).
			Msg("conflict resolution failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	response := models.ConflictResponse{
		Success:           true,
		ResolvedConflicts: resolved,
		Message:           fmt.Sprintf("resolved %d conflicts", len(resolved)),
	}

	if _, err = utils.WriteJSON(w, response, http.StatusOK); err != nil {
		log.Err(err).Msg("writing conflict response failed")
	}
}
