package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/motormarket/go-mobile-sync/internal/logger"
	"github.com/motormarket/go-mobile-sync/internal/mock"
	"github.com/motormarket/go-mobile-sync/internal/service"
	"github.com/motormarket/go-mobile-sync/internal/utils"
	"github.com/motormarket/go-mobile-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type syncTestDeps struct {
	handler   *Handler
	syncs     *mock.MockSyncService
	conflicts *mock.MockConflictService
	audit     *mock.MockAuditRecorder
}

func newTestSyncHandler(t *testing.T) syncTestDeps {
	ctrl := gomock.NewController(t)
	syncs := mock.NewMockSyncService(ctrl)
	conflicts := mock.NewMockConflictService(ctrl)
	audit := mock.NewMockAuditRecorder(ctrl)

	h := &Handler{
		services: &service.Services{
			SyncService:     syncs,
			ConflictService: conflicts,
		},
		audit:  audit,
		logger: logger.Nop(),
	}
	return syncTestDeps{handler: h, syncs: syncs, conflicts: conflicts, audit: audit}
}

func withUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, utils.UserIDCtxKey, userID)
}

func TestSync_Success(t *testing.T) {
	deps := newTestSyncHandler(t)

	serverTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	watermark := serverTime.Add(-time.Hour)

	body, err := json.Marshal(map[string]any{
		"last_sync_timestamp": watermark,
		"entities":            []string{"listings", "reviews"},
		"device_id":           "device-1",
		"app_version":         "2.4.0",
	})
	require.NoError(t, err)

	deps.syncs.EXPECT().
		BuildEnvelope(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.SyncRequest) (models.SyncEnvelope, error) {
			// The user id comes from the token, never from the body.
			assert.Equal(t, int64(42), req.UserID)
			assert.Equal(t, []string{"listings", "reviews"}, req.Entities)
			require.NotNil(t, req.LastSyncTimestamp)
			assert.True(t, req.LastSyncTimestamp.Equal(watermark))

			return models.SyncEnvelope{
				Timestamp: serverTime,
				UserID:    42,
				DeviceID:  "device-1",
				Requested: []models.EntityType{models.EntityListings},
				Listings:  []models.Listing{{ID: 1, UserID: 42, Title: "BMW 320i"}},
			}, nil
		})

	var recorded models.SyncLogEntry
	deps.audit.EXPECT().
		Record(gomock.Any()).
		Do(func(entry models.SyncLogEntry) { recorded = entry })

	req := httptest.NewRequest(http.MethodPost, "/api/sync", bytes.NewReader(body))
	req = req.WithContext(withUserID(req.Context(), 42))
	rec := httptest.NewRecorder()

	deps.handler.sync(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success         bool           `json:"success"`
		Data            map[string]any `json:"data"`
		ServerTimestamp time.Time      `json:"server_timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.ServerTimestamp.Equal(serverTime))
	assert.Contains(t, resp.Data, "listings")

	// The audit entry mirrors the request verbatim, unknown entity names
	// included, and carries the serialized response size.
	assert.Equal(t, int64(42), recorded.UserID)
	assert.Equal(t, "device-1", recorded.DeviceID)
	assert.Equal(t, "listings,reviews", recorded.Entities)
	assert.Equal(t, serverTime, recorded.SyncTimestamp)
	assert.Equal(t, int64(rec.Body.Len()), recorded.DataSize)
}

func TestSync_NoUserIDInContext(t *testing.T) {
	deps := newTestSyncHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sync", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()

	deps.handler.sync(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSync_InvalidJSON(t *testing.T) {
	deps := newTestSyncHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sync", bytes.NewReader([]byte(`{`)))
	req = req.WithContext(withUserID(req.Context(), 42))
	rec := httptest.NewRecorder()

	deps.handler.sync(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSync_ServiceFailureSkipsAudit(t *testing.T) {
	deps := newTestSyncHandler(t)

	deps.syncs.EXPECT().
		BuildEnvelope(gomock.Any(), gomock.Any()).
		Return(models.SyncEnvelope{}, errors.New("connection reset"))
	// A failed sync never reaches the audit recorder.

	req := httptest.NewRequest(http.MethodPost, "/api/sync", bytes.NewReader([]byte(`{"entities":["listings"]}`)))
	req = req.WithContext(withUserID(req.Context(), 42))
	rec := httptest.NewRecorder()

	deps.handler.sync(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSyncStatus_PassesDeviceID(t *testing.T) {
	deps := newTestSyncHandler(t)

	serverTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	deps.syncs.EXPECT().
		Status(gomock.Any(), int64(42), "device-1").
		Return(models.SyncStatus{
			PendingChanges:  models.PendingChanges{Listings: 3},
			ActiveDevices:   1,
			ServerTimestamp: serverTime,
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/sync?device_id=device-1", nil)
	req = req.WithContext(withUserID(req.Context(), 42))
	rec := httptest.NewRecorder()

	deps.handler.syncStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status models.SyncStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, int64(3), status.PendingChanges.Listings)
	assert.Nil(t, status.LastSync)
	assert.False(t, status.HasMultipleDevices)
}

func TestResolveConflicts_Success(t *testing.T) {
	deps := newTestSyncHandler(t)

	body := []byte(`{
		"conflicts": [
			{"entity_type": "listing", "entity_id": 7, "client_data": {"price": 120}, "server_data": {"price": 100}}
		],
		"resolution": "client_wins"
	}`)

	deps.conflicts.EXPECT().
		Resolve(gomock.Any(), int64(42), gomock.Any(), models.ResolutionClientWins).
		Return([]models.ResolvedConflict{
			{
				EntityType:   "listing",
				EntityID:     7,
				Resolution:   models.ResolutionClientWins,
				ResolvedData: map[string]any{"price": float64(120)},
			},
		}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/sync", bytes.NewReader(body))
	req = req.WithContext(withUserID(req.Context(), 42))
	rec := httptest.NewRecorder()

	deps.handler.resolveConflicts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "resolved 1 conflicts", resp.Message)
	require.Len(t, resp.ResolvedConflicts, 1)
	assert.Equal(t, float64(120), resp.ResolvedConflicts[0].ResolvedData["price"])
}

func TestResolveConflicts_UnknownStrategyFallsBackToManual(t *testing.T) {
	deps := newTestSyncHandler(t)

	deps.conflicts.EXPECT().
		Resolve(gomock.Any(), int64(42), gomock.Any(), models.ResolutionManual).
		Return([]models.ResolvedConflict{}, nil)

	body := []byte(`{"conflicts": [{"entity_type": "listing", "entity_id": 7}], "resolution": "newest_wins"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/sync", bytes.NewReader(body))
	req = req.WithContext(withUserID(req.Context(), 42))
	rec := httptest.NewRecorder()

	deps.handler.resolveConflicts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResolveConflicts_UnsupportedEntityType(t *testing.T) {
	deps := newTestSyncHandler(t)

	deps.conflicts.EXPECT().
		Resolve(gomock.Any(), int64(42), gomock.Any(), gomock.Any()).
		Return(nil, service.ErrUnsupportedConflictEntityType)

	body := []byte(`{"conflicts": [{"entity_type": "review", "entity_id": 9}], "resolution": "server_wins"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/sync", bytes.NewReader(body))
	req = req.WithContext(withUserID(req.Context(), 42))
	rec := httptest.NewRecorder()

	deps.handler.resolveConflicts(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported")
}

func TestResolveConflicts_EmptyBatch(t *testing.T) {
	deps := newTestSyncHandler(t)

	deps.conflicts.EXPECT().
		Resolve(gomock.Any(), int64(42), gomock.Any(), gomock.Any()).
		Return(nil, service.ErrNoConflictsProvided)

	body := []byte(`{"conflicts": [], "resolution": "server_wins"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/sync", bytes.NewReader(body))
	req = req.WithContext(withUserID(req.Context(), 42))
	rec := httptest.NewRecorder()

	deps.handler.resolveConflicts(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
