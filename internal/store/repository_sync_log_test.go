package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/motormarket/go-mobile-sync/internal/logger"
	"github.com/motormarket/go-mobile-sync/models"
)

func newTestSyncLogRepo(t *testing.T) (*syncLogRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &syncLogRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func syncLogColumns() []string {
	return []string{"id", "user_id", "device_id", "app_version", "entities", "last_sync_timestamp", "sync_timestamp", "data_size"}
}

func TestAppend_Success(t *testing.T) {
	repo, mock, db := newTestSyncLogRepo(t)
	defer db.Close()

	watermark := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entry := models.SyncLogEntry{
		UserID:            42,
		DeviceID:          "device-1",
		AppVersion:        "2.4.0",
		Entities:          "listings,favorites",
		LastSyncTimestamp: &watermark,
		SyncTimestamp:     watermark.Add(time.Minute),
		DataSize:          1024,
	}

	mock.ExpectQuery("INSERT INTO sync_logs").
		WithArgs(entry.UserID, entry.DeviceID, entry.AppVersion, entry.Entities,
			sql.NullTime{Time: watermark, Valid: true}, entry.SyncTimestamp, entry.DataSize).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(17))

	if err := repo.Append(context.Background(), entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAppend_NilWatermarkStoresNull(t *testing.T) {
	repo, mock, db := newTestSyncLogRepo(t)
	defer db.Close()

	entry := models.SyncLogEntry{
		UserID:        42,
		DeviceID:      "device-1",
		SyncTimestamp: time.Now(),
	}

	mock.ExpectQuery("INSERT INTO sync_logs").
		WithArgs(entry.UserID, entry.DeviceID, "", "", sql.NullTime{}, entry.SyncTimestamp, int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(18))

	if err := repo.Append(context.Background(), entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAppend_DBError(t *testing.T) {
	repo, mock, db := newTestSyncLogRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO sync_logs").
		WillReturnError(errors.New("disk full"))

	err := repo.Append(context.Background(), models.SyncLogEntry{UserID: 42})
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}

func TestLastSync_ForDevice(t *testing.T) {
	repo, mock, db := newTestSyncLogRepo(t)
	defer db.Close()

	syncedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(syncLogColumns()).
		AddRow(17, 42, "device-1", "2.4.0", "listings,profile", nil, syncedAt, 2048)

	mock.ExpectQuery("SELECT (.+) FROM sync_logs").
		WithArgs(int64(42), "device-1").
		WillReturnRows(rows)

	entry, err := repo.LastSync(context.Background(), 42, "device-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry == nil {
		t.Fatal("expected entry, got nil")
	}
	if entry.DeviceID != "device-1" || entry.DataSize != 2048 {
		t.Errorf("unexpected entry: %+v", entry)
	}
	// A full sync stored NULL: the watermark stays nil on the way out.
	if entry.LastSyncTimestamp != nil {
		t.Errorf("expected nil watermark, got %v", entry.LastSyncTimestamp)
	}
}

func TestLastSync_ForUserQueriesWithoutDevice(t *testing.T) {
	repo, mock, db := newTestSyncLogRepo(t)
	defer db.Close()

	syncedAt := time.Now()
	rows := sqlmock.NewRows(syncLogColumns()).
		AddRow(17, 42, "device-2", "2.4.0", "listings", syncedAt.Add(-time.Hour), syncedAt, 512)

	mock.ExpectQuery("SELECT (.+) FROM sync_logs").
		WithArgs(int64(42)).
		WillReturnRows(rows)

	entry, err := repo.LastSync(context.Background(), 42, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry == nil || entry.LastSyncTimestamp == nil {
		t.Fatalf("expected entry with watermark, got %+v", entry)
	}
}

func TestLastSync_NeverSyncedReturnsNil(t *testing.T) {
	repo, mock, db := newTestSyncLogRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM sync_logs").
		WithArgs(int64(42), "device-1").
		WillReturnError(sql.ErrNoRows)

	entry, err := repo.LastSync(context.Background(), 42, "device-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry != nil {
		t.Fatalf("expected nil entry, got %+v", entry)
	}
}

func TestActiveDevices(t *testing.T) {
	repo, mock, db := newTestSyncLogRepo(t)
	defer db.Close()

	since := time.Now().Add(-24 * time.Hour)
	rows := sqlmock.NewRows([]string{"device_id"}).
		AddRow("device-1").
		AddRow("device-2")

	mock.ExpectQuery("SELECT DISTINCT device_id").
		WithArgs(int64(42), since).
		WillReturnRows(rows)

	devices, err := repo.ActiveDevices(context.Background(), 42, since)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(devices))
	}
}

func TestActiveDevices_QueryError(t *testing.T) {
	repo, mock, db := newTestSyncLogRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT DISTINCT device_id").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.ActiveDevices(context.Background(), 42, time.Now())
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
}
