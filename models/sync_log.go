package models

import "time"

// SyncLogEntry is an immutable audit row appended after every successful
// sync call. Entries are never mutated; retention is owned by external
// storage policy, not by this service.
type SyncLogEntry struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	DeviceID   string `json:"device_id"`
	AppVersion string `json:"app_version"`

	// Entities is the comma-joined list of entity types the client
	// requested, exactly as received (unknown names included).
	Entities string `json:"entities"`

	// LastSyncTimestamp is the watermark the client supplied, nil on a
	// full sync.
	LastSyncTimestamp *time.Time `json:"last_sync_timestamp,omitempty"`

	// SyncTimestamp is the server wall-clock time of this sync — the new
	// watermark handed back to the client.
	SyncTimestamp time.Time `json:"sync_timestamp"`

	// DataSize is the serialized envelope size in bytes.
	DataSize int64 `json:"data_size"`
}

// LastSyncInfo describes the most recent sync recorded for one device.
type LastSyncInfo struct {
	Timestamp time.Time `json:"timestamp"`
	DeviceID  string    `json:"device_id"`
	Entities  []string  `json:"entities"`
	DataSize  int64     `json:"data_size"`
}

// PendingChanges counts rows per entity type whose updated_at is newer than
// the device's last recorded sync.
type PendingChanges struct {
	Listings      int64 `json:"listings"`
	Favorites     int64 `json:"favorites"`
	Notifications int64 `json:"notifications"`
}

// SyncStatus is the aggregate returned by the sync status read path.
// HasMultipleDevices is a heuristic: more than one distinct device id seen
// in the sync log within the trailing 24 hours.
type SyncStatus struct {
	LastSync           *LastSyncInfo  `json:"last_sync"`
	PendingChanges     PendingChanges `json:"pending_changes"`
	HasMultipleDevices bool           `json:"has_multiple_devices"`
	ActiveDevices      int            `json:"active_devices"`
	ServerTimestamp    time.Time      `json:"server_timestamp"`
}
