package models

import "time"

// SyncResponse is the top-level body of a successful POST sync call.
// ServerTimestamp duplicates the envelope timestamp at the top level so
// thin clients can store their next watermark without unpacking the data.
type SyncResponse struct {
	Success         bool         `json:"success"`
	Data            SyncEnvelope `json:"data"`
	ServerTimestamp time.Time    `json:"server_timestamp"`
}

// ConflictRequest is the body of a conflict-resolution call. The batch may
// mix entity types but shares a single resolution strategy.
type ConflictRequest struct {
	Conflicts  []SyncConflict `json:"conflicts"`
	Resolution string         `json:"resolution"`
}

// ConflictResponse is the body of a successful conflict-resolution call.
type ConflictResponse struct {
	Success           bool               `json:"success"`
	ResolvedConflicts []ResolvedConflict `json:"resolved_conflicts"`
	Message           string             `json:"message"`
}
