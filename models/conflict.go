package models

// ResolutionStrategy selects how a batch of sync conflicts is resolved.
type ResolutionStrategy string

const (
	// ResolutionServerWins keeps the server value and discards the client
	// value. The conflict is still echoed back with the server data so the
	// device can overwrite its local copy.
	ResolutionServerWins ResolutionStrategy = "server_wins"

	// ResolutionClientWins overwrites the server record with the client
	// value and refreshes its updated_at.
	ResolutionClientWins ResolutionStrategy = "client_wins"

	// ResolutionMerge shallow-merges server and client fields, client keys
	// taking precedence, and refreshes updated_at. The merge is key-by-key
	// with no field-level timestamps; server fields absent from the client
	// payload survive, colliding keys are lost to the client side.
	ResolutionMerge ResolutionStrategy = "merge"

	// ResolutionManual applies the caller-supplied resolved_data verbatim.
	// No validation against either side is performed in this branch; the
	// server trusts the client's resolution completely.
	ResolutionManual ResolutionStrategy = "manual"
)

// ParseResolutionStrategy maps a wire string onto a strategy. Anything that
// is not one of the three named strategies falls through to manual, which is
// also the behaviour for an explicit "manual" payload.
func ParseResolutionStrategy(s string) ResolutionStrategy {
	switch ResolutionStrategy(s) {
	case ResolutionServerWins, ResolutionClientWins, ResolutionMerge:
		return ResolutionStrategy(s)
	}
	return ResolutionManual
}

// SyncConflict is a client-submitted divergence report for one record: the
// value the device holds locally and the value it last saw from the server.
// Conflicts are transient — they are never persisted as their own entity,
// only converted into ordinary entity mutations during resolution.
type SyncConflict struct {
	EntityType string         `json:"entity_type"`
	EntityID   int64          `json:"entity_id"`
	ClientData map[string]any `json:"client_data"`
	ServerData map[string]any `json:"server_data"`

	// ResolvedData carries the caller's own resolution and is consulted
	// only under the manual strategy.
	ResolvedData map[string]any `json:"resolved_data,omitempty"`
}

// ResolvedConflict is the terminal state of one conflict item. Every
// submitted conflict of a supported entity type ends up Resolved — there is
// no rejected state; server_wins resolution is a no-op copy of server data.
type ResolvedConflict struct {
	EntityType   string             `json:"entity_type"`
	EntityID     int64              `json:"entity_id"`
	Resolution   ResolutionStrategy `json:"resolution"`
	ResolvedData map[string]any     `json:"resolved_data"`
}
