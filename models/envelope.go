// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Motormarket

package models

import (
	"encoding/json"
	"time"
)

// EntityType names one of the synchronizable entity collections.
type EntityType string

// The closed set of entity types the sync protocol recognizes. Requests may
// name types outside this set; they are silently skipped so that newer
// clients can talk to an older server without breaking the whole sync call.
const (
	EntityListings      EntityType = "listings"
	EntityFavorites     EntityType = "favorites"
	EntityNotifications EntityType = "notifications"
	EntityProfile       EntityType = "profile"
	EntityDrafts        EntityType = "drafts"
)

// KnownEntityTypes reports whether t is one of the recognized entity types.
func KnownEntityType(t EntityType) bool {
	switch t {
	case EntityListings, EntityFavorites, EntityNotifications, EntityProfile, EntityDrafts:
		return true
	}
	return false
}

// SyncRequest is the body of a sync call. LastSyncTimestamp is the client's
// watermark: the server timestamp returned by its previous successful sync.
// A nil watermark means "full sync" — every owned record is returned.
//
// UserID is never taken from the request body; the transport layer fills it
// from the verified bearer token before the request reaches the service.
type SyncRequest struct {
	UserID            int64      `json:"-"`
	LastSyncTimestamp *time.Time `json:"last_sync_timestamp,omitempty"`
	Entities          []string   `json:"entities"`
	DeviceID          string     `json:"device_id,omitempty"`
	AppVersion        string     `json:"app_version,omitempty"`
}

// Watermark returns the effective watermark: the client-supplied timestamp,
// or the zero time (epoch — full resync) when the client sent none.
func (r SyncRequest) Watermark() time.Time {
	if r.LastSyncTimestamp == nil {
		return time.Time{}
	}
	return *r.LastSyncTimestamp
}

// RequestedTypes returns the recognized entity types from the request in
// their original order, with duplicates and unknown names dropped.
func (r SyncRequest) RequestedTypes() []EntityType {
	seen := make(map[EntityType]struct{}, len(r.Entities))
	types := make([]EntityType, 0, len(r.Entities))

	for _, name := range r.Entities {
		t := EntityType(name)
		if !KnownEntityType(t) {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		types = append(types, t)
	}

	return types
}

// SyncEnvelope is the typed, internal representation of one sync response.
// Entity collections are populated only for the types the client requested;
// the Requested list records which recognized types those were so that the
// wire form can include an (empty) key for a requested type with no changes.
//
// The wire JSON is produced by MarshalJSON: a flat object with metadata
// fields plus one key per requested entity type. Internal code works with
// the typed fields only.
type SyncEnvelope struct {
	Timestamp  time.Time    `json:"-"`
	UserID     int64        `json:"-"`
	DeviceID   string       `json:"-"`
	AppVersion string       `json:"-"`
	Requested  []EntityType `json:"-"`

	Listings      []Listing      `json:"-"`
	Favorites     []Favorite     `json:"-"`
	Notifications []Notification `json:"-"`
	Profile       *Profile       `json:"-"`
	Drafts        []Listing      `json:"-"`
}

// Wire converts the envelope to its loosely-keyed boundary representation.
//
// Array-valued entity types always appear for every requested type, as an
// empty array when nothing changed. The profile key appears only when the
// profile actually changed since the watermark.
func (e SyncEnvelope) Wire() map[string]any {
	wire := map[string]any{
		"timestamp": e.Timestamp.UTC().Format(time.RFC3339Nano),
		"user_id":   e.UserID,
	}

	if e.DeviceID != "" {
		wire["device_id"] = e.DeviceID
	}
	if e.AppVersion != "" {
		wire["app_version"] = e.AppVersion
	}

	for _, t := range e.Requested {
		switch t {
		case EntityListings:
			wire["listings"] = nonNilListings(e.Listings)
		case EntityFavorites:
			if e.Favorites == nil {
				wire["favorites"] = []Favorite{}
			} else {
				wire["favorites"] = e.Favorites
			}
		case EntityNotifications:
			if e.Notifications == nil {
				wire["notifications"] = []Notification{}
			} else {
				wire["notifications"] = e.Notifications
			}
		case EntityProfile:
			if e.Profile != nil {
				wire["profile"] = e.Profile
			}
		case EntityDrafts:
			wire["drafts"] = nonNilListings(e.Drafts)
		}
	}

	return wire
}

// MarshalJSON implements json.Marshaler by serializing the wire form.
// Map-based marshaling gives deterministic (sorted) key order, which keeps
// repeated syncs with identical inputs byte-for-byte identical.
func (e SyncEnvelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Wire())
}

func nonNilListings(l []Listing) []Listing {
	if l == nil {
		return []Listing{}
	}
	return l
}
