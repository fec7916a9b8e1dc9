// Package utils provides general-purpose helpers shared by the sync
// gateway's transport, service, and agent layers: type-safe context keys,
// password hashing, JSON response writing, JWT generation and validation,
// and HTTP client construction.
package utils

import (
	"context"
)

// contextKey is a private type for context keys. Using a dedicated type
// instead of a plain string prevents collisions with other packages that
// store string-keyed values in the context.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key under which the authentication middleware stores
// the verified owner id. Every entity read and write downstream is scoped by
// this value; it is the sole access-control mechanism of the sync protocol.
var UserIDCtxKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user identifier from the
// context.
//
//	userID, ok := utils.GetUserIDFromContext(ctx)
//	if !ok {
//	    // request never passed the auth middleware
//	}
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}
