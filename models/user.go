package models

import "time"

// User is a marketplace account as stored in the "users" table.
//
// AuthHash holds the HMAC-SHA256 hash of the user's password; the plain
// password never reaches the storage layer. On registration and login the
// transport decodes the client-supplied hash into this field.
type User struct {
	UserID    int64     `json:"user_id"`
	Login     string    `json:"login"`
	AuthHash  string    `json:"auth_hash,omitempty"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
