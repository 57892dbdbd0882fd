package models

import "time"

// SessionToken maps an opaque bearer token to its owning user. There is at
// most one row per user; a new login overwrites the existing token in place.
type SessionToken struct {
	UserID    int64     `json:"userId" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	Timestamp time.Time `json:"timestamp" db:"created_at"`
}
