package models

import "time"

// User represents a registered account holder
// @Description User structure
type User struct {
	ID        int64     `json:"id" example:"1"`                   // User ID
	Name      string    `json:"name" example:"Al Pacino"`         // Display name
	Email     string    `json:"email" example:"user@example.com"` // Unique email address
	Password  string    `json:"-"`                                // bcrypt hash, never serialized
	CreatedAt time.Time `json:"createdAt"`
}
