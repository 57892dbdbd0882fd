package models

import "time"

// Transaction direction, from the account holder's point of view.
const (
	TransactionOutbound = "outbound"
	TransactionInbound  = "inbound"
)

// Transaction represents a single ledger entry owned by a user
// @Description Ledger entry structure
type Transaction struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"userId" db:"user_id"`
	Description string    `json:"description" db:"description" example:"salary"`
	Value       float64   `json:"value" db:"value" example:"100"`
	Type        string    `json:"type" db:"type" example:"outbound"`
	Timestamp   time.Time `json:"timestamp" db:"created_at"`
}
