package database

import (
	"time"

	"github.com/google/uuid"
)

// CheckEntry to store each completed membership check
type CheckEntry struct {
	Id              uuid.UUID `db:"id"`
	SessionId       string    `db:"session_id"` // empty for one-shot checks
	RequestedAt     time.Time `db:"requested_at"`
	InsertedAt      time.Time `db:"inserted_at"`
	CheckDurationMs int64     `db:"check_duration_ms"`
	Address         string    `db:"address"`
	Status          string    `db:"status"`
	IsWhitelisted   bool      `db:"is_whitelisted"`
	Error           string    `db:"error"`
	IpHash          string    `db:"ip_hash"`
	Origin          string    `db:"origin"`
}
