package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken is a ledger row for an issued refresh token. Only the SHA-256
// hex digest of the raw token is stored; revocation flips IsRevoked and never
// deletes the row, so revoked sessions stay auditable until the reaper runs.
type RefreshToken struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
}
