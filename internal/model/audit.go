package model

import (
	"time"

	"github.com/google/uuid"
)

// Security audit event types.
const (
	EventRegistration = "registration"
	EventLogin        = "login"
)

// SecurityEvent is an append-only audit record. UserID is nil for events
// that cannot be tied to an account.
type SecurityEvent struct {
	ID        uuid.UUID      `json:"id"`
	UserID    *uuid.UUID     `json:"user_id,omitempty"`
	EventType string         `json:"event_type"`
	IPAddress string         `json:"ip_address"`
	UserAgent string         `json:"user_agent"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
