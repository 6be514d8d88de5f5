package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Benjafo/iconstore/internal/model"
)

type AuditStore interface {
	Insert(ctx context.Context, e *model.SecurityEvent) error
}

// AuditService appends security events to the audit trail. Writes are best
// effort: a failed insert is logged and swallowed so an audit outage can
// never block registration or login.
type AuditService struct {
	store AuditStore
}

func NewAuditService(store AuditStore) *AuditService {
	return &AuditService{store: store}
}

func (s *AuditService) Record(ctx context.Context, eventType string, userID *uuid.UUID, ip string, userAgent string, metadata map[string]any) {
	if s == nil {
		return
	}

	event := model.SecurityEvent{
		ID:        uuid.New(),
		UserID:    userID,
		EventType: eventType,
		IPAddress: ip,
		UserAgent: userAgent,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, &event); err != nil {
		slog.Error("security audit write failed",
			"event_type", eventType,
			"error", err.Error())
	}
}
