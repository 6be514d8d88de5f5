package service

import (
	"context"
	"log/slog"
	"time"
)

type TokenReaper interface {
	DeleteDefunct(ctx context.Context) (int64, error)
}

type AuditReaper interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// MaintenanceService sweeps defunct refresh tokens and aged-out audit rows.
// Neither table is pruned on request paths, so without the sweep both grow
// without bound.
type MaintenanceService struct {
	tokens         TokenReaper
	audit          AuditReaper
	auditRetention time.Duration
}

func NewMaintenanceService(tokens TokenReaper, audit AuditReaper, auditRetention time.Duration) *MaintenanceService {
	if auditRetention <= 0 {
		auditRetention = 90 * 24 * time.Hour
	}

	return &MaintenanceService{tokens: tokens, audit: audit, auditRetention: auditRetention}
}

// Run sweeps on the given interval until ctx is cancelled.
func (s *MaintenanceService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Sweep once on startup to clear anything left from a previous run.
	s.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

func (s *MaintenanceService) Sweep(ctx context.Context) {
	tokens, err := s.tokens.DeleteDefunct(ctx)
	if err != nil {
		slog.Error("refresh token sweep failed", "error", err.Error())
	}

	cutoff := time.Now().UTC().Add(-s.auditRetention)
	events, err := s.audit.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		slog.Error("audit retention sweep failed", "error", err.Error())
	}

	if tokens > 0 || events > 0 {
		slog.Info("maintenance sweep finished",
			"tokens_deleted", tokens,
			"audit_events_deleted", events)
	}
}
