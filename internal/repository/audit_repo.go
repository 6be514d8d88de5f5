package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Benjafo/iconstore/internal/model"
)

// AuditRepository appends to the security_audit table. The table is
// append-only; the only delete path is the retention sweep.
type AuditRepository struct {
	pool PgxPool
}

func NewAuditRepository(pool PgxPool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Insert(ctx context.Context, e *model.SecurityEvent) error {
	var metadataJSON []byte
	if e.Metadata != nil {
		var err error
		metadataJSON, err = json.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("marshal event metadata: %w", err)
		}
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO security_audit (id, user_id, event_type, ip_address, user_agent, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.UserID, e.EventType, e.IPAddress, e.UserAgent, metadataJSON, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert security event: %w", err)
	}
	return nil
}

func (r *AuditRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM security_audit WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete old security events: %w", err)
	}
	return tag.RowsAffected(), nil
}
