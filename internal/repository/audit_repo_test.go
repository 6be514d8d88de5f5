package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Benjafo/iconstore/internal/model"
)

func TestAuditRepoInsert(t *testing.T) {
	mock := newPool(t)
	defer mock.Close()
	repo := NewAuditRepository(mock)

	userID := uuid.New()
	event := &model.SecurityEvent{
		ID:        uuid.New(),
		UserID:    &userID,
		EventType: model.EventLogin,
		IPAddress: "203.0.113.7",
		UserAgent: "storefront-web/1.4",
		Metadata:  map[string]any{"email": "user@example.com"},
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec(`INSERT INTO security_audit \(id, user_id, event_type, ip_address, user_agent, metadata, created_at\)`).
		WithArgs(event.ID, event.UserID, event.EventType, event.IPAddress, event.UserAgent,
			[]byte(`{"email":"user@example.com"}`), event.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Insert(context.Background(), event))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepoInsertWithoutUserOrMetadata(t *testing.T) {
	mock := newPool(t)
	defer mock.Close()
	repo := NewAuditRepository(mock)

	event := &model.SecurityEvent{
		ID:        uuid.New(),
		EventType: model.EventRegistration,
		IPAddress: "203.0.113.7",
		UserAgent: "curl/8.5.0",
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec(`INSERT INTO security_audit`).
		WithArgs(event.ID, (*uuid.UUID)(nil), event.EventType, event.IPAddress, event.UserAgent,
			[]byte(nil), event.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Insert(context.Background(), event))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepoDeleteOlderThan(t *testing.T) {
	mock := newPool(t)
	defer mock.Close()
	repo := NewAuditRepository(mock)
	cutoff := time.Now().UTC().Add(-90 * 24 * time.Hour)

	mock.ExpectExec(`DELETE FROM security_audit WHERE created_at < \$1`).
		WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 40))

	deleted, err := repo.DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.EqualValues(t, 40, deleted)
}
