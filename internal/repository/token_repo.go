package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Benjafo/iconstore/internal/model"
)

// TokenRepository is the refresh token ledger. Rows are keyed by SHA-256
// digest of the raw token; revocation is an UPDATE and a revoked row is
// never flipped back, so every method here is safe to retry.
type TokenRepository struct {
	pool PgxPool
}

func NewTokenRepository(pool PgxPool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

func (r *TokenRepository) Store(ctx context.Context, t *model.RefreshToken) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, is_revoked, created_at, ip_address, user_agent)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.UserID, t.TokenHash, t.ExpiresAt, t.IsRevoked, t.CreatedAt, t.IPAddress, t.UserAgent)
	if err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// FindValid returns the owner of a live ledger entry: not revoked and not
// expired. Everything else reports model.ErrTokenNotFound.
func (r *TokenRepository) FindValid(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := r.pool.QueryRow(ctx,
		`SELECT user_id FROM refresh_tokens
		 WHERE token_hash = $1 AND is_revoked = FALSE AND expires_at > now()`, tokenHash).
		Scan(&userID)

	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, model.ErrTokenNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("find refresh token: %w", err)
	}
	return userID, nil
}

// Revoke marks the entry revoked. Unknown and already-revoked hashes are a
// no-op, never an error.
func (r *TokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE refresh_tokens SET is_revoked = TRUE WHERE token_hash = $1`, tokenHash)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (r *TokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE refresh_tokens SET is_revoked = TRUE WHERE user_id = $1 AND is_revoked = FALSE`, userID)
	if err != nil {
		return 0, fmt.Errorf("revoke all refresh tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteDefunct removes expired and revoked rows. Only the maintenance
// reaper calls this; request paths never delete ledger entries.
func (r *TokenRepository) DeleteDefunct(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at <= now() OR is_revoked = TRUE`)
	if err != nil {
		return 0, fmt.Errorf("delete defunct tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
