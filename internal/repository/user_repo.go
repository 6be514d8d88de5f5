package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Benjafo/iconstore/internal/model"
)

const userColumns = `id, email, username, password_hash, currency_balance,
	        is_active, created_at, updated_at, last_login`

type UserRepository struct {
	pool PgxPool
}

func NewUserRepository(pool PgxPool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, email, username, password_hash, currency_balance, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Email, u.Username, u.PasswordHash, u.CurrencyBalance, u.IsActive, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		// A concurrent registration can slip past FindConflicts; surface the
		// colliding field so the caller still reports a clean conflict.
		switch constraint := uniqueViolation(err); constraint {
		case "users_email_key":
			return model.ErrDuplicateEmail
		case "users_username_lower_idx":
			return model.ErrDuplicateUsername
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CurrencyBalance,
			&u.IsActive, &u.CreatedAt, &u.UpdatedAt, &u.LastLogin)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = lower($1)`, strings.TrimSpace(email)).
		Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CurrencyBalance,
			&u.IsActive, &u.CreatedAt, &u.UpdatedAt, &u.LastLogin)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// FindConflicts reports whether email or username are already taken, both
// compared case-insensitively.
func (r *UserRepository) FindConflicts(ctx context.Context, email string, username string) (emailTaken bool, usernameTaken bool, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
		   EXISTS(SELECT 1 FROM users WHERE email = lower($1)),
		   EXISTS(SELECT 1 FROM users WHERE lower(username) = lower($2))`,
		strings.TrimSpace(email), strings.TrimSpace(username)).
		Scan(&emailTaken, &usernameTaken)
	if err != nil {
		return false, false, fmt.Errorf("check user conflicts: %w", err)
	}
	return emailTaken, usernameTaken, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET last_login = $2, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}
