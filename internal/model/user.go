package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID              uuid.UUID  `json:"id"`
	Email           string     `json:"email"`
	Username        string     `json:"username"`
	PasswordHash    string     `json:"-"`
	CurrencyBalance int64      `json:"currency_balance"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	LastLogin       *time.Time `json:"last_login,omitempty"`
}

// PublicUser is the client-safe projection of a User. CreatedAt is only
// populated on registration responses.
type PublicUser struct {
	ID              uuid.UUID  `json:"id"`
	Email           string     `json:"email"`
	Username        string     `json:"username"`
	CurrencyBalance int64      `json:"currency_balance"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// Public returns the projection of u exposed to clients.
func (u *User) Public(withCreatedAt bool) PublicUser {
	p := PublicUser{
		ID:              u.ID,
		Email:           u.Email,
		Username:        u.Username,
		CurrencyBalance: u.CurrencyBalance,
	}
	if withCreatedAt {
		createdAt := u.CreatedAt
		p.CreatedAt = &createdAt
	}
	return p
}
