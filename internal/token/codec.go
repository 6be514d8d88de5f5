// Package token signs and verifies the HS256 JWTs used for API sessions.
// Access and refresh tokens are signed with distinct secrets and carry a
// "typ" claim, so neither can stand in for the other.
package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Benjafo/iconstore/internal/model"
)

type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewCodec(accessSecret string, refreshSecret string, accessTTL time.Duration, refreshTTL time.Duration) *Codec {
	return &Codec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (c *Codec) AccessTTL() time.Duration {
	return c.accessTTL
}

func (c *Codec) RefreshTTL() time.Duration {
	return c.refreshTTL
}

// Issue signs a token of the given kind for userID. The jti claim keeps two
// tokens minted for the same user in the same second from colliding.
func (c *Codec) Issue(userID uuid.UUID, kind Kind) (string, error) {
	now := time.Now().UTC()

	claims := jwt.MapClaims{
		"sub": userID.String(),
		"typ": string(kind),
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(c.ttl(kind)).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret(kind))
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Verify checks signature, expiry, and token kind, returning the subject
// user ID. Expiry is reported as model.ErrTokenExpired; every other failure
// collapses into model.ErrInvalidToken.
func (c *Codec) Verify(raw string, kind Kind) (uuid.UUID, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrInvalidToken
		}
		return c.secret(kind), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, model.ErrTokenExpired
		}
		return uuid.Nil, model.ErrInvalidToken
	}
	if !parsed.Valid {
		return uuid.Nil, model.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, model.ErrInvalidToken
	}

	typ, _ := claims["typ"].(string)
	if typ != string(kind) {
		return uuid.Nil, model.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, model.ErrInvalidToken
	}

	return userID, nil
}

func (c *Codec) secret(kind Kind) []byte {
	if kind == KindRefresh {
		return c.refreshSecret
	}
	return c.accessSecret
}

func (c *Codec) ttl(kind Kind) time.Duration {
	if kind == KindRefresh {
		return c.refreshTTL
	}
	return c.accessTTL
}

// Hash returns the SHA-256 hex digest under which a refresh token is kept in
// the ledger. Raw tokens are never persisted.
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
