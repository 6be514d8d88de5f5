package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Benjafo/iconstore/internal/model"
	"github.com/Benjafo/iconstore/internal/password"
	"github.com/Benjafo/iconstore/internal/token"
	"github.com/Benjafo/iconstore/internal/validate"
	"github.com/Benjafo/iconstore/pkg/apierror"
)

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindConflicts(ctx context.Context, email string, username string) (bool, bool, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type TokenLedger interface {
	Store(ctx context.Context, t *model.RefreshToken) error
	FindValid(ctx context.Context, tokenHash string) (uuid.UUID, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, eventType string, userID *uuid.UUID, ip string, userAgent string, metadata map[string]any)
}

type AuthService struct {
	users  UserStore
	ledger TokenLedger
	audit  AuditRecorder
	codec  *token.Codec
}

func NewAuthService(users UserStore, ledger TokenLedger, audit AuditRecorder, codec *token.Codec) *AuthService {
	return &AuthService{users: users, ledger: ledger, audit: audit, codec: codec}
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest, ip string, userAgent string) (model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if details := validate.Registration(email, username, req.Password); details != nil {
		return model.AuthResponse{}, apierror.Validation(details)
	}

	emailTaken, usernameTaken, err := s.users.FindConflicts(ctx, email, username)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if emailTaken || usernameTaken {
		return model.AuthResponse{}, apierror.Conflict(conflictDetails(emailTaken, usernameTaken))
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return model.AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		// Another registration may have won the race between the conflict
		// check and the insert.
		if errors.Is(err, model.ErrDuplicateEmail) {
			return model.AuthResponse{}, apierror.Conflict(conflictDetails(true, false))
		}
		if errors.Is(err, model.ErrDuplicateUsername) {
			return model.AuthResponse{}, apierror.Conflict(conflictDetails(false, true))
		}
		return model.AuthResponse{}, err
	}

	tokens, err := s.openSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		return model.AuthResponse{}, err
	}

	s.audit.Record(ctx, model.EventRegistration, &user.ID, ip, userAgent,
		map[string]any{"email": user.Email, "username": user.Username})

	return model.AuthResponse{User: user.Public(true), Tokens: tokens}, nil
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password take the same path out, so a caller cannot probe which addresses
// have accounts.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest, ip string, userAgent string) (model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if details := validate.Credentials(email, req.Password); details != nil {
		return model.AuthResponse{}, apierror.Validation(details)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.AuthResponse{}, model.ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	if !user.IsActive {
		return model.AuthResponse{}, model.ErrAccountDeactivated
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		return model.AuthResponse{}, model.ErrInvalidCredentials
	}

	tokens, err := s.openSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		return model.AuthResponse{}, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		return model.AuthResponse{}, err
	}

	s.audit.Record(ctx, model.EventLogin, &user.ID, ip, userAgent,
		map[string]any{"email": user.Email})

	return model.AuthResponse{User: user.Public(false), Tokens: tokens}, nil
}

// Refresh exchanges a live refresh token for a new access token. The refresh
// token itself is not rotated and stays valid until it expires or is
// revoked.
func (s *AuthService) Refresh(ctx context.Context, rawToken string) (model.RefreshResponse, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return model.RefreshResponse{}, apierror.Validation(map[string]string{
			"refresh_token": "refresh_token is required",
		})
	}

	claimedUserID, err := s.codec.Verify(rawToken, token.KindRefresh)
	if err != nil {
		// Expired and malformed tokens are indistinguishable to the caller.
		return model.RefreshResponse{}, model.ErrInvalidToken
	}

	tokenHash := token.Hash(rawToken)
	ownerID, err := s.ledger.FindValid(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, model.ErrTokenNotFound) {
			return model.RefreshResponse{}, model.ErrInvalidToken
		}
		return model.RefreshResponse{}, err
	}
	if ownerID != claimedUserID {
		return model.RefreshResponse{}, model.ErrInvalidToken
	}

	user, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// The account is gone; make sure this token can never come back.
			_ = s.ledger.Revoke(ctx, tokenHash)
			return model.RefreshResponse{}, model.ErrInvalidUser
		}
		return model.RefreshResponse{}, err
	}
	if !user.IsActive {
		_ = s.ledger.Revoke(ctx, tokenHash)
		return model.RefreshResponse{}, model.ErrInvalidUser
	}

	access, err := s.codec.Issue(user.ID, token.KindAccess)
	if err != nil {
		return model.RefreshResponse{}, fmt.Errorf("issue access token: %w", err)
	}

	return model.RefreshResponse{
		AccessToken: access,
		ExpiresIn:   int64(s.codec.AccessTTL().Seconds()),
	}, nil
}

// Logout revokes the given refresh token. Unknown, expired, and already
// revoked tokens all succeed; the caller only learns that the token is now
// unusable.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil
	}

	return s.ledger.Revoke(ctx, token.Hash(rawToken))
}

// LogoutAll revokes every live refresh token the user holds, across all
// devices.
func (s *AuthService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	_, err := s.ledger.RevokeAllForUser(ctx, userID)
	return err
}

// openSession issues the access/refresh pair and records the refresh token
// in the ledger. A ledger write failure aborts the flow: an untracked
// refresh token could never be revoked.
func (s *AuthService) openSession(ctx context.Context, userID uuid.UUID, ip string, userAgent string) (model.TokenPair, error) {
	access, err := s.codec.Issue(userID, token.KindAccess)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}

	refresh, err := s.codec.Issue(userID, token.KindRefresh)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}

	now := time.Now().UTC()
	entry := model.RefreshToken{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: token.Hash(refresh),
		ExpiresAt: now.Add(s.codec.RefreshTTL()),
		CreatedAt: now,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := s.ledger.Store(ctx, &entry); err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.codec.AccessTTL().Seconds()),
	}, nil
}

func conflictDetails(emailTaken bool, usernameTaken bool) map[string]string {
	details := map[string]string{}
	if emailTaken {
		details["email"] = "email already registered"
	}
	if usernameTaken {
		details["username"] = "username already taken"
	}
	return details
}
