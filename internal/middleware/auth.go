package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Benjafo/iconstore/internal/model"
	"github.com/Benjafo/iconstore/internal/token"
)

type accessVerifier interface {
	Verify(raw string, kind token.Kind) (uuid.UUID, error)
}

type userLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (model.User, error)
}

type contextKey string

const userContextKey contextKey = "authenticated_user"

type AuthMiddleware struct {
	codec accessVerifier
	users userLoader
}

func NewAuthMiddleware(codec accessVerifier, users userLoader) *AuthMiddleware {
	return &AuthMiddleware{codec: codec, users: users}
}

// RequireAuth authenticates the bearer access token, loads the account it
// names, and rejects the request if the account is gone or deactivated. The
// loaded user rides on the request context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeAuthError(w, "unauthorized", "Missing or invalid authorization header")
			return
		}

		raw := strings.TrimSpace(header[7:])
		userID, err := m.codec.Verify(raw, token.KindAccess)
		if err != nil {
			if errors.Is(err, model.ErrTokenExpired) {
				writeAuthError(w, "token_expired", "Access token has expired")
				return
			}
			writeAuthError(w, "invalid_token", "Invalid access token")
			return
		}

		user, err := m.users.FindByID(r.Context(), userID)
		if err != nil || !user.IsActive {
			writeAuthError(w, "unauthorized", "Account is no longer valid")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	return user, ok
}

func writeAuthError(w http.ResponseWriter, kind string, message string) {
	writeJSON(w, http.StatusUnauthorized, errorBody{Kind: kind, Message: message})
}
