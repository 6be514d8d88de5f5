package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Benjafo/iconstore/internal/model"
	"github.com/Benjafo/iconstore/internal/token"
)

type fakeUserLoader struct {
	users map[uuid.UUID]model.User
}

func (f *fakeUserLoader) FindByID(_ context.Context, id uuid.UUID) (model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return user, nil
}

func newAuthFixture(t *testing.T) (*token.Codec, *fakeUserLoader, model.User) {
	t.Helper()
	codec := token.NewCodec("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	user := model.User{
		ID:       uuid.New(),
		Email:    "user@example.com",
		Username: "pixel_fan",
		IsActive: true,
	}
	loader := &fakeUserLoader{users: map[uuid.UUID]model.User{user.ID: user}}
	return codec, loader, user
}

func echoUserHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		require.True(t, ok, "user must be on the context")
		w.Header().Set("X-User-ID", user.ID.String())
		w.WriteHeader(http.StatusOK)
	})
}

func decodeAuthError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	codec, loader, user := newAuthFixture(t)
	mw := NewAuthMiddleware(codec, loader)

	access, err := codec.Issue(user.ID, token.KindAccess)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	mw.RequireAuth(echoUserHandler(t)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID.String(), rec.Header().Get("X-User-ID"))
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	codec, loader, _ := newAuthFixture(t)
	mw := NewAuthMiddleware(codec, loader)

	for _, header := range []string{"", "Basic dXNlcjpwYXNz", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		mw.RequireAuth(echoUserHandler(t)).ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Equal(t, "unauthorized", decodeAuthError(t, rec).Kind)
	}
}

func TestRequireAuthRejectsGarbageToken(t *testing.T) {
	codec, loader, _ := newAuthFixture(t)
	mw := NewAuthMiddleware(codec, loader)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	mw.RequireAuth(echoUserHandler(t)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_token", decodeAuthError(t, rec).Kind)
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	_, loader, user := newAuthFixture(t)
	expiredCodec := token.NewCodec("access-secret", "refresh-secret", -time.Minute, -time.Minute)
	mw := NewAuthMiddleware(expiredCodec, loader)

	access, err := expiredCodec.Issue(user.ID, token.KindAccess)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	mw.RequireAuth(echoUserHandler(t)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token_expired", decodeAuthError(t, rec).Kind)
}

func TestRequireAuthRejectsRefreshTokenAsBearer(t *testing.T) {
	codec, loader, user := newAuthFixture(t)
	mw := NewAuthMiddleware(codec, loader)

	refresh, err := codec.Issue(user.ID, token.KindRefresh)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec := httptest.NewRecorder()
	mw.RequireAuth(echoUserHandler(t)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_token", decodeAuthError(t, rec).Kind)
}

func TestRequireAuthRejectsUnknownUser(t *testing.T) {
	codec, loader, _ := newAuthFixture(t)
	mw := NewAuthMiddleware(codec, loader)

	access, err := codec.Issue(uuid.New(), token.KindAccess)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	mw.RequireAuth(echoUserHandler(t)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeAuthError(t, rec).Kind)
}

func TestRequireAuthRejectsDeactivatedUser(t *testing.T) {
	codec, loader, user := newAuthFixture(t)
	user.IsActive = false
	loader.users[user.ID] = user
	mw := NewAuthMiddleware(codec, loader)

	access, err := codec.Issue(user.ID, token.KindAccess)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	mw.RequireAuth(echoUserHandler(t)).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeAuthError(t, rec).Kind)
}

func TestRequireAuthAcceptsCaseInsensitiveBearer(t *testing.T) {
	codec, loader, user := newAuthFixture(t)
	mw := NewAuthMiddleware(codec, loader)

	access, err := codec.Issue(user.ID, token.KindAccess)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "bearer "+access)
	rec := httptest.NewRecorder()
	mw.RequireAuth(echoUserHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
