package handler

import (
	"net/http"

	"github.com/Benjafo/iconstore/internal/middleware"
	"github.com/Benjafo/iconstore/internal/model"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me returns the profile of the account behind the access token. The auth
// middleware already loaded and vetted the user.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, model.UserResponse{User: user.Public(true)})
}
