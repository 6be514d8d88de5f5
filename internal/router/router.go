package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Benjafo/iconstore/internal/config"
	"github.com/Benjafo/iconstore/internal/handler"
	"github.com/Benjafo/iconstore/internal/middleware"
)

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func New(
	cfg *config.Config,
	db Pinger,
	authMiddleware *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	packHandler *handler.PackHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("database unreachable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.With(rateLimit.Auth).Post("/register", authHandler.Register)
			auth.With(rateLimit.Auth).Post("/login", authHandler.Login)
			auth.With(rateLimit.Refresh).Post("/refresh", authHandler.Refresh)
			auth.With(rateLimit.API, authMiddleware.RequireAuth).Post("/logout", authHandler.Logout)
			auth.With(rateLimit.API, authMiddleware.RequireAuth).Post("/logout-all", authHandler.LogoutAll)
		})

		api.With(rateLimit.API, authMiddleware.RequireAuth).Get("/users/me", userHandler.Me)
		api.With(rateLimit.API, authMiddleware.RequireAuth).Get("/packs", packHandler.List)
		api.With(rateLimit.API, authMiddleware.RequireAuth).Get("/packs/{pack}", packHandler.Get)
	})

	return r
}
