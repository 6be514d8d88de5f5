package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Benjafo/iconstore/internal/config"
	"github.com/Benjafo/iconstore/internal/database"
	"github.com/Benjafo/iconstore/internal/handler"
	"github.com/Benjafo/iconstore/internal/middleware"
	"github.com/Benjafo/iconstore/internal/ratelimit"
	"github.com/Benjafo/iconstore/internal/repository"
	"github.com/Benjafo/iconstore/internal/router"
	"github.com/Benjafo/iconstore/internal/service"
	"github.com/Benjafo/iconstore/internal/token"
)

type App struct {
	server       *http.Server
	db           *database.DB
	cleanupFuncs []func()
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.Info("connecting to PostgreSQL")
	db, err := database.New(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(context.Background(), cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	pool := db.Pool
	userRepo := repository.NewUserRepository(pool)
	tokenRepo := repository.NewTokenRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	packRepo := repository.NewPackRepository(pool)
	slog.Info("database ready")

	codec := token.NewCodec(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	auditService := service.NewAuditService(auditRepo)
	authService := service.NewAuthService(userRepo, tokenRepo, auditService, codec)
	packService := service.NewPackService(packRepo)
	maintenance := service.NewMaintenanceService(tokenRepo, auditRepo, cfg.AuditRetention)

	limitStore, closeStore, err := newRateLimitStore(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize rate limit store: %w", err)
	}

	rateLimit := middleware.NewRateLimitMiddleware(limitStore,
		ratelimit.Limit{Requests: cfg.AuthRateLimit, Window: cfg.RateLimitWindow},
		ratelimit.Limit{Requests: cfg.RefreshRateLimit, Window: cfg.RateLimitWindow},
		ratelimit.Limit{Requests: cfg.APIRateLimit, Window: cfg.RateLimitWindow},
	)
	authMiddleware := middleware.NewAuthMiddleware(codec, userRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler()
	packHandler := handler.NewPackHandler(packService)

	appRouter := router.New(cfg, db, authMiddleware, rateLimit, authHandler, userHandler, packHandler)

	reaperCtx, reaperCancel := context.WithCancel(context.Background())
	go maintenance.Run(reaperCtx, cfg.ReaperInterval)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{
		server: server,
		db:     db,
		cleanupFuncs: []func(){
			reaperCancel,
			closeStore,
			func() {
				db.Close()
			},
		},
	}, nil
}

// newRateLimitStore picks the counter backend. Without REDIS_URL limits
// are tracked in process memory, which is fine for a single instance;
// a set-but-unreachable Redis is a deployment error, not a fallback case.
func newRateLimitStore(cfg *config.Config) (ratelimit.Store, func(), error) {
	if cfg.RedisURL == "" {
		slog.Info("rate limiting with in-memory store")
		return ratelimit.NewMemoryStore(), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}

	slog.Info("rate limiting with redis store", "addr", opts.Addr)
	return ratelimit.NewRedisStore(client), func() {
		if err := client.Close(); err != nil {
			slog.Warn("close redis client", "error", err)
		}
	}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := a.server.Shutdown(ctx)

	// In-flight requests are done; now release the backends.
	for _, cleanup := range a.cleanupFuncs {
		cleanup()
	}

	if err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
