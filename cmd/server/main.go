package main

import (
	"log/slog"
	"os"

	"github.com/Benjafo/iconstore/internal/app"
	"github.com/Benjafo/iconstore/internal/logger"
)

func main() {
	slog.SetDefault(slog.New(newLogHandler()))

	application, err := app.New()
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}

// newLogHandler emits JSON in production and colored single-line
// records everywhere else.
func newLogHandler() slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if os.Getenv("APP_ENV") == "production" {
		return slog.NewJSONHandler(os.Stdout, opts)
	}
	return logger.NewPrettyHandler(os.Stdout, opts)
}
