package main

import (
	"context"
	"geo-forensics-service/internal/api"
	"geo-forensics-service/internal/app"
	"geo-forensics-service/internal/config"
	"geo-forensics-service/internal/platform/logging"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mdobak/go-xerrors"
)

// main is the application composition root.
// It wires concrete adapters (cache, Gemini) behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load(os.Getenv("GEOFORENSICS_CONFIG"))
	if err != nil {
		slog.Error("load config", slog.Any("error", xerrors.New(err)))
		os.Exit(1)
	}

	slog.SetDefault(logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat))
	if envErr != nil {
		slog.Info("No .env file found (using environment variables)")
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		slog.Error("wire application", slog.Any("error", xerrors.New(err)))
		os.Exit(1)
	}
	defer a.Close()

	router := api.NewRouter(a.Pipeline)

	// Timeouts are tuned for large batches: each AI lookup is spaced by the vision cooldown.
	slog.Info("Server listening", slog.String("addr", ":"+cfg.Port))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server stopped", slog.Any("error", xerrors.New(err)))
		os.Exit(1)
	}
}
