package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"geo-forensics-service/internal/adapters/cache"
	"geo-forensics-service/internal/adapters/exifmeta"
	"geo-forensics-service/internal/adapters/vision"
	"geo-forensics-service/internal/config"
	"geo-forensics-service/internal/domain"
	"geo-forensics-service/internal/platform/db"
	"geo-forensics-service/internal/ports"
	"geo-forensics-service/internal/services"
	"log/slog"
	"strings"
	"time"
)

const (
	visionAttempts = 4
	visionBackoff  = 200 * time.Millisecond
)

// App holds the wired resolution pipeline and the resources behind it.
type App struct {
	Pipeline *services.ResolutionPipeline
	db       *sql.DB
}

// New wires concrete adapters (SQLite or Postgres cache, Gemini) behind ports.
// A missing Gemini key does not stop startup: /health still answers, but every
// batch is refused up front with domain.ErrServiceUnavailable.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	sqlDB, landmarkCache, err := openCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("new app: %w", err)
	}

	model, err := newVisionModel(ctx, cfg)
	if err != nil {
		var ce *domain.ConfigError
		if !errors.As(err, &ce) {
			sqlDB.Close()
			return nil, fmt.Errorf("new app: %w", err)
		}
		slog.WarnContext(ctx, "AI vision resolution disabled", slog.String("missing", ce.Key))
	}

	identifier := services.NewLandmarkIdentifier(model, landmarkCache)
	pipeline := services.NewResolutionPipeline(exifmeta.NewExtractor(), identifier)

	return &App{Pipeline: pipeline, db: sqlDB}, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// openCache uses Postgres when DATABASE_URL is set, otherwise SQLite at CachePath.
func openCache(cfg config.Config) (*sql.DB, ports.LandmarkCache, error) {
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		sqlDB, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := cache.InitSchema(sqlDB); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		return sqlDB, cache.NewSQLLandmarkCache(sqlDB), nil
	}

	sqlDB, err := db.OpenSQLite(cfg.CachePath)
	if err != nil {
		return nil, nil, err
	}
	if err := cache.InitSchema(sqlDB); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}
	return sqlDB, cache.NewSqliteLandmarkCache(sqlDB), nil
}

// newVisionModel returns Gemini behind the cooldown limiter and the retry loop.
// The returned interface is nil whenever err is non-nil.
func newVisionModel(ctx context.Context, cfg config.Config) (ports.VisionModel, error) {
	if err := cfg.RequireGemini(); err != nil {
		return nil, err
	}

	gemini, err := vision.NewGeminiModel(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, err
	}

	return vision.NewRetrying(vision.NewThrottled(gemini, cfg.VisionCooldown), visionAttempts, visionBackoff), nil
}
