package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"geo-forensics-service/internal/domain"
	"geo-forensics-service/internal/platform/obs"
)

const upsertLandmarkPostgres = `
	INSERT INTO landmark_cache (image_sha256, name, lat, lon, description)
    VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (image_sha256) DO UPDATE
	SET name = EXCLUDED.name,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		description = EXCLUDED.description;
	`

// SQLLandmarkCache is a Postgres-backed cache mapping image hashes to landmarks.
type SQLLandmarkCache struct {
	DB *sql.DB
}

func NewSQLLandmarkCache(db *sql.DB) *SQLLandmarkCache {
	return &SQLLandmarkCache{DB: db}
}

// Fetch the cached landmark for an image hash.
func (s *SQLLandmarkCache) Get(ctx context.Context, key string) (_ domain.Landmark, _ bool, err error) {
	defer obs.Time(ctx, "landmark.cache.Get")(&err)

	if s.DB == nil {
		return domain.Landmark{}, false, errors.New("landmark cache: db is nil")
	}

	key = normalizeKey(key)
	if key == "" {
		return domain.Landmark{}, false, errors.New("get landmark cache: key must not be empty")
	}

	q := `
	SELECT name, lat, lon, description
    FROM landmark_cache
    WHERE image_sha256 = $1;
	`

	var l domain.Landmark
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&l.Name, &l.Coordinates.Lat, &l.Coordinates.Lon, &l.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Landmark{}, false, nil
	}
	if err != nil {
		return domain.Landmark{}, false, fmt.Errorf("get landmark cache: query landmark_cache table: %w", err)
	}

	return l, true, nil
}

// Store a landmark under an image hash.
func (s *SQLLandmarkCache) Put(ctx context.Context, key string, l domain.Landmark) (err error) {
	defer obs.Time(ctx, "landmark.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("landmark cache: db is nil")
	}

	key = normalizeKey(key)
	if key == "" {
		return errors.New("insert landmark cache: key must not be empty")
	}

	if _, err := s.DB.ExecContext(ctx, upsertLandmarkPostgres, key, l.Name, l.Coordinates.Lat, l.Coordinates.Lon, l.Description); err != nil {
		return fmt.Errorf("insert landmark cache key=%q: %w", key, err)
	}

	return nil
}
