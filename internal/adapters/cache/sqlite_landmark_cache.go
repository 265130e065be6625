package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"geo-forensics-service/internal/domain"
)

// SQLite backed cache mapping image content hashes to identified landmarks.
// With the default in-memory DSN the cache lives only as long as the process.
type SqliteLandmarkCache struct {
	DB *sql.DB
}

func NewSqliteLandmarkCache(db *sql.DB) *SqliteLandmarkCache {
	return &SqliteLandmarkCache{DB: db}
}

// Fetch the cached landmark for an image hash.
func (s *SqliteLandmarkCache) Get(ctx context.Context, key string) (domain.Landmark, bool, error) {
	if s.DB == nil {
		return domain.Landmark{}, false, errors.New("landmark cache: db is nil")
	}

	key = normalizeKey(key)
	if key == "" {
		return domain.Landmark{}, false, errors.New("get landmark cache: key must not be empty")
	}

	q := `
	SELECT 
        name,
        lat,
        lon,
        description
    FROM landmark_cache
    WHERE image_sha256 = ?;
	`

	var l domain.Landmark
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&l.Name, &l.Coordinates.Lat, &l.Coordinates.Lon, &l.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Landmark{}, false, nil
	}
	if err != nil {
		return domain.Landmark{}, false, fmt.Errorf("get landmark cache: query landmark_cache table: %w", err)
	}

	return l, true, nil
}

// Store a landmark under an image hash.
func (s *SqliteLandmarkCache) Put(ctx context.Context, key string, l domain.Landmark) error {
	if s.DB == nil {
		return errors.New("landmark cache: db is nil")
	}

	key = normalizeKey(key)
	if key == "" {
		return errors.New("insert landmark cache: key must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO landmark_cache (
        image_sha256,
        name,
        lat,
        lon,
        description
    )
    VALUES (?, ?, ?, ?, ?);
	`

	if _, err := s.DB.ExecContext(ctx, q, key, l.Name, l.Coordinates.Lat, l.Coordinates.Lon, l.Description); err != nil {
		return fmt.Errorf("insert landmark cache key=%q: %w", key, err)
	}

	return nil
}
