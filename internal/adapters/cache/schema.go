package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// InitSchema creates the landmark cache table. The DDL is valid for both
// SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLandmarkCacheQuery := `
	CREATE TABLE IF NOT EXISTS landmark_cache (
        image_sha256 TEXT PRIMARY KEY,
        name TEXT NOT NULL,
        lat DOUBLE PRECISION NOT NULL,
        lon DOUBLE PRECISION NOT NULL,
        description TEXT NOT NULL DEFAULT '',
        created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_landmark_cache_name
    ON landmark_cache(name);
	`

	statements := []string{
		createLandmarkCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// LandmarkSeed is one pre-identified image in a seed file.
type LandmarkSeed struct {
	SHA256      string  `json:"sha256"`
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Description string  `json:"desc"`
}

// SeedFromJSON loads known image hashes and their landmarks into a Postgres cache.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed landmarks: read %q: %w", jsonPath, err)
	}

	var data []LandmarkSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed landmarks: parse json: %w", err)
	}

	rows := make([]LandmarkSeed, 0, len(data))
	for i, item := range data {
		key := normalizeKey(item.SHA256)
		if len(key) != 64 {
			return fmt.Errorf("seed landmarks: invalid sha256 at index %d: %q", i+1, item.SHA256)
		}

		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("seed landmarks: item at index %d: name cannot be empty", i+1)
		}
		item.SHA256, item.Name = key, name
		rows = append(rows, item)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed landmarks: begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(upsertLandmarkPostgres)
	if err != nil {
		return fmt.Errorf("seed landmarks: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range rows {
		if _, err := stmt.Exec(l.SHA256, l.Name, l.Lat, l.Lon, l.Description); err != nil {
			return fmt.Errorf("seed landmarks: insert sha256=%s: %w", l.SHA256, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed landmarks: commit tx: %w", err)
	}

	return nil
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}
