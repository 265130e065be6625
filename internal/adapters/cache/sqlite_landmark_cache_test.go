package cache

import (
	"context"
	"fmt"
	"geo-forensics-service/internal/domain"
	"geo-forensics-service/internal/platform/db"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSqlite(t *testing.T) *SqliteLandmarkCache {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	conn, err := db.OpenSQLite(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(conn))
	return NewSqliteLandmarkCache(conn)
}

func TestSqliteLandmarkCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := openTestSqlite(t)

	key := strings.Repeat("ab", 32)

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "empty cache must miss")

	tower := domain.Landmark{
		Name:        "Tokyo Tower",
		Coordinates: domain.Coordinates{Lat: 35.6586, Lon: 139.7454},
		Description: "Lattice tower in Minato.",
	}
	require.NoError(t, c.Put(ctx, key, tower))

	got, ok, err := c.Get(ctx, strings.ToUpper(key))
	require.NoError(t, err)
	require.True(t, ok, "keys are case-insensitive hex")
	assert.Equal(t, tower, got)

	tower.Name = "東京タワー"
	require.NoError(t, c.Put(ctx, key, tower))
	got, _, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "東京タワー", got.Name, "put replaces the previous entry")
}

func TestSqliteLandmarkCacheRejectsEmptyKey(t *testing.T) {
	ctx := context.Background()
	c := openTestSqlite(t)

	_, _, err := c.Get(ctx, "  ")
	assert.Error(t, err)
	assert.Error(t, c.Put(ctx, "", domain.Landmark{Name: "x"}))

	var nilDB SqliteLandmarkCache
	_, _, err = nilDB.Get(ctx, "k")
	assert.ErrorContains(t, err, "db is nil")
}

func TestSQLLandmarkCachePostgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, err := db.Open(url)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, InitSchema(conn))

	seed := filepath.Join(t.TempDir(), "seed.json")
	key := strings.Repeat("cd", 32)
	body := fmt.Sprintf(`[{"sha256": %q, "name": "Eiffel Tower", "lat": 48.8584, "lon": 2.2945}]`, key)
	require.NoError(t, os.WriteFile(seed, []byte(body), 0o600))
	require.NoError(t, SeedFromJSON(conn, seed))

	c := NewSQLLandmarkCache(conn)
	got, ok, err := c.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Eiffel Tower", got.Name)
}
