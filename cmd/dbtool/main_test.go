package main

import (
	"geo-forensics-service/internal/platform/db"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAndSeedWithoutSeedPath(t *testing.T) {
	conn, err := db.OpenSQLite("file:dbtool_noseed?mode=memory&cache=shared")
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, initAndSeed(conn, ""))

	var n int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM landmark_cache").Scan(&n))
	assert.Zero(t, n)
}

func TestInitAndSeedReturnsSeedErrors(t *testing.T) {
	conn, err := db.OpenSQLite("file:dbtool_badseed?mode=memory&cache=shared")
	require.NoError(t, err)
	defer conn.Close()

	err = initAndSeed(conn, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "seeding")
}

func TestInitAndSeedReturnsSchemaErrors(t *testing.T) {
	conn, err := db.OpenSQLite("file:dbtool_closed?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	err = initAndSeed(conn, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema initialization")
}
