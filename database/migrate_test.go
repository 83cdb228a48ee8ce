package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeDatabase_IsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "gate.db")

	db, err := InitializeDatabase(dbPath)
	require.NoError(t, err)
	db.Close()

	db, err = InitializeDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&applied))
	assert.Equal(t, 2, applied)

	for _, table := range []string{"api_auth", "action_logs", "app_config"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}
}

func TestRunMigrations_OrderAndFailure(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"m/002_second.sql": {Data: []byte("ALTER TABLE t ADD COLUMN b TEXT;")},
		"m/001_first.sql":  {Data: []byte("CREATE TABLE t (a TEXT);")},
	}
	require.NoError(t, runMigrationsFrom(db, fsys, "m"))

	fsys["m/003_broken.sql"] = &fstest.MapFile{Data: []byte("NOT SQL;")}
	err = runMigrationsFrom(db, fsys, "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "003_broken.sql")

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&applied))
	assert.Equal(t, 2, applied, "failed migration is not recorded")

	_, err = loadMigrations(fstest.MapFS{}, "m")
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "a.db?"+connectionParams, DSN("a.db"))
	assert.Equal(t, "file:a.db?mode=rwc&"+connectionParams, DSN("file:a.db?mode=rwc"))
}
