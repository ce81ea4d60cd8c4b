package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/ideadesk/internal/store"
	"github.com/aussiebroadwan/ideadesk/internal/store/drivers/sqlite"
	"github.com/aussiebroadwan/ideadesk/internal/store/storetest"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore(t *testing.T) {
	t.Parallel()

	storetest.Run(t, func(t *testing.T) store.Store {
		dsn := "file:" + filepath.Join(t.TempDir(), "session.db")
		s, err := sqlite.NewStore(dsn)
		require.NoError(t, err)
		require.NoError(t, s.ApplyMigrations())
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestSQLiteMigrationsAreIdempotent(t *testing.T) {
	t.Parallel()

	s, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations())
}
