package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"growthchart/internal/adapter/sqldb"
	"growthchart/internal/adapter/sqldb/sqldbtest"
	"growthchart/internal/adapter/sqlite"
)

func TestRepository(t *testing.T) {
	sqldbtest.Run(t, func(t *testing.T) *sqldb.DB {
		db, err := sqlite.Open(filepath.Join(t.TempDir(), "growthchart.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		return db
	})
}
