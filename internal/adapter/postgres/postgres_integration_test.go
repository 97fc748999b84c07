package postgres_test

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"growthchart/internal/adapter/postgres"
	"growthchart/internal/adapter/sqldb"
	"growthchart/internal/adapter/sqldb/sqldbtest"
)

// TestRepository runs against the server in TEST_POSTGRES_URL. Its tables
// are dropped before every case.
func TestRepository(t *testing.T) {
	url := os.Getenv("TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("TEST_POSTGRES_URL not set")
	}

	sqldbtest.Run(t, func(t *testing.T) *sqldb.DB {
		raw, err := sql.Open("postgres", url)
		require.NoError(t, err)
		defer raw.Close() //nolint:errcheck
		sqldbtest.DropTables(t, func(q string) error {
			_, err := raw.ExecContext(context.Background(), q)
			return err
		})

		db, err := postgres.Open(url)
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		return db
	})
}
