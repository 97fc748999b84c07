// Package sqldbtest runs the measurement repository cases against any SQL
// engine supported by sqldb.
package sqldbtest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growthchart/internal/adapter/sqldb"
	"growthchart/internal/domain"
)

// Opener returns a connection to a database with no growthchart tables.
// It registers its own cleanup.
type Opener func(t *testing.T) *sqldb.DB

// Run executes every repository case, each on a freshly opened database.
func Run(t *testing.T, open Opener) {
	migrated := func(t *testing.T) *sqldb.DB {
		t.Helper()
		db := open(t)
		_, err := db.Migrate(context.Background())
		require.NoError(t, err)
		return db
	}

	t.Run("MigrateIdempotent", func(t *testing.T) {
		db := open(t)
		ctx := context.Background()

		pending, err := db.Pending(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, pending)

		applied, err := db.Migrate(ctx)
		require.NoError(t, err)
		assert.Equal(t, pending, applied)

		pending, err = db.Pending(ctx)
		require.NoError(t, err)
		assert.Empty(t, pending)

		applied, err = db.Migrate(ctx)
		require.NoError(t, err)
		assert.Empty(t, applied)
	})

	t.Run("UpsertReplacesSameDate", func(t *testing.T) {
		db := migrated(t)
		ctx := context.Background()

		require.NoError(t, db.UpsertMeasurement(ctx, "2025-08-25", 3.55))
		require.NoError(t, db.UpsertMeasurement(ctx, "2025-08-25", 3.60))

		rows, err := db.ListMeasurements(ctx)
		require.NoError(t, err)
		assert.Equal(t, []domain.Measurement{{Date: "2025-08-25", Weight: 3.60}}, rows)
	})

	t.Run("ListSortedRegardlessOfInsertOrder", func(t *testing.T) {
		db := migrated(t)
		ctx := context.Background()

		for _, d := range []string{"2025-09-15", "2025-08-25", "2025-09-02", "2025-08-30"} {
			require.NoError(t, db.UpsertMeasurement(ctx, d, 3.5))
		}
		rows, err := db.ListMeasurements(ctx)
		require.NoError(t, err)

		var dates []string
		for _, r := range rows {
			dates = append(dates, r.Date)
		}
		assert.Equal(t, []string{"2025-08-25", "2025-08-30", "2025-09-02", "2025-09-15"}, dates)

		n, err := db.CountMeasurements(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
	})

	t.Run("ListEmptyIsNotNil", func(t *testing.T) {
		rows, err := migrated(t).ListMeasurements(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})

	t.Run("SeedOnlyWhenEmpty", func(t *testing.T) {
		db := migrated(t)
		ctx := context.Background()
		seed := []domain.Measurement{
			{Date: "2025-08-25", Weight: 3.55},
			{Date: "2025-08-30", Weight: 3.45},
			{Date: "2025-09-02", Weight: 3.50},
		}

		n, err := db.Seed(ctx, seed)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		n, err = db.Seed(ctx, seed)
		require.NoError(t, err)
		assert.Zero(t, n)

		rows, err := db.ListMeasurements(ctx)
		require.NoError(t, err)
		assert.Equal(t, seed, rows)
	})

	t.Run("UpsertRejectsNonPositiveWeight", func(t *testing.T) {
		db := migrated(t)
		assert.Error(t, db.UpsertMeasurement(context.Background(), "2025-08-25", 0))
	})

	t.Run("UpsertConcurrentSameDate", func(t *testing.T) {
		db := migrated(t)
		ctx := context.Background()

		var wg sync.WaitGroup
		errs := make(chan error, 20)
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if err := db.UpsertMeasurement(ctx, "2025-09-02", 3+float64(i)/100); err != nil {
					errs <- fmt.Errorf("upsert %d: %w", i, err)
				}
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Error(err)
		}

		n, err := db.CountMeasurements(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

// DropTables removes the growthchart tables so a shared server starts clean.
func DropTables(t *testing.T, exec func(query string) error) {
	t.Helper()
	for _, table := range []string{"measurements", "schema_migrations"} {
		require.NoError(t, exec("DROP TABLE IF EXISTS "+table))
	}
}
