package main

import (
	"context"
	"fmt"
	"strings"

	"growthchart/internal/adapter/memory"
	"growthchart/internal/adapter/mysql"
	"growthchart/internal/adapter/postgres"
	"growthchart/internal/adapter/sqlite"
	"growthchart/internal/config"
	"growthchart/internal/domain"
)

// store is what every command needs from a storage adapter.
type store interface {
	domain.MeasurementRepository
	Migrate(ctx context.Context) ([]string, error)
	Pending(ctx context.Context) ([]string, error)
	Seed(ctx context.Context, seed []domain.Measurement) (int, error)
	Close() error
}

func openStore(c config.Database) (store, error) {
	switch c.Driver {
	case "postgres":
		return postgres.Open(c.URL)
	case "sqlite":
		return sqlite.Open(c.URL)
	case "mysql":
		return mysql.Open(c.URL)
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", c.Driver)
	}
}

// migrate applies pending migrations and seeds an empty table.
func migrate(ctx context.Context, st store, seed []domain.Measurement) ([]string, int, error) {
	applied, err := st.Migrate(ctx)
	if err != nil {
		return nil, 0, err
	}
	n, err := st.Seed(ctx, seed)
	if err != nil {
		return applied, 0, err
	}
	return applied, n, nil
}

// checkSchema refuses a store that migrate has not brought up to date.
func checkSchema(ctx context.Context, st store) error {
	pending, err := st.Pending(ctx)
	if err != nil {
		return err
	}
	if len(pending) > 0 {
		return fmt.Errorf("schema has pending migrations (%s): run growthchart migrate", strings.Join(pending, ", "))
	}
	return nil
}
