package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"growthchart/internal/domain"
)

// Migrate creates the migration ledger and applies every pending migration,
// each in its own transaction. Running it again is a no-op.
func (d *DB) Migrate(ctx context.Context) ([]string, error) {
	if _, err := d.sql.ExecContext(ctx, d.dialect.Ledger); err != nil {
		return nil, fmt.Errorf("migrate: create schema_migrations: %w", err)
	}

	var applied []string
	for _, m := range d.dialect.Migrations {
		done, err := d.isApplied(ctx, m.Version)
		if err != nil {
			return applied, err
		}
		if done {
			continue
		}
		if err := d.apply(ctx, m); err != nil {
			return applied, err
		}
		applied = append(applied, m.Version)
	}
	return applied, nil
}

// Pending returns the versions Migrate would apply, in order. A missing
// schema_migrations table counts as nothing applied.
func (d *DB) Pending(ctx context.Context) ([]string, error) {
	done := make(map[string]bool)
	rows, err := d.sql.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err == nil {
		defer rows.Close() //nolint:errcheck
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				return nil, fmt.Errorf("migrate: read ledger: %w", err)
			}
			done[v] = true
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("migrate: read ledger: %w", err)
		}
	}

	var pending []string
	for _, m := range d.dialect.Migrations {
		if !done[m.Version] {
			pending = append(pending, m.Version)
		}
	}
	return pending, nil
}

func (d *DB) isApplied(ctx context.Context, version string) (bool, error) {
	var n int
	err := d.sql.QueryRowContext(ctx, d.q("SELECT COUNT(*) FROM schema_migrations WHERE version = ?"), version).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("migrate: check %s: %w", version, err)
	}
	return n > 0, nil
}

func (d *DB) apply(ctx context.Context, m Migration) error {
	return d.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
			return fmt.Errorf("migrate: %s: %w", m.Version, err)
		}
		if _, err := tx.ExecContext(ctx, d.q("INSERT INTO schema_migrations (version) VALUES (?)"), m.Version); err != nil {
			return fmt.Errorf("migrate: record %s: %w", m.Version, err)
		}
		return nil
	})
}

// Seed writes seed when the measurements table is empty and returns the
// number of rows written.
func (d *DB) Seed(ctx context.Context, seed []domain.Measurement) (int, error) {
	written := 0
	err := d.inTx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM measurements").Scan(&n); err != nil {
			return fmt.Errorf("seed: count: %w", err)
		}
		if n > 0 {
			return nil
		}
		stmt, err := tx.PrepareContext(ctx, d.q(d.dialect.Upsert))
		if err != nil {
			return fmt.Errorf("seed: prepare: %w", err)
		}
		defer stmt.Close() //nolint:errcheck

		for _, m := range seed {
			if _, err := stmt.ExecContext(ctx, m.Date, m.Weight); err != nil {
				return fmt.Errorf("seed: %s: %w", m.Date, err)
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return written, nil
}

func (d *DB) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
