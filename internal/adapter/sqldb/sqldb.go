// Package sqldb implements the measurement repository on database/sql. The
// postgres, sqlite and mysql packages supply the driver and SQL dialect.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"growthchart/internal/domain"
)

// Migration is one versioned schema change.
type Migration struct {
	Version string
	SQL     string
}

// Dialect holds the engine-specific SQL. Queries are written with "?"
// placeholders and rewritten to "$n" when Numbered is set.
type Dialect struct {
	Name     string
	Numbered bool
	// Ledger creates the schema_migrations table.
	Ledger     string
	Migrations []Migration
	// Upsert inserts (date, weight) or replaces the weight of an existing date
	// in a single statement.
	Upsert string
}

// DB wraps a *sql.DB and implements domain.MeasurementRepository.
type DB struct {
	sql     *sql.DB
	dialect Dialect
}

var _ domain.MeasurementRepository = (*DB)(nil)

// Connect pings s and wraps it. It closes s if the ping fails.
func Connect(s *sql.DB, d Dialect) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%s: ping: %w", d.Name, err)
	}
	return &DB{sql: s, dialect: d}, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) q(query string) string {
	if !d.dialect.Numbered {
		return query
	}
	return Rebind(query)
}

// Rebind rewrites "?" placeholders as "$1", "$2", ...
func Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// UpsertMeasurement inserts or replaces the weight for date.
func (d *DB) UpsertMeasurement(ctx context.Context, date string, weight float64) error {
	_, err := d.sql.ExecContext(ctx, d.q(d.dialect.Upsert), date, weight)
	return err
}

// ListMeasurements returns all measurements ordered by date.
func (d *DB) ListMeasurements(ctx context.Context) ([]domain.Measurement, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT date, weight FROM measurements ORDER BY date ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.Measurement, 0)
	for rows.Next() {
		var m domain.Measurement
		if err := rows.Scan(&m.Date, &m.Weight); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// CountMeasurements returns the number of stored days.
func (d *DB) CountMeasurements(ctx context.Context) (int, error) {
	var n int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM measurements").Scan(&n)
	return n, err
}
