// Package postgres opens the measurement store on PostgreSQL.
package postgres

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"growthchart/internal/adapter/sqldb"
)

// Dialect is the PostgreSQL flavour of the measurement schema.
var Dialect = sqldb.Dialect{
	Name:     "postgres",
	Numbered: true,
	Ledger:   "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMPTZ NOT NULL DEFAULT now());",
	Migrations: []sqldb.Migration{
		{
			Version: "001_create_measurements",
			SQL:     "CREATE TABLE IF NOT EXISTS measurements (date TEXT PRIMARY KEY, weight DOUBLE PRECISION NOT NULL CHECK (weight > 0));",
		},
	},
	Upsert: "INSERT INTO measurements (date, weight) VALUES (?, ?) ON CONFLICT (date) DO UPDATE SET weight = EXCLUDED.weight",
}

// Open connects to PostgreSQL and pings it. Schema changes are left to Migrate.
func Open(connStr string) (*sqldb.DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	return sqldb.Connect(s, Dialect)
}
