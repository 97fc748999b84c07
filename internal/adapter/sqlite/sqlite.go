// Package sqlite opens the measurement store on a local SQLite file.
package sqlite

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"growthchart/internal/adapter/sqldb"
)

// Dialect is the SQLite flavour of the measurement schema.
var Dialect = sqldb.Dialect{
	Name:   "sqlite",
	Ledger: "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP);",
	Migrations: []sqldb.Migration{
		{
			Version: "001_create_measurements",
			SQL:     "CREATE TABLE IF NOT EXISTS measurements (date TEXT PRIMARY KEY, weight REAL NOT NULL CHECK (weight > 0));",
		},
	},
	Upsert: "INSERT INTO measurements (date, weight) VALUES (?, ?) ON CONFLICT (date) DO UPDATE SET weight = excluded.weight",
}

// Open opens (creating if needed) the SQLite database at path. A single
// connection serialises writers, so concurrent upserts for one day cannot
// interleave.
func Open(path string) (*sqldb.DB, error) {
	s, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(1)

	return sqldb.Connect(s, Dialect)
}
