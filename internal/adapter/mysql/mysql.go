// Package mysql opens the measurement store on MySQL or MariaDB.
package mysql

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"growthchart/internal/adapter/sqldb"
)

// Dialect is the MySQL flavour of the measurement schema.
var Dialect = sqldb.Dialect{
	Name:   "mysql",
	Ledger: "CREATE TABLE IF NOT EXISTS schema_migrations (version VARCHAR(255) PRIMARY KEY, applied_at DATETIME DEFAULT CURRENT_TIMESTAMP)",
	Migrations: []sqldb.Migration{
		{
			Version: "001_create_measurements",
			SQL:     "CREATE TABLE IF NOT EXISTS measurements (date VARCHAR(10) PRIMARY KEY, weight DOUBLE NOT NULL CHECK (weight > 0))",
		},
	},
	Upsert: "INSERT INTO measurements (date, weight) VALUES (?, ?) ON DUPLICATE KEY UPDATE weight = VALUES(weight)",
}

// Open connects to MySQL using a go-sql-driver DSN, e.g.
// "user:pass@tcp(localhost:3306)/growthchart".
func Open(dsn string) (*sqldb.DB, error) {
	s, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(25)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	return sqldb.Connect(s, Dialect)
}
