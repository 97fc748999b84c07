package postgres_test

import (
	"strings"
	"testing"

	"growthchart/internal/adapter/postgres"
	"growthchart/internal/adapter/sqldb"
)

func TestDialect_UpsertUsesNumberedPlaceholders(t *testing.T) {
	if !postgres.Dialect.Numbered {
		t.Fatal("postgres dialect must use numbered placeholders")
	}
	got := sqldb.Rebind(postgres.Dialect.Upsert)
	if !strings.Contains(got, "VALUES ($1, $2)") {
		t.Fatalf("unexpected upsert SQL: %s", got)
	}
	if !strings.Contains(got, "ON CONFLICT (date)") {
		t.Fatalf("upsert must resolve conflicts on date: %s", got)
	}
}
