package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growthchart/internal/config"
	"growthchart/internal/domain"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "growthchart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "2025-08-25", cfg.BirthDate)
	assert.Equal(t, "Foglio1", cfg.Mirror.Worksheet)
	assert.Equal(t, 5*time.Second, cfg.Mirror.Timeout)
	assert.Len(t, cfg.Seed, 3)

	table, err := cfg.Table()
	require.NoError(t, err)
	assert.Equal(t, 24, table.MaxWeek())
	last, _ := table.Lookup(40)
	assert.Equal(t, domain.GrowthInterval{Week: 24, Min: 7.5, Max: 10.0}, last)
}

func TestLoad_FileReplacesTable(t *testing.T) {
	path := writeFile(t, `
birth_date: "2025-08-25"
growth_table:
  - {week: 0, min: 3.45, max: 3.45}
  - {week: 1, min: 3.5, max: 4.0}
seed: []
database:
  driver: memory
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	table, err := cfg.Table()
	require.NoError(t, err)
	assert.Equal(t, 1, table.MaxWeek())
	assert.Empty(t, cfg.Seed)
	assert.Equal(t, "memory", cfg.Database.Driver)
}

func TestLoad_ReversedIntervalFails(t *testing.T) {
	path := writeFile(t, `
growth_table:
  - {week: 0, min: 2.5, max: 4.5}
  - {week: 1, min: 4.9, max: 4.8}
`)
	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "week 1")
}

func TestLoad_SeedBeforeBirthFails(t *testing.T) {
	path := writeFile(t, `
seed:
  - {date: "2025-08-01", weight: 3.2}
`)
	_, err := config.Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBeforeBirth))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/growth")
	t.Setenv("SPREADSHEET_ID", "sheet-123")
	t.Setenv("MIRROR_ENABLED", "false")
	t.Setenv(config.CredentialsEnv, `{"type":"service_account"}`)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/growth", cfg.Database.URL)
	assert.Equal(t, "sheet-123", cfg.Mirror.SpreadsheetID)
	assert.False(t, cfg.Mirror.Enabled)
	assert.Equal(t, `{"type":"service_account"}`, cfg.Credentials)
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "oracle")
	_, err := config.Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateMirror(t *testing.T) {
	t.Setenv(config.CredentialsEnv, "")
	cfg, err := config.Load("")
	require.NoError(t, err)

	cfg.Mirror.SpreadsheetID = "sheet-123"
	assert.Error(t, cfg.ValidateMirror(), "missing credentials must be fatal")

	cfg.Credentials = `{"type":"service_account"}`
	assert.NoError(t, cfg.ValidateMirror())

	cfg.Mirror.SpreadsheetID = ""
	assert.Error(t, cfg.ValidateMirror())

	cfg.Mirror.Enabled = false
	cfg.Credentials = ""
	assert.NoError(t, cfg.ValidateMirror())
}
