// Package config loads runtime configuration from a YAML file, an optional
// .env file and the environment.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"growthchart/internal/domain"
)

//go:embed default.yaml
var defaultYAML []byte

// CredentialsEnv holds the Google service-account key, as raw JSON or base64.
const CredentialsEnv = "GOOGLE_CREDENTIALS"

// Config is the full application configuration.
type Config struct {
	Addr     string   `yaml:"addr"`
	Timezone string   `yaml:"timezone"`
	Log      Log      `yaml:"log"`
	Database Database `yaml:"database"`

	BirthDate   string                  `yaml:"birth_date"`
	GrowthTable []domain.GrowthInterval `yaml:"growth_table"`
	Seed        []domain.Measurement    `yaml:"seed"`

	Mirror Mirror `yaml:"mirror"`

	// Credentials is read from CredentialsEnv only, never from the file.
	Credentials string `yaml:"-"`
}

// Log configures logrus.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Database selects the storage adapter.
type Database struct {
	Driver string `yaml:"driver"`
	URL    string `yaml:"url"`
}

// Mirror configures the spreadsheet backup.
type Mirror struct {
	Enabled       bool          `yaml:"enabled"`
	SpreadsheetID string        `yaml:"spreadsheet_id"`
	Worksheet     string        `yaml:"worksheet"`
	Timeout       time.Duration `yaml:"timeout"`
	VerifyOnStart bool          `yaml:"verify_on_start"`
}

// Load reads the embedded defaults, decodes path over them when non-empty,
// loads a .env file if one exists in the working directory, applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return nil, fmt.Errorf("config: defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setFromEnv(&c.Addr, "ADDR")
	setFromEnv(&c.Timezone, "TIMEZONE")
	setFromEnv(&c.Log.Level, "LOG_LEVEL")
	setFromEnv(&c.Log.Format, "LOG_FORMAT")
	setFromEnv(&c.Database.Driver, "DATABASE_DRIVER")
	setFromEnv(&c.Database.URL, "DATABASE_URL")
	setFromEnv(&c.BirthDate, "BIRTH_DATE")
	setFromEnv(&c.Mirror.SpreadsheetID, "SPREADSHEET_ID")
	setFromEnv(&c.Mirror.Worksheet, "WORKSHEET")
	c.Credentials = os.Getenv(CredentialsEnv)

	if v := os.Getenv("MIRROR_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: MIRROR_ENABLED: %w", err)
		}
		c.Mirror.Enabled = enabled
	}
	return nil
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks the settings every command depends on.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: addr is required")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("config: timezone: %w", err)
	}
	switch c.Database.Driver {
	case "postgres", "sqlite", "mysql", "memory":
	default:
		return fmt.Errorf("config: unknown database driver %q", c.Database.Driver)
	}
	if c.Database.Driver != "memory" && c.Database.URL == "" {
		return errors.New("config: database url is required")
	}

	birth, err := c.Birth()
	if err != nil {
		return fmt.Errorf("config: birth_date: %w", err)
	}
	if _, err := c.Table(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	for _, m := range c.Seed {
		d, err := domain.ParseDay(m.Date)
		if err != nil {
			return fmt.Errorf("config: seed %q: %w", m.Date, err)
		}
		if d.Before(birth) {
			return fmt.Errorf("config: seed %s: %w", m.Date, domain.ErrBeforeBirth)
		}
		if m.Weight <= 0 {
			return fmt.Errorf("config: seed %s: %w", m.Date, domain.ErrInvalidWeight)
		}
	}

	return nil
}

// ValidateMirror checks the spreadsheet settings and credentials. Only the
// serve command needs them, so Validate leaves them alone.
func (c *Config) ValidateMirror() error {
	if !c.Mirror.Enabled {
		return nil
	}
	if c.Credentials == "" {
		return fmt.Errorf("config: %s is required when mirroring is enabled", CredentialsEnv)
	}
	if c.Mirror.SpreadsheetID == "" {
		return errors.New("config: mirror.spreadsheet_id is required when mirroring is enabled")
	}
	if c.Mirror.Worksheet == "" {
		return errors.New("config: mirror.worksheet is required when mirroring is enabled")
	}
	if c.Mirror.Timeout <= 0 {
		return errors.New("config: mirror.timeout must be positive")
	}
	return nil
}

// Birth returns the configured birth date.
func (c *Config) Birth() (time.Time, error) {
	return domain.ParseDay(c.BirthDate)
}

// Table builds the growth table, failing on any malformed interval.
func (c *Config) Table() (*domain.GrowthTable, error) {
	return domain.NewGrowthTable(c.GrowthTable)
}

// Location returns the time zone used to decide what "today" is.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
