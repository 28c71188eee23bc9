// Package config manages configuration and database credentials.
//
// It layers three sources, later ones winning:
//   - built-in defaults
//   - an optional JSON credentials file (psycopg-style keys)
//   - environment variables (optionally from a `.env` file)
//
// and validates that required values are present so the process fails
// fast on bad or missing credentials.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists in the working directory,
	// it is loaded into the process env before any key is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read with the ISSUETRACK_ prefix. The prefix is removed,
	the rest is lowercased and "__" becomes the nesting delimiter:

		ISSUETRACK_DATABASE__HOST             -> database.host
		ISSUETRACK_DATABASE__SSL_MODE         -> database.ssl_mode
		ISSUETRACK_SEARCH__CASE_INSENSITIVE   -> search.case_insensitive
*/

// EnvPrefix is the prefix for every environment key.
const EnvPrefix = "ISSUETRACK_"

// Config is the root configuration object.
//
// The `koanf:"..."` tags specify where koanf maps values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Search        SearchConfig         `koanf:"search"`
	Harness       HarnessConfig        `koanf:"harness"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development test production"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
//
// There is deliberately no pool tuning here: each operation opens and
// closes its own connection.
type DatabaseConfig struct {
	Host           string        `koanf:"host" validate:"required"`
	Port           int           `koanf:"port" validate:"required,min=1,max=65535"`
	User           string        `koanf:"user" validate:"required"`
	Password       string        `koanf:"password"`
	Name           string        `koanf:"name" validate:"required"`
	SSLMode        string        `koanf:"ssl_mode" validate:"required,oneof=disable allow prefer require verify-ca verify-full"`
	ConnectTimeout time.Duration `koanf:"connect_timeout" validate:"min=0"`
}

// SearchConfig controls title search.
type SearchConfig struct {
	// CaseInsensitive switches title search from LIKE to ILIKE.
	CaseInsensitive bool `koanf:"case_insensitive"`
}

// HarnessConfig controls the schema constraint harness.
type HarnessConfig struct {
	// DDLPath is the schema file used by the CLI `schema` commands.
	DDLPath string `koanf:"ddl_path"`

	// DumpOnClose logs every table's rows before teardown.
	DumpOnClose bool `koanf:"dump_on_close"`

	// DropOnClose drops all discovered tables when the harness closes.
	DropOnClose bool `koanf:"drop_on_close"`
}

// Options selects the optional sources for Load.
type Options struct {
	// CredentialsFile is a JSON file with host/port/database/user/password.
	// Empty means "environment only".
	CredentialsFile string
}

// defaults are loaded first so every other source only needs to override.
func defaults() map[string]any {
	return map[string]any{
		"primary.env":              "local",
		"database.host":            "localhost",
		"database.port":            5432,
		"database.ssl_mode":        "disable",
		"database.connect_timeout": "10s",
		"search.case_insensitive":  false,
		"harness.ddl_path":         "ddl.sql",
		"harness.dump_on_close":    false,
		"harness.drop_on_close":    false,
	}
}

// Load reads defaults, the optional credentials file and the environment,
// unmarshals them into Config, validates it and applies observability defaults.
func Load(opts Options) (*Config, error) {
	// The "." is the key-path delimiter koanf uses to represent nesting.
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading config defaults: %w", err)
	}

	if opts.CredentialsFile != "" {
		creds, err := loadCredentials(opts.CredentialsFile)
		if err != nil {
			return nil, err
		}
		if err := k.MergeAt(creds, "database"); err != nil {
			return nil, fmt.Errorf("merging credentials: %w", err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name is fixed; environment always follows primary.env.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// loadCredentials reads a psycopg-style JSON credentials file:
//
//	{"host": "db", "port": 5432, "database": "tracker", "user": "u", "password": "p"}
//
// "database" and "dbname" are both accepted for the database name.
func loadCredentials(path string) (*koanf.Koanf, error) {
	ck := koanf.New(".")
	if err := ck.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, fmt.Errorf("loading credentials file %s: %w", path, err)
	}

	for _, alias := range []string{"database", "dbname"} {
		if !ck.Exists(alias) {
			continue
		}
		if err := ck.Set("name", ck.String(alias)); err != nil {
			return nil, fmt.Errorf("mapping credentials key %s: %w", alias, err)
		}
		ck.Delete(alias)
	}

	return ck, nil
}

// String returns a representation of the database target with the password masked.
func (c DatabaseConfig) String() string {
	return fmt.Sprintf("postgres://%s:***@%s:%d/%s?sslmode=%s", c.User, c.Host, c.Port, c.Name, c.SSLMode)
}
