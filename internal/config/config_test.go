package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// clearEnv makes sure no ISSUETRACK_ variable from the host leaks into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, EnvPrefix) {
			// Setenv registers the restore; Unsetenv removes it for this test.
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
}

func writeCredentials(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ISSUETRACK_DATABASE__USER", "tracker")
	t.Setenv("ISSUETRACK_DATABASE__NAME", "issues")
	t.Setenv("ISSUETRACK_DATABASE__PORT", "6543")
	t.Setenv("ISSUETRACK_SEARCH__CASE_INSENSITIVE", "true")
	t.Setenv("ISSUETRACK_HARNESS__DROP_ON_CLOSE", "true")

	cfg, err := Load(Options{})
	require.NoError(t, err)

	require.Equal(t, "localhost", cfg.Database.Host)
	require.Equal(t, 6543, cfg.Database.Port)
	require.Equal(t, "tracker", cfg.Database.User)
	require.Equal(t, "issues", cfg.Database.Name)
	require.Equal(t, "disable", cfg.Database.SSLMode)
	require.Equal(t, 10*time.Second, cfg.Database.ConnectTimeout)
	require.True(t, cfg.Search.CaseInsensitive)
	require.True(t, cfg.Harness.DropOnClose)
	require.False(t, cfg.Harness.DumpOnClose)

	require.NotNil(t, cfg.Observability)
	require.Equal(t, ServiceName, cfg.Observability.ServiceName)
	require.Equal(t, "local", cfg.Observability.Environment)
}

func TestLoad_CredentialsFileThenEnvOverride(t *testing.T) {
	clearEnv(t)
	path := writeCredentials(t, `{
		"host": "db.internal",
		"port": 5433,
		"database": "comp9120",
		"user": "student",
		"password": "s3cr:t@"
	}`)
	t.Setenv("ISSUETRACK_DATABASE__HOST", "override.internal")

	cfg, err := Load(Options{CredentialsFile: path})
	require.NoError(t, err)

	require.Equal(t, "override.internal", cfg.Database.Host)
	require.Equal(t, 5433, cfg.Database.Port)
	require.Equal(t, "comp9120", cfg.Database.Name)
	require.Equal(t, "student", cfg.Database.User)
	require.Equal(t, "s3cr:t@", cfg.Database.Password)
}

func TestLoad_DbnameAlias(t *testing.T) {
	clearEnv(t)
	path := writeCredentials(t, `{"dbname": "tracker", "user": "u"}`)

	cfg, err := Load(Options{CredentialsFile: path})
	require.NoError(t, err)
	require.Equal(t, "tracker", cfg.Database.Name)
}

func TestLoad_MissingRequired(t *testing.T) {
	clearEnv(t)
	t.Setenv("ISSUETRACK_DATABASE__USER", "tracker")

	_, err := Load(Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Name")
}

func TestLoad_MissingCredentialsFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(Options{CredentialsFile: filepath.Join(t.TempDir(), "nope.json")})
	require.Error(t, err)
}

func TestObservabilityValidate(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	require.NoError(t, cfg.Validate())

	cfg.Logging.Level = "inf"
	require.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.Format = "xml"
	require.Error(t, cfg.Validate())

	cfg = DefaultObservabilityConfig()
	cfg.Logging.SlowQueryThreshold = -time.Second
	require.Error(t, cfg.Validate())
}

func TestGetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""
	cfg.Environment = "production"
	require.Equal(t, "info", cfg.GetLogLevel())
	require.True(t, cfg.IsProduction())

	cfg.Environment = "local"
	require.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "warn"
	require.Equal(t, "warn", cfg.GetLogLevel())
	require.False(t, cfg.NewRelicEnabled())
}

func TestDatabaseConfigString_MasksPassword(t *testing.T) {
	c := DatabaseConfig{Host: "h", Port: 5432, User: "u", Password: "hunter2", Name: "n", SSLMode: "disable"}
	require.NotContains(t, c.String(), "hunter2")
}
