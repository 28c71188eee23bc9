// Package testutil provides helpers for tests that need a live PostgreSQL.
package testutil

import (
	"context"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/issuetrack/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// DatabaseURLEnv names the variable holding the test database DSN.
// Tests needing a database are skipped when it is unset.
const DatabaseURLEnv = "ISSUETRACK_TEST_DATABASE_URL"

// Logger returns a logger that writes through t.Log.
func Logger(t testing.TB) *zerolog.Logger {
	t.Helper()
	l := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return &l
}

// Provider returns a Provider bound to a fresh, uniquely named schema.
//
// Packages run in parallel against the same database, so every test gets its
// own schema through search_path. The schema is dropped in t.Cleanup.
func Provider(t testing.TB) *database.Provider {
	t.Helper()

	dsn := os.Getenv(DatabaseURLEnv)
	if dsn == "" {
		t.Skipf("%s not set; skipping database test", DatabaseURLEnv)
	}

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admin, err := pgx.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect test db: %v", err)
	}
	if _, err := admin.Exec(ctx, "CREATE SCHEMA "+pgx.Identifier{schema}.Sanitize()); err != nil {
		_ = admin.Close(ctx)
		t.Fatalf("create schema %s: %v", schema, err)
	}
	_ = admin.Close(ctx)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		conn, err := pgx.Connect(ctx, dsn)
		if err != nil {
			t.Logf("cleanup connect: %v", err)
			return
		}
		defer conn.Close(ctx)
		if _, err := conn.Exec(ctx, "DROP SCHEMA IF EXISTS "+pgx.Identifier{schema}.Sanitize()+" CASCADE"); err != nil {
			t.Logf("drop schema %s: %v", schema, err)
		}
	})

	p, err := database.NewWithDSN(withSearchPath(t, dsn, schema), Logger(t))
	if err != nil {
		t.Fatalf("provider: %v", err)
	}
	return p
}

// withSearchPath adds a search_path runtime parameter to a URL or keyword/value DSN.
func withSearchPath(t testing.TB, dsn, schema string) string {
	t.Helper()
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			t.Fatalf("parse %s: %v", DatabaseURLEnv, err)
		}
		q := u.Query()
		q.Set("search_path", schema)
		u.RawQuery = q.Encode()
		return u.String()
	}
	return dsn + " search_path=" + schema
}
