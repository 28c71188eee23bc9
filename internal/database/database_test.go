package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/deppfellow/issuetrack/internal/config"
	"github.com/deppfellow/issuetrack/internal/database"
	"github.com/deppfellow/issuetrack/internal/errs"
	"github.com/deppfellow/issuetrack/internal/logger"
	"github.com/deppfellow/issuetrack/internal/testutil"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN(t *testing.T) {
	dsn := database.BuildDSN(config.DatabaseConfig{
		Host:           "::1",
		Port:           5432,
		User:           "tracker",
		Password:       "pa:ss@word",
		Name:           "issues",
		SSLMode:        "disable",
		ConnectTimeout: 1500 * time.Millisecond,
	})

	require.Equal(t, "postgres://tracker:pa%3Ass%40word@[::1]:5432/issues?connect_timeout=2&sslmode=disable", dsn)

	cfg, err := pgx.ParseConfig(dsn)
	require.NoError(t, err)
	require.Equal(t, "pa:ss@word", cfg.Password)
	require.Equal(t, "issues", cfg.Database)
}

func TestBuildDSN_NoPassword(t *testing.T) {
	dsn := database.BuildDSN(config.DatabaseConfig{Host: "db", Port: 5433, User: "u", Name: "n", SSLMode: "require"})
	require.Equal(t, "postgres://u@db:5433/n?sslmode=require", dsn)
}

func TestNew_ParsesConfig(t *testing.T) {
	cfg := &config.Config{
		Primary:       config.Primary{Env: "local"},
		Database:      config.DatabaseConfig{Host: "localhost", Port: 5432, User: "u", Name: "n", SSLMode: "disable"},
		Observability: config.DefaultObservabilityConfig(),
	}
	log := zerolog.Nop()

	p, err := database.New(cfg, &log, &logger.LoggerService{})
	require.NoError(t, err)
	require.NotNil(t, p)
}

func TestOpen_Unreachable(t *testing.T) {
	log := zerolog.Nop()
	p, err := database.NewWithDSN("postgres://u@127.0.0.1:1/n?sslmode=disable&connect_timeout=1", &log)
	require.NoError(t, err)

	_, err = p.Open(context.Background())
	require.ErrorIs(t, err, errs.ErrConnectivity)
}

func TestNilLogger_DefaultsToNop(t *testing.T) {
	p, err := database.NewWithDSN("postgres://u@127.0.0.1:1/n?sslmode=disable&connect_timeout=1", nil)
	require.NoError(t, err)
	require.NotNil(t, p.Logger())

	_, err = p.Open(context.Background())
	require.ErrorIs(t, err, errs.ErrConnectivity)

	cfg := &config.Config{
		Primary:       config.Primary{Env: "local"},
		Database:      config.DatabaseConfig{Host: "localhost", Port: 5432, User: "u", Name: "n", SSLMode: "disable"},
		Observability: config.DefaultObservabilityConfig(),
	}
	p, err = database.New(cfg, nil, &logger.LoggerService{})
	require.NoError(t, err)
	require.NotNil(t, p.Logger())
}

func TestPrimitives(t *testing.T) {
	p := testutil.Provider(t)
	ctx := context.Background()

	err := database.WithConn(ctx, p, func(conn *pgx.Conn) error {
		_, err := database.Exec(ctx, conn, `CREATE TABLE widget (id INT PRIMARY KEY, name TEXT NOT NULL)`)
		require.NoError(t, err)

		err = database.WithTx(ctx, conn, func(tx pgx.Tx) error {
			n, err := database.Exec(ctx, tx, `INSERT INTO widget (id, name) VALUES ($1, $2), ($3, $4)`, 1, "a", 2, "b")
			require.EqualValues(t, 2, n)
			return err
		})
		require.NoError(t, err)

		// A failing fn rolls back.
		err = database.WithTx(ctx, conn, func(tx pgx.Tx) error {
			if _, err := database.Exec(ctx, tx, `INSERT INTO widget (id, name) VALUES (3, 'c')`); err != nil {
				return err
			}
			_, err := database.Exec(ctx, tx, `INSERT INTO widget (id, name) VALUES (4, NULL)`)
			return err
		})
		require.Error(t, err)

		names, err := database.QueryAll(ctx, conn, pgx.RowTo[string], `SELECT name FROM widget ORDER BY id`)
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b"}, names)

		name, found, err := database.QueryOne(ctx, conn, pgx.RowTo[string], `SELECT name FROM widget WHERE id = $1`, 2)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, "b", name)

		_, found, err = database.QueryOne(ctx, conn, pgx.RowTo[string], `SELECT name FROM widget WHERE id = $1`, 99)
		require.NoError(t, err)
		require.False(t, found)
		return nil
	})
	require.NoError(t, err)
}
