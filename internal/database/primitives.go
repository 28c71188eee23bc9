package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of *pgx.Conn and pgx.Tx used by the primitives.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// QueryAll runs a read statement and maps every row with scan.
func QueryAll[T any](ctx context.Context, q Querier, scan pgx.RowToFunc[T], sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scan)
}

// QueryOne runs a read statement and maps the first row.
//
// found is false, with a nil error, when nothing matched.
func QueryOne[T any](ctx context.Context, q Querier, scan pgx.RowToFunc[T], sql string, args ...any) (value T, found bool, err error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return value, false, err
	}
	value, err = pgx.CollectOneRow(rows, scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return value, false, nil
	}
	if err != nil {
		return value, false, err
	}
	return value, true, nil
}

// Exec runs a write statement and returns the number of rows affected.
func Exec(ctx context.Context, q Querier, sql string, args ...any) (int64, error) {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// WithConn opens a connection, runs fn and closes the connection on every
// exit path, including a panic in fn.
func WithConn(ctx context.Context, p *Provider, fn func(conn *pgx.Conn) error) (err error) {
	conn, err := p.Open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// Close must still run if ctx was cancelled mid-operation.
		if cerr := conn.Close(context.WithoutCancel(ctx)); cerr != nil && err == nil {
			err = fmt.Errorf("closing connection: %w", cerr)
		}
	}()

	return fn(conn)
}

// WithTx runs fn inside a transaction on conn.
//
// The transaction is committed when fn returns nil and rolled back
// otherwise. A commit failure (e.g. a deferred constraint) is returned.
func WithTx(ctx context.Context, conn *pgx.Conn, fn func(tx pgx.Tx) error) error {
	return pgx.BeginFunc(ctx, conn, fn)
}
