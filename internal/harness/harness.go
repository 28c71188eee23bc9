package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/issuetrack/internal/config"
	"github.com/deppfellow/issuetrack/internal/database"
	"github.com/deppfellow/issuetrack/internal/validation"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Options controls teardown.
type Options struct {
	// DumpOnClose logs every table's rows before teardown.
	DumpOnClose bool

	// DropOnClose drops every discovered table when the harness closes.
	DropOnClose bool
}

// Harness drives one constraint-verification run over a single connection.
//
// It is not safe for concurrent use: a run is a sequence of statements on
// one connection, the same way a test case would issue them.
type Harness struct {
	conn    *pgx.Conn
	ddl     string
	tables  []string
	catalog *Catalog
	opts    Options
	log     zerolog.Logger
	closed  bool
}

// New discovers the tables in ddl, opens a connection and resets the schema.
//
// A DDL parse error is returned before any connection is opened.
func New(ctx context.Context, p *database.Provider, ddl string, opts Options) (*Harness, error) {
	tables, err := ParseTablesString(ddl)
	if err != nil {
		return nil, fmt.Errorf("discovering tables: %w", err)
	}
	if len(tables) == 0 {
		return nil, errors.New("discovering tables: ddl declares no tables")
	}

	conn, err := p.Open(ctx)
	if err != nil {
		return nil, err
	}

	h := &Harness{
		conn:   conn,
		ddl:    ddl,
		tables: tables,
		opts:   opts,
		log: p.Logger().With().
			Str("component", "harness").
			Str("run_id", uuid.NewString()).
			Logger(),
	}

	if err := h.Reset(ctx); err != nil {
		_ = conn.Close(context.WithoutCancel(ctx))
		return nil, err
	}

	return h, nil
}

// Tables returns the tables discovered in the DDL.
func (h *Harness) Tables() []string {
	return h.tables
}

// Catalog returns the identifier allow-list loaded by the last Reset.
func (h *Harness) Catalog() *Catalog {
	return h.catalog
}

// Reset drops every discovered table and recreates the schema from the DDL.
func (h *Harness) Reset(ctx context.Context) error {
	for _, table := range h.tables {
		if _, err := database.Exec(ctx, h.conn, buildDrop(table)); err != nil {
			return fmt.Errorf("drop table %s: %w", table, err)
		}
		h.log.Debug().Str("table", table).Msg("dropped table")
	}

	// No arguments: pgx uses the simple protocol, which accepts a multi-statement script.
	if _, err := h.conn.Exec(ctx, h.ddl); err != nil {
		return fmt.Errorf("create all tables from ddl: %w", err)
	}

	catalog, err := loadCatalog(ctx, h.conn, h.tables)
	if err != nil {
		return err
	}
	h.catalog = catalog

	h.log.Info().Strs("tables", h.tables).Msg("schema reset")
	return nil
}

// Run inserts every row of s, each in its own transaction, and returns the
// joined *MismatchError values for rows whose outcome was not expected.
//
// An invalid scenario (shape, not content) is returned as an errs.KindValidation
// error without touching the store.
func (h *Harness) Run(ctx context.Context, s Scenario) error {
	if err := validation.Check(s); err != nil {
		return fmt.Errorf("scenario %s: %w", s.Table, err)
	}

	var mismatches []error
	for i, row := range s.Rows {
		err := h.insertTx(ctx, Insert{Table: s.Table, Columns: s.Columns, Values: row.Values})
		if mm := h.check(s.Table, i, row.Values, row.Expect, err); mm != nil {
			mismatches = append(mismatches, mm)
		}
	}

	return errors.Join(mismatches...)
}

// RunTx executes inserts in one transaction and compares the first
// statement error, or the commit error, with expect.
//
// Use it for constraints deferred to commit time: the violation only
// surfaces when the transaction commits.
func (h *Harness) RunTx(ctx context.Context, expect Outcome, inserts ...Insert) error {
	if len(inserts) == 0 {
		return errors.New("run tx: no inserts")
	}
	for i, in := range inserts {
		if err := validation.Check(in); err != nil {
			return fmt.Errorf("insert %d into %s: %w", i, in.Table, err)
		}
	}

	err := h.insertTx(ctx, inserts...)

	var values []any
	for _, in := range inserts {
		values = append(values, in.Values...)
	}
	if mm := h.check(inserts[0].Table, 0, values, expect, err); mm != nil {
		return mm
	}
	return nil
}

// Insert runs one insert in its own transaction and returns its error.
func (h *Harness) Insert(ctx context.Context, table string, columns []string, values ...any) error {
	in := Insert{Table: table, Columns: columns, Values: values}
	if err := validation.Check(in); err != nil {
		return err
	}
	return h.insertTx(ctx, in)
}

// Exec runs an arbitrary statement on the harness connection.
func (h *Harness) Exec(ctx context.Context, sql string, args ...any) error {
	_, err := database.Exec(ctx, h.conn, sql, args...)
	return err
}

func (h *Harness) insertTx(ctx context.Context, inserts ...Insert) error {
	statements := make([]string, len(inserts))
	for i, in := range inserts {
		stmt, err := h.insertSQL(in)
		if err != nil {
			return err
		}
		statements[i] = stmt
	}

	return database.WithTx(ctx, h.conn, func(tx pgx.Tx) error {
		for i, in := range inserts {
			if _, err := tx.Exec(ctx, statements[i], in.Values...); err != nil {
				return err
			}
		}
		return nil
	})
}

// insertSQL resolves identifiers against the catalog and builds the statement.
func (h *Harness) insertSQL(in Insert) (string, error) {
	table, err := h.catalog.ResolveTable(in.Table)
	if err != nil {
		return "", err
	}
	columns, err := h.catalog.ResolveColumns(table, in.Columns)
	if err != nil {
		return "", err
	}
	return BuildInsert(table, columns, len(in.Values)), nil
}

func (h *Harness) check(table string, row int, values []any, expect Outcome, err error) error {
	event := h.log.Debug().
		Str("table", table).
		Int("row", row).
		Str("values", formatValues(values)).
		Str("expect", expect.String())
	if err != nil {
		event = event.Str("got", describe(err))
	}

	if expect.Matches(err) {
		event.Msg("insert row")
		return nil
	}

	event.Msg("insert row: unexpected outcome")
	return &MismatchError{Table: table, Row: row, Values: values, Expect: expect, Got: err}
}

// RowCount returns the number of rows in table.
func (h *Harness) RowCount(ctx context.Context, table string) (int64, error) {
	resolved, err := h.catalog.ResolveTable(table)
	if err != nil {
		return 0, err
	}
	n, _, err := database.QueryOne(ctx, h.conn, pgx.RowTo[int64],
		"SELECT count(*) FROM "+pgx.Identifier{resolved}.Sanitize())
	return n, err
}

// Dump returns every table's rows and logs them at debug level.
func (h *Harness) Dump(ctx context.Context) (map[string][]map[string]any, error) {
	out := make(map[string][]map[string]any, len(h.tables))
	for _, table := range h.tables {
		rows, err := database.QueryAll(ctx, h.conn, pgx.RowToMap,
			"SELECT * FROM "+pgx.Identifier{table}.Sanitize())
		if err != nil {
			return nil, fmt.Errorf("dump %s: %w", table, err)
		}
		out[table] = rows

		h.log.Debug().Str("table", table).Int("rows", len(rows)).Interface("contents", rows).Msg("table dump")
	}
	return out, nil
}

// Close tears the run down: optional dump, optional drop, connection close.
// It is safe to call more than once.
func (h *Harness) Close(ctx context.Context) error {
	if h.closed {
		return nil
	}
	h.closed = true

	var errList []error
	if h.opts.DumpOnClose {
		if _, err := h.Dump(ctx); err != nil {
			errList = append(errList, err)
		}
	}
	if h.opts.DropOnClose {
		for _, table := range h.tables {
			if _, err := database.Exec(ctx, h.conn, buildDrop(table)); err != nil {
				errList = append(errList, fmt.Errorf("drop table %s: %w", table, err))
			}
		}
	}
	if err := h.conn.Close(context.WithoutCancel(ctx)); err != nil {
		errList = append(errList, fmt.Errorf("closing connection: %w", err))
	}

	h.log.Debug().Msg("harness closed")
	return errors.Join(errList...)
}

// OptionsFromConfig maps the harness config block to Options.
func OptionsFromConfig(cfg config.HarnessConfig) Options {
	return Options{DumpOnClose: cfg.DumpOnClose, DropOnClose: cfg.DropOnClose}
}
