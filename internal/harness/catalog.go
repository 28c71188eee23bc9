package harness

import (
	"context"
	"fmt"

	"github.com/deppfellow/issuetrack/internal/database"
	"github.com/deppfellow/issuetrack/internal/errs"
	"github.com/jackc/pgx/v5"
)

// Catalog is the identifier allow-list: the discovered tables and the
// columns PostgreSQL reports for them after Reset.
type Catalog struct {
	tables  []string
	columns map[string][]string
}

type columnRow struct {
	TableName  string `db:"table_name"`
	ColumnName string `db:"column_name"`
}

const catalogQuery = `
	SELECT table_name::text AS table_name, column_name::text AS column_name
	FROM information_schema.columns
	WHERE table_schema = current_schema()
	  AND table_name::text = ANY($1::text[])
	ORDER BY table_name, ordinal_position
`

// loadCatalog reads column names for tables and fails if a discovered table
// does not exist after the DDL ran.
func loadCatalog(ctx context.Context, q database.Querier, tables []string) (*Catalog, error) {
	rows, err := database.QueryAll(ctx, q, pgx.RowToStructByName[columnRow], catalogQuery, tables)
	if err != nil {
		return nil, fmt.Errorf("loading column catalog: %w", err)
	}

	c := &Catalog{tables: tables, columns: make(map[string][]string, len(tables))}
	for _, r := range rows {
		c.columns[r.TableName] = append(c.columns[r.TableName], r.ColumnName)
	}
	for _, t := range tables {
		if len(c.columns[t]) == 0 {
			return nil, fmt.Errorf("table %q is declared in the DDL but missing after reset", t)
		}
	}
	return c, nil
}

// Tables returns the discovered table names.
func (c *Catalog) Tables() []string {
	return c.tables
}

// Columns returns the column names of table in ordinal order.
func (c *Catalog) Columns(table string) []string {
	return c.columns[table]
}

// ResolveTable maps a scenario table name to its catalog name.
//
// Exact matches win; otherwise the name is folded the way PostgreSQL would
// fold an unquoted identifier.
func (c *Catalog) ResolveTable(name string) (string, error) {
	if _, ok := c.columns[name]; ok {
		return name, nil
	}
	folded := normalizeIdentifier(name)
	if _, ok := c.columns[folded]; ok {
		return folded, nil
	}
	return "", errs.NewValidationError(
		fmt.Sprintf("table %q is not declared in the schema", name),
		[]errs.FieldError{{Field: "table", Error: "unknown table"}},
	)
}

// ResolveColumns maps scenario column names to catalog names for table.
// A nil slice stays nil (INSERT without column list).
func (c *Catalog) ResolveColumns(table string, columns []string) ([]string, error) {
	if columns == nil {
		return nil, nil
	}

	known := c.columns[table]
	resolved := make([]string, len(columns))
	var fields []errs.FieldError

	for i, col := range columns {
		name, ok := lookupColumn(known, col)
		if !ok {
			fields = append(fields, errs.FieldError{Field: col, Error: "unknown column"})
			continue
		}
		resolved[i] = name
	}

	if len(fields) > 0 {
		return nil, errs.NewValidationError(fmt.Sprintf("unknown columns for table %q", table), fields)
	}
	return resolved, nil
}

func lookupColumn(known []string, col string) (string, bool) {
	folded := normalizeIdentifier(col)
	for _, k := range known {
		if k == col {
			return k, true
		}
	}
	for _, k := range known {
		if k == folded {
			return k, true
		}
	}
	return "", false
}
