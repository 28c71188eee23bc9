package harness

import (
	"strings"
	"testing"

	"github.com/deppfellow/issuetrack/internal/errs"
	"github.com/deppfellow/issuetrack/internal/schema"
	"github.com/stretchr/testify/require"
)

func TestParseTables(t *testing.T) {
	ddl := `
-- CREATE TABLE commented_out (id INT);
CREATE TABLE Customer (
    CustomerId VARCHAR(10) PRIMARY KEY
);
create table if not exists staff (id int);
  Create Table "Order" (OrderId INT);
CREATE TABLE customer (id INT);
CREATE INDEX customer_idx ON Customer (CustomerId);
`
	tables, err := ParseTablesString(ddl)
	require.NoError(t, err)
	require.Equal(t, []string{"customer", "staff", "Order"}, tables)
}

func TestParseTables_UnparseableLine(t *testing.T) {
	cases := map[string]string{
		"name on next line":                "CREATE TABLE a (id INT);\nCREATE TABLE\n  b (id INT);\n",
		"if not exists, name on next line": "CREATE TABLE a (id INT);\nCREATE TABLE IF NOT EXISTS\n    courier (id INT);\n",
		"paren right after keyword":        "CREATE TABLE a (id INT);\nCREATE TABLE (id INT);\n",
	}

	for name, ddl := range cases {
		t.Run(name, func(t *testing.T) {
			tables, err := ParseTables(strings.NewReader(ddl))
			require.ErrorIs(t, err, errs.ErrParse)
			require.Contains(t, err.Error(), "line 2")
			require.Nil(t, tables)
		})
	}
}

func TestParseTables_IdentifierForms(t *testing.T) {
	ddl := `
CREATE TABLE "Order""Line" (id INT);
CREATE TABLE IF NOT EXISTS "Mixed Case" (id INT);
CREATE TABLE if_archive (id INT);
CREATE TABLE IF NOT EXISTS courier (id INT);
`
	tables, err := ParseTablesString(ddl)
	require.NoError(t, err)
	require.Equal(t, []string{`Order"Line`, "Mixed Case", "if_archive", "courier"}, tables)
}

func TestParseTables_Empty(t *testing.T) {
	tables, err := ParseTablesString("SELECT 1;")
	require.NoError(t, err)
	require.Empty(t, tables)
}

func TestParseTables_EmbeddedSchemas(t *testing.T) {
	tables, err := ParseTablesString(schema.Restaurant())
	require.NoError(t, err)
	require.Equal(t, []string{
		"customer", "staff", "courier", "delivery", "menu", "menuitem", "Order", "orderitem",
	}, tables)

	tables, err = ParseTablesString(schema.IssueTracker())
	require.NoError(t, err)
	require.Equal(t, []string{"a3_user", "a3_issue"}, tables)
}

func TestNormalizeIdentifier(t *testing.T) {
	require.Equal(t, "courier", normalizeIdentifier("Courier"))
	require.Equal(t, "Order", normalizeIdentifier(`"Order"`))
	require.Equal(t, `we"ird`, normalizeIdentifier(`"we""ird"`))
}
