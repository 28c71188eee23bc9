package harness

import (
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// BuildInsert builds a parameterized INSERT for n values.
//
//	BuildInsert("courier", []string{"courierid", "name"}, 2)
//	  => INSERT INTO "courier" ("courierid", "name") VALUES ($1, $2)
//
// A nil columns slice omits the column list. Identifiers are quoted but not
// checked; callers resolve them against the catalog first.
func BuildInsert(table string, columns []string, n int) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(pgx.Identifier{table}.Sanitize())

	if columns != nil {
		b.WriteString(" (")
		for i, c := range columns {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(pgx.Identifier{c}.Sanitize())
		}
		b.WriteString(")")
	}

	if n == 0 {
		b.WriteString(" DEFAULT VALUES")
		return b.String()
	}

	b.WriteString(" VALUES (")
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteString(", ")
		}
		b.WriteString("$")
		b.WriteString(strconv.Itoa(i))
	}
	b.WriteString(")")

	return b.String()
}

// buildDrop builds the DROP statement used by Reset and Close.
func buildDrop(table string) string {
	return "DROP TABLE IF EXISTS " + pgx.Identifier{table}.Sanitize() + " CASCADE"
}
