package harness

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/deppfellow/issuetrack/internal/errs"
)

// The name group is optional so that a CREATE TABLE line without a name
// still matches and can be reported, instead of a keyword being taken as
// the name.
var createTableRe = regexp.MustCompile(`(?i)create\s+table(?:\s+if\s+not\s+exists)?(?:\s+("(?:[^"]|"")+"|\w+))?`)

// ParseTables scans DDL line by line and returns the name of every table it
// creates, in declaration order and without duplicates.
//
// Any line containing CREATE TABLE (case-insensitive) must be followed by a
// table name on the same line; otherwise a KindParse error with the line
// number is returned. Comment lines are skipped. Unquoted names are folded
// to lower case and quoted names keep their case, as PostgreSQL resolves them.
func ParseTables(r io.Reader) ([]string, error) {
	var tables []string
	seen := map[string]bool{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		if !strings.Contains(strings.ToUpper(line), "CREATE TABLE") {
			continue
		}

		match := createTableRe.FindStringSubmatch(line)
		if match == nil || match[1] == "" {
			return nil, errs.NewParseError(lineNo, line)
		}

		name := normalizeIdentifier(match[1])
		if !seen[name] {
			seen[name] = true
			tables = append(tables, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ddl: %w", err)
	}

	return tables, nil
}

// ParseTablesString is ParseTables over a string.
func ParseTablesString(ddl string) ([]string, error) {
	return ParseTables(strings.NewReader(ddl))
}

// normalizeIdentifier applies PostgreSQL case folding: "Order" stays Order,
// Courier becomes courier.
func normalizeIdentifier(ident string) string {
	if len(ident) >= 2 && strings.HasPrefix(ident, `"`) && strings.HasSuffix(ident, `"`) {
		return strings.ReplaceAll(ident[1:len(ident)-1], `""`, `"`)
	}
	return strings.ToLower(ident)
}
