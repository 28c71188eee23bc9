package harness

import (
	"fmt"
	"strings"
)

// MismatchError reports a row whose insert did not produce the expected outcome.
type MismatchError struct {
	Table  string
	Row    int
	Values []any
	Expect Outcome
	Got    error
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s row %d %s: expected %s, got %s",
		e.Table, e.Row, formatValues(e.Values), e.Expect, describe(e.Got))
}

func (e *MismatchError) Unwrap() error {
	return e.Got
}

// formatValues renders values the way they would appear in a VALUES list.
func formatValues(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		switch x := v.(type) {
		case nil:
			parts[i] = "NULL"
		case string:
			parts[i] = fmt.Sprintf("%q", x)
		default:
			parts[i] = fmt.Sprintf("%v", x)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
