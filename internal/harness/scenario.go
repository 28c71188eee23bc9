package harness

import (
	"fmt"

	"github.com/deppfellow/issuetrack/internal/validation"
)

// Scenario is a table, a column list and the rows to insert into it.
//
// Rows are inserted in order, each in its own transaction, so earlier rows
// can satisfy later foreign keys or collide with later unique keys.
type Scenario struct {
	Table   string   `validate:"required"`
	Columns []string `validate:"omitempty,dive,required"`
	Rows    []Row    `validate:"required,min=1"`
}

// Row is one set of values and the outcome expected when inserting it.
type Row struct {
	Values []any
	Expect Outcome
}

// Insert is one statement of a multi-row transaction (see Harness.RunTx).
type Insert struct {
	Table   string   `validate:"required"`
	Columns []string `validate:"omitempty,dive,required"`
	Values  []any    `validate:"required,min=1"`
}

// Validate checks the scenario shape before anything is sent to the store.
func (s Scenario) Validate() error {
	if err := validation.Struct(s); err != nil {
		return err
	}

	var custom validation.CustomValidationErrors
	for i, r := range s.Rows {
		if len(r.Values) == 0 {
			custom = append(custom, validation.CustomValidationError{
				Field:   fmt.Sprintf("rows[%d]", i),
				Message: "has no values",
			})
			continue
		}
		if s.Columns != nil && len(r.Values) != len(s.Columns) {
			custom = append(custom, validation.CustomValidationError{
				Field:   fmt.Sprintf("rows[%d]", i),
				Message: fmt.Sprintf("has %d values for %d columns", len(r.Values), len(s.Columns)),
			})
		}
	}
	if len(custom) > 0 {
		return custom
	}
	return nil
}

// Validate checks one insert of a transaction.
func (in Insert) Validate() error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	if in.Columns != nil && len(in.Values) != len(in.Columns) {
		return validation.CustomValidationErrors{{
			Field:   "values",
			Message: fmt.Sprintf("has %d values for %d columns", len(in.Values), len(in.Columns)),
		}}
	}
	return nil
}
