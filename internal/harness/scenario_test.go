package harness

import (
	"testing"

	"github.com/deppfellow/issuetrack/internal/errs"
	"github.com/deppfellow/issuetrack/internal/validation"
	"github.com/stretchr/testify/require"
)

func TestScenarioValidate(t *testing.T) {
	err := validation.Check(Scenario{})
	require.ErrorIs(t, err, errs.ErrValidation)

	err = validation.Check(Scenario{
		Table:   "courier",
		Columns: []string{"courierid", "name"},
		Rows: []Row{
			{Values: []any{"1", "abdul"}, Expect: Success},
			{Values: []any{"2"}, Expect: Success},
			{Expect: Success},
		},
	})
	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, []errs.FieldError{
		{Field: "rows[1]", Error: "has 1 values for 2 columns"},
		{Field: "rows[2]", Error: "has no values"},
	}, appErr.Fields)

	require.NoError(t, validation.Check(Scenario{
		Table: "courier",
		Rows:  []Row{{Values: []any{"1", "abdul", nil, "0487888888"}, Expect: Success}},
	}))
}

func TestInsertValidate(t *testing.T) {
	require.Error(t, validation.Check(Insert{Table: "staff"}))
	require.Error(t, validation.Check(Insert{Table: "staff", Columns: []string{"a", "b"}, Values: []any{1}}))
	require.NoError(t, validation.Check(Insert{Table: "staff", Values: []any{1}}))
}
