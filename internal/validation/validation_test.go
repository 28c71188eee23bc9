package validation

import (
	"testing"

	"github.com/deppfellow/issuetrack/internal/errs"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `validate:"required"`
	Items []string `validate:"min=1"`
	Mode  string   `validate:"omitempty,oneof=a b"`
}

func (s sample) Validate() error {
	return Struct(s)
}

type custom struct{}

func (custom) Validate() error {
	return CustomValidationErrors{{Field: "rows[0]", Message: "has 2 values for 3 columns"}}
}

func TestCheck_TagErrors(t *testing.T) {
	err := Check(sample{Mode: "c"})

	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, errs.KindValidation, appErr.Kind)
	require.ElementsMatch(t, []errs.FieldError{
		{Field: "name", Error: "is required"},
		{Field: "items", Error: "must contain at least 1 items"},
		{Field: "mode", Error: "must be one of: a b"},
	}, appErr.Fields)
}

func TestCheck_CustomErrors(t *testing.T) {
	err := Check(custom{})
	require.ErrorIs(t, err, errs.ErrValidation)

	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, []errs.FieldError{{Field: "rows[0]", Error: "has 2 values for 3 columns"}}, appErr.Fields)
}

func TestCheck_Valid(t *testing.T) {
	require.NoError(t, Check(sample{Name: "x", Items: []string{"a"}}))
}
