package harness

import (
	"errors"
	"fmt"
	"testing"

	"github.com/deppfellow/issuetrack/internal/errs"
	"github.com/deppfellow/issuetrack/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func pgErr(code string) error {
	return fmt.Errorf("commit: %w", &pgconn.PgError{Code: code, Message: "rejected"})
}

func TestOutcomeMatches(t *testing.T) {
	unique := pgErr("23505")
	check := pgErr("23514")
	tooLong := pgErr("22001")
	plain := errors.New("cannot encode")

	require.True(t, Success.Matches(nil))
	require.False(t, Success.Matches(unique))

	require.True(t, UniqueViolation.Matches(unique))
	require.False(t, UniqueViolation.Matches(check))
	require.False(t, UniqueViolation.Matches(nil))
	require.False(t, UniqueViolation.Matches(plain))

	require.True(t, CheckViolation.Matches(check))
	require.True(t, Fails(sqlerr.StringDataRightTruncation).Matches(tooLong))

	require.True(t, AnyConstraint.Matches(unique))
	require.True(t, AnyConstraint.Matches(check))
	require.False(t, AnyConstraint.Matches(tooLong))

	require.True(t, DataException.Matches(tooLong))
	require.False(t, DataException.Matches(unique))

	require.True(t, AnyError.Matches(plain))
	require.True(t, AnyError.Matches(errs.NewValidationError("unknown column", nil)))
	require.False(t, AnyError.Matches(nil))
}

func TestOutcomeString(t *testing.T) {
	require.Equal(t, "success", Success.String())
	require.Equal(t, "not_null_violation", NotNullViolation.String())
	require.Equal(t, "data exception", DataException.String())
}

func TestMismatchError(t *testing.T) {
	cause := pgErr("23505")
	mm := &MismatchError{Table: "courier", Row: 1, Values: []any{"1", nil, 42}, Expect: Success, Got: cause}

	require.Contains(t, mm.Error(), `courier row 1 ("1", NULL, 42): expected success, got unique_violation`)
	require.Equal(t, sqlerr.UniqueViolation, sqlerr.ErrCode(mm))

	none := &MismatchError{Table: "courier", Values: []any{"1"}, Expect: NotNullViolation}
	require.Contains(t, none.Error(), "expected not_null_violation, got success")
}
