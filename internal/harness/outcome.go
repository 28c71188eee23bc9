package harness

import (
	"fmt"

	"github.com/deppfellow/issuetrack/internal/sqlerr"
)

type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeCode
	outcomeIntegrity
	outcomeData
	outcomeAny
)

// Outcome is what a row insert is expected to produce.
type Outcome struct {
	kind outcomeKind
	code sqlerr.Code
}

var (
	// Success expects the insert and its commit to succeed.
	Success = Outcome{kind: outcomeSuccess}

	// AnyError expects any failure, including ones raised before the
	// statement reached the server (unknown column, unencodable value).
	AnyError = Outcome{kind: outcomeAny}

	// AnyConstraint expects any SQLSTATE class 23 error.
	AnyConstraint = Outcome{kind: outcomeIntegrity}

	// DataException expects any SQLSTATE class 22 error (too long, bad format, out of range).
	DataException = Outcome{kind: outcomeData}

	UniqueViolation     = Fails(sqlerr.UniqueViolation)
	NotNullViolation    = Fails(sqlerr.NotNullViolation)
	ForeignKeyViolation = Fails(sqlerr.ForeignKeyViolation)
	CheckViolation      = Fails(sqlerr.CheckViolation)
)

// Fails expects a database error classified as code.
func Fails(code sqlerr.Code) Outcome {
	return Outcome{kind: outcomeCode, code: code}
}

// Matches reports whether err is the expected result.
func (o Outcome) Matches(err error) bool {
	switch o.kind {
	case outcomeSuccess:
		return err == nil
	case outcomeAny:
		return err != nil
	}

	sqlErr := sqlerr.Classify(err)
	if sqlErr == nil {
		return false
	}

	switch o.kind {
	case outcomeCode:
		return sqlErr.Code == o.code
	case outcomeIntegrity:
		return sqlErr.IsIntegrityViolation()
	case outcomeData:
		return sqlErr.IsDataException()
	}
	return false
}

func (o Outcome) String() string {
	switch o.kind {
	case outcomeSuccess:
		return "success"
	case outcomeAny:
		return "any error"
	case outcomeIntegrity:
		return "integrity constraint violation"
	case outcomeData:
		return "data exception"
	case outcomeCode:
		return string(o.code)
	}
	return fmt.Sprintf("outcome(%d)", o.kind)
}

// describe names what err actually was, for mismatch messages.
func describe(err error) string {
	if err == nil {
		return "success"
	}
	if sqlErr := sqlerr.Classify(err); sqlErr != nil {
		return sqlErr.Error()
	}
	return err.Error()
}
