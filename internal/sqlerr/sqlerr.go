// Package sqlerr specifically handles database driver errors.
//
// It parses SQLSTATE codes from the PostgreSQL driver, maps them into a
// small Code taxonomy the harness can assert on, and converts them into
// errs.Error values with machine codes and readable messages.
package sqlerr

import (
	"strconv"
	"strings"

	"github.com/jackc/pgerrcode"
)

// Code is the classified kind of a database error.
type Code string

const (
	Other                     Code = "other"
	UniqueViolation           Code = "unique_violation"
	ForeignKeyViolation       Code = "foreign_key_violation"
	NotNullViolation          Code = "not_null_violation"
	CheckViolation            Code = "check_violation"
	ExclusionViolation        Code = "exclusion_violation"
	RestrictViolation         Code = "restrict_violation"
	StringDataRightTruncation Code = "string_data_right_truncation"
	NumericValueOutOfRange    Code = "numeric_value_out_of_range"
	InvalidTextRepresentation Code = "invalid_text_representation"
	InvalidDatetimeFormat     Code = "invalid_datetime_format"
	DatetimeFieldOverflow     Code = "datetime_field_overflow"
	UndefinedColumn           Code = "undefined_column"
	UndefinedTable            Code = "undefined_table"
	RaiseException            Code = "raise_exception"
)

// MapCode maps a SQLSTATE into a Code. Unknown states map to Other.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case pgerrcode.UniqueViolation:
		return UniqueViolation
	case pgerrcode.ForeignKeyViolation:
		return ForeignKeyViolation
	case pgerrcode.NotNullViolation:
		return NotNullViolation
	case pgerrcode.CheckViolation:
		return CheckViolation
	case pgerrcode.ExclusionViolation:
		return ExclusionViolation
	case pgerrcode.RestrictViolation:
		return RestrictViolation
	case pgerrcode.StringDataRightTruncationDataException:
		return StringDataRightTruncation
	case pgerrcode.NumericValueOutOfRange:
		return NumericValueOutOfRange
	case pgerrcode.InvalidTextRepresentation:
		return InvalidTextRepresentation
	case pgerrcode.InvalidDatetimeFormat:
		return InvalidDatetimeFormat
	case pgerrcode.DatetimeFieldOverflow:
		return DatetimeFieldOverflow
	case pgerrcode.UndefinedColumn:
		return UndefinedColumn
	case pgerrcode.UndefinedTable:
		return UndefinedTable
	case pgerrcode.RaiseException:
		return RaiseException
	}
	return Other
}

// Severity mirrors the PostgreSQL message severity.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
	SeverityOther   Severity = "OTHER"
)

// MapSeverity maps the driver's severity string into a Severity.
func MapSeverity(severity string) Severity {
	switch s := Severity(strings.ToUpper(severity)); s {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return s
	}
	return SeverityOther
}

// Error is a structured view of a PostgreSQL error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	Detail         string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(" (SQLSTATE ")
	b.WriteString(e.DatabaseCode)
	b.WriteString("): ")
	b.WriteString(e.Message)
	if e.ConstraintName != "" {
		b.WriteString(" [constraint ")
		b.WriteString(strconv.Quote(e.ConstraintName))
		b.WriteString("]")
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// IsIntegrityViolation reports whether the error is in SQLSTATE class 23.
func (e *Error) IsIntegrityViolation() bool {
	return pgerrcode.IsIntegrityConstraintViolation(e.DatabaseCode)
}

// IsDataException reports whether the error is in SQLSTATE class 22.
func (e *Error) IsDataException() bool {
	return pgerrcode.IsDataException(e.DatabaseCode)
}
