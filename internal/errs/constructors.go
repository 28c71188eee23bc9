package errs

import "fmt"

// NewConnectivityError wraps a failure to reach the store.
func NewConnectivityError(err error) *Error {
	return &Error{
		Kind:    KindConnectivity,
		Code:    MakeUpperCaseWithUnderscores("connection failed"),
		Message: "could not connect to the database",
		Err:     err,
	}
}

// NewConstraintError creates an error for a statement the store rejected.
//
// code is optional: when nil the code defaults to "CONSTRAINT_VIOLATION".
// fields carries per-column details (e.g. for not-null violations).
func NewConstraintError(message string, code *string, fields []FieldError, err error) *Error {
	formattedCode := MakeUpperCaseWithUnderscores("constraint violation")
	if code != nil {
		formattedCode = *code
	}

	return &Error{
		Kind:    KindConstraint,
		Code:    formattedCode,
		Message: message,
		Fields:  fields,
		Err:     err,
	}
}

// NewParseError reports a DDL line whose table name could not be extracted.
func NewParseError(line int, text string) *Error {
	return &Error{
		Kind:    KindParse,
		Code:    MakeUpperCaseWithUnderscores("ddl parse error"),
		Message: fmt.Sprintf("could not parse table name on line %d: %q", line, text),
	}
}

// NewNoRowsAffectedError reports a write that matched nothing.
//
// entity names what was targeted (e.g. "issue 42").
func NewNoRowsAffectedError(entity string) *Error {
	return &Error{
		Kind:    KindNoRowsAffected,
		Code:    MakeUpperCaseWithUnderscores("no rows affected"),
		Message: fmt.Sprintf("%s was not changed: no matching row", entity),
	}
}

// NewNotFoundError creates a not-found error.
//
// Repository lookups return (nil, nil) for a miss; this is for callers
// (CLI, harness) that need to surface the miss as an error.
func NewNotFoundError(message string, code *string) *Error {
	formattedCode := MakeUpperCaseWithUnderscores("not found")
	if code != nil {
		formattedCode = *code
	}

	return &Error{
		Kind:    KindNotFound,
		Code:    formattedCode,
		Message: message,
	}
}

// NewValidationError creates a validation error with field details.
func NewValidationError(message string, fields []FieldError) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    MakeUpperCaseWithUnderscores("validation failed"),
		Message: message,
		Fields:  fields,
	}
}

// NewInternalError wraps an unexpected failure.
//
// The message is generic; the cause stays available through Unwrap.
func NewInternalError(err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Code:    MakeUpperCaseWithUnderscores("internal error"),
		Message: "an unexpected database error occurred",
		Err:     err,
	}
}
