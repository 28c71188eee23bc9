package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the coarse category of a failure.
type Kind string

const (
	// KindConnectivity means a connection could not be established.
	KindConnectivity Kind = "connectivity"

	// KindConstraint means the store rejected a statement (unique, not-null,
	// foreign key, check, or a data exception on a column value).
	KindConstraint Kind = "constraint"

	// KindParse means the DDL table-name extraction failed.
	KindParse Kind = "parse"

	// KindNoRowsAffected means a write completed without error but changed nothing.
	KindNoRowsAffected Kind = "no_rows_affected"

	// KindNotFound means a lookup matched no rows.
	KindNotFound Kind = "not_found"

	// KindValidation means an input was rejected before reaching the store.
	KindValidation Kind = "validation"

	// KindInternal is everything else.
	KindInternal Kind = "internal"
)

// FieldError represents a field-level error.
// Example:
//
//	{ "field": "title", "error": "is required" }
type FieldError struct {
	// Field is the column or struct field the error relates to (e.g. "title").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// Error is the main custom error type of the module.
//
// Fields:
//   - Kind: taxonomy bucket, used by Is.
//   - Code: machine-friendly code (e.g. "ISSUE_REQUIRED").
//   - Message: human-friendly message.
//   - Fields: list of per-field errors.
//   - Err: the underlying cause, if any.
type Error struct {
	Kind    Kind         `json:"kind"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`

	Err error `json:"-"`
}

// Error makes *Error satisfy the built-in `error` interface.
//
// The cause is appended so logs keep the driver detail while Message
// stays presentable on its own.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
//
// This lets callers compare against the sentinels below:
//
//	if errors.Is(err, errs.ErrNoRowsAffected) { ... }
//
// A target with an empty Kind matches any *Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == "" || t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrConnectivity   = &Error{Kind: KindConnectivity}
	ErrConstraint     = &Error{Kind: KindConstraint}
	ErrParse          = &Error{Kind: KindParse}
	ErrNoRowsAffected = &Error{Kind: KindNoRowsAffected}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrValidation     = &Error{Kind: KindValidation}
)

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"no rows affected" -> "NO_ROWS_AFFECTED"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

// KindOf returns the Kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
