// Package validation contains the logic for validating inputs
// before they reach the database.
//
// It uses the `validator` library to enforce rules (like required
// fields or minimum lengths) defined in struct tags, and converts
// failures into errs.Error values with field-level details.
package validation
