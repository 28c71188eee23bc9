// Package errs defines the error types shared across the data-access layer.
//
// Its purpose is to give every failure a stable shape (a Kind, a machine
// code, a human message, optional field-level details) so callers can
// branch with errors.Is / errors.As instead of matching strings.
//
// - Classify failures into the taxonomy the repository and harness rely on.
// - Support field-level details for not-null and validation failures.
// - Play nicely with Go's standard errors package (Unwrap, Is).
package errs
