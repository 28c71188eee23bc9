// Package harness verifies schema constraints by submitting inserts and
// asserting which ones the database rejects.
//
// A run follows a fixed protocol:
//
//  1. ParseTables discovers table names from the DDL script.
//  2. Reset drops every discovered table (CASCADE) and re-executes the DDL,
//     so each test starts from an empty schema.
//  3. Run submits a Scenario: one parameterized INSERT per row, each in its
//     own transaction, comparing the statement or commit error with the
//     row's expected Outcome. RunTx groups inserts into one transaction for
//     constraints deferred to commit time.
//  4. Close optionally dumps every table, drops them, and closes the connection.
//
// Table and column names cannot be bound as parameters, so every identifier
// is checked against the catalog loaded after Reset and quoted before it is
// interpolated into SQL text.
package harness
