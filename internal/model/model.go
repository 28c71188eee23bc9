// Package model holds the plain records mapped from result rows.
//
// The `db` tags are the result column names; rows are mapped with
// pgx.RowToStructByName so a query and its record must agree on names.
package model
