// Package schema embeds the DDL scripts the module ships with.
//
// issuetracker.sql backs the repository; restaurant.sql is the ordering
// schema exercised by the constraint harness tests.
package schema

import (
	_ "embed"
)

//go:embed issuetracker.sql
var issueTracker string

//go:embed restaurant.sql
var restaurant string

// IssueTracker returns the DDL for the user and issue tables.
func IssueTracker() string {
	return issueTracker
}

// Restaurant returns the DDL for the restaurant-ordering schema.
func Restaurant() string {
	return restaurant
}
