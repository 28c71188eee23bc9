// Package repository handles all interactions with the issue tracker tables.
//
// It contains the SQL for user lookups and issue queries and writes. Every
// operation opens its own connection through database.WithConn and closes
// it before returning; writes run in a transaction that commits on success
// and rolls back on any failure.
//
// Lookups return (nil, nil) when nothing matches. Writes return (false, err)
// with err an *errs.Error classified by sqlerr.HandleError.
package repository

import (
	"github.com/deppfellow/issuetrack/internal/app"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users  *UserRepository
	Issues *IssueRepository
}

// NewRepositories constructs the repository container from the application.
func NewRepositories(a *app.App) *Repositories {
	return &Repositories{
		Users:  NewUserRepository(a.DB),
		Issues: NewIssueRepository(a.DB, a.Config.Search),
	}
}
