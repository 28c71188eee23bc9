package repository

import (
	"context"
	"fmt"
	"regexp"

	"github.com/deppfellow/issuetrack/internal/config"
	"github.com/deppfellow/issuetrack/internal/database"
	"github.com/deppfellow/issuetrack/internal/errs"
	"github.com/deppfellow/issuetrack/internal/model"
	"github.com/deppfellow/issuetrack/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// issueSelect yields the model.Issue shape: raw references plus joined usernames.
const issueSelect = `
	SELECT i.issue_id
		, i.title
		, i.creator AS creator_id
		, c.username AS creator
		, i.resolver AS resolver_id
		, r.username AS resolver
		, i.verifier AS verifier_id
		, v.username AS verifier
		, i.description
	FROM a3_issue AS i
	JOIN a3_user AS c ON i.creator = c.user_id
	LEFT JOIN a3_user AS r ON i.resolver = r.user_id
	LEFT JOIN a3_user AS v ON i.verifier = v.user_id
`

const (
	insertIssue = `
		INSERT INTO a3_issue (title, creator, resolver, verifier, description)
		VALUES ($1, $2, $3, $4, $5)
	`

	updateIssue = `
		UPDATE a3_issue
		SET title = $1,
			creator = $2,
			resolver = $3,
			verifier = $4,
			description = $5
		WHERE issue_id = $6
	`
)

var wrappedPattern = regexp.MustCompile(`^%.*%$`)

type IssueRepository struct {
	db     *database.Provider
	search config.SearchConfig
}

func NewIssueRepository(db *database.Provider, search config.SearchConfig) *IssueRepository {
	return &IssueRepository{db: db, search: search}
}

// FindIssuesForUser lists the issues the user created, resolves or
// verifies, ordered by title.
func (r *IssueRepository) FindIssuesForUser(ctx context.Context, userID int64) ([]model.Issue, error) {
	return r.findAll(ctx, issueSelect+`
		WHERE $1 IN (i.creator, i.resolver, i.verifier)
		ORDER BY i.title, i.issue_id`, userID)
}

// SearchIssuesByTitle lists issues whose title matches pattern, ordered by title.
//
// The pattern is wrapped as %pattern% unless it already starts and ends
// with %. Matching uses LIKE, or ILIKE when search.case_insensitive is set.
func (r *IssueRepository) SearchIssuesByTitle(ctx context.Context, pattern string) ([]model.Issue, error) {
	op := "LIKE"
	if r.search.CaseInsensitive {
		op = "ILIKE"
	}
	return r.findAll(ctx, issueSelect+`
		WHERE i.title `+op+` $1
		ORDER BY i.title, i.issue_id`, WrapPattern(pattern))
}

// GetIssue returns the issue with this id, or nil.
func (r *IssueRepository) GetIssue(ctx context.Context, issueID int64) (*model.Issue, error) {
	var (
		issue model.Issue
		found bool
	)
	err := database.WithConn(ctx, r.db, func(conn *pgx.Conn) error {
		var err error
		issue, found, err = database.QueryOne(ctx, conn, pgx.RowToStructByName[model.Issue],
			issueSelect+` WHERE i.issue_id = $1`, issueID)
		return err
	})
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	if !found {
		return nil, nil
	}
	return &issue, nil
}

// AddIssue inserts one issue.
//
// A rejected insert (missing title or creator, unknown user reference,
// value too long) returns false with a KindConstraint error and nothing is
// committed.
func (r *IssueRepository) AddIssue(ctx context.Context, in model.IssueInput) (bool, error) {
	return r.write(ctx, "add issue", func(tx pgx.Tx) (int64, error) {
		return database.Exec(ctx, tx, insertIssue, in.Args()...)
	}, func() error {
		return errs.NewNoRowsAffectedError("new issue")
	})
}

// UpdateIssue overwrites every writable field of the issue with this id.
//
// When no row has the id, it returns false and errs.ErrNoRowsAffected and
// the transaction is rolled back.
func (r *IssueRepository) UpdateIssue(ctx context.Context, issueID int64, in model.IssueInput) (bool, error) {
	return r.write(ctx, "update issue", func(tx pgx.Tx) (int64, error) {
		return database.Exec(ctx, tx, updateIssue, append(in.Args(), issueID)...)
	}, func() error {
		return errs.NewNoRowsAffectedError(fmt.Sprintf("issue %d", issueID))
	})
}

func (r *IssueRepository) findAll(ctx context.Context, query string, args ...any) ([]model.Issue, error) {
	var issues []model.Issue
	err := database.WithConn(ctx, r.db, func(conn *pgx.Conn) error {
		var err error
		issues, err = database.QueryAll(ctx, conn, pgx.RowToStructByName[model.Issue], query, args...)
		return err
	})
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return issues, nil
}

// write runs exec in a transaction. Zero affected rows is a failure:
// noRows builds the error and returning it rolls the transaction back.
func (r *IssueRepository) write(ctx context.Context, op string, exec func(pgx.Tx) (int64, error), noRows func() error) (bool, error) {
	err := database.WithConn(ctx, r.db, func(conn *pgx.Conn) error {
		return database.WithTx(ctx, conn, func(tx pgx.Tx) error {
			n, err := exec(tx)
			if err != nil {
				return err
			}
			if n == 0 {
				return noRows()
			}
			return nil
		})
	})
	if err != nil {
		err = sqlerr.HandleError(err)
		r.db.Logger().Warn().Err(err).Str("operation", op).Msg("write rejected")
		return false, err
	}
	return true, nil
}

// WrapPattern turns a search term into a LIKE pattern: term becomes %term%,
// a pattern already wrapped in % is used as is.
func WrapPattern(pattern string) string {
	if wrappedPattern.MatchString(pattern) {
		return pattern
	}
	return "%" + pattern + "%"
}
