package repository

import (
	"context"

	"github.com/deppfellow/issuetrack/internal/database"
	"github.com/deppfellow/issuetrack/internal/model"
	"github.com/deppfellow/issuetrack/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const userColumns = `user_id, username, firstname, lastname`

type UserRepository struct {
	db *database.Provider
}

func NewUserRepository(db *database.Provider) *UserRepository {
	return &UserRepository{db: db}
}

// FindUserByUsername returns the user with exactly this username, or nil.
func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM a3_user WHERE username = $1`, username)
}

// FindUserByID returns the user with this id, or nil.
func (r *UserRepository) FindUserByID(ctx context.Context, userID int64) (*model.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM a3_user WHERE user_id = $1`, userID)
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...any) (*model.User, error) {
	var (
		user  model.User
		found bool
	)
	err := database.WithConn(ctx, r.db, func(conn *pgx.Conn) error {
		var err error
		user, found, err = database.QueryOne(ctx, conn, pgx.RowToStructByName[model.User], query, args...)
		return err
	})
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}
