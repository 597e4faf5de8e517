package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/MAKHFIRAT2408/food/internal/entity"
	"github.com/MAKHFIRAT2408/food/internal/usecase"
)

// MySQLUserDirectory resolves user ids to roles. Credentials and sessions
// are owned by the auth service; only id, username and role live here.
type MySQLUserDirectory struct{ db *sql.DB }

func NewMySQLUserDirectory(db *sql.DB) *MySQLUserDirectory { return &MySQLUserDirectory{db: db} }

func (r *MySQLUserDirectory) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, `
SELECT id, username, role FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("user %d not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

var _ usecase.UserDirectory = (*MySQLUserDirectory)(nil)
