package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// UserRepositoryPG implements domain.UserRepository backed by PostgreSQL.
type UserRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(sql infra.SQLExecutor) *UserRepositoryPG {
	return &UserRepositoryPG{sql: sql}
}

// Create inserts a new user. A username or email collision maps to
// domain.ErrInvalidInput.
func (r *UserRepositoryPG) Create(ctx context.Context, user *domain.User) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertUser,
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: username or email already taken", domain.ErrInvalidInput)
		}
		return err
	}
	return nil
}

// GetByID fetches a user by id.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.sql.QueryRow(ctx, sqlinline.QSelectUserByID, id))
}

// GetByUsername fetches a user by username.
func (r *UserRepositoryPG) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(r.sql.QueryRow(ctx, sqlinline.QSelectUserByUsername, username))
}

// List returns all users, newest first.
func (r *UserRepositoryPG) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

var _ domain.UserRepository = (*UserRepositoryPG)(nil)
