package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/nekogravitycat/terrain-booking-backend/internal/db"
)

type sqliteUserRepository struct {
	conn *sql.DB
}

// NewSQLiteRepository creates a Repository backed by an embedded SQLite database.
func NewSQLiteRepository(conn *sql.DB) Repository {
	return &sqliteUserRepository{conn: conn}
}

func (r *sqliteUserRepository) Create(ctx context.Context, u *User) error {
	id := uuid.NewString()
	createdAt := time.Now().UTC()

	var hash any
	if u.PasswordHash != nil {
		hash = *u.PasswordHash
	}

	query, args, err := squirrel.Insert("users").
		Columns("id", "username", "password_hash", "is_admin", "created_at").
		Values(id, u.Name, hash, u.IsAdmin, createdAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create user query failed: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		if db.IsUniqueViolation(err) {
			return ErrNameTaken
		}
		return fmt.Errorf("create user failed: %w", err)
	}

	u.ID = id
	u.CreatedAt = createdAt
	return nil
}

func (r *sqliteUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *sqliteUserRepository) GetByName(ctx context.Context, name string) (*User, error) {
	return r.getOne(ctx, squirrel.Eq{"username": name})
}

func (r *sqliteUserRepository) getOne(ctx context.Context, where squirrel.Eq) (*User, error) {
	query, args, err := squirrel.Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get user query failed: %w", err)
	}

	var u User
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(
		&u.ID, &u.Name, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user failed: %w", err)
	}
	return &u, nil
}

func (r *sqliteUserRepository) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	query := squirrel.Select(append(userColumns, "count(*) OVER() AS total_count")...).
		From("users")

	if filter.Name != "" {
		query = query.Where(squirrel.Expr(`username LIKE ? ESCAPE '\'`, db.ContainsPattern(filter.Name)))
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("created_at DESC", "username ASC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list users query failed: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users failed: %w", err)
	}
	defer rows.Close()

	var users []*User
	var total int

	for rows.Next() {
		var u User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan user failed: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users failed: %w", err)
	}

	return users, total, nil
}

func (r *sqliteUserRepository) Delete(ctx context.Context, id string) error {
	query, args, err := squirrel.Delete("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete user query failed: %w", err)
	}

	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete user failed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user failed: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
