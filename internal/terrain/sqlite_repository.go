package terrain

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

type sqliteTerrainRepository struct {
	conn *sql.DB
}

// NewSQLiteRepository creates a Repository backed by an embedded SQLite database.
func NewSQLiteRepository(conn *sql.DB) Repository {
	return &sqliteTerrainRepository{conn: conn}
}

func (r *sqliteTerrainRepository) Create(ctx context.Context, t *Terrain) error {
	id := uuid.NewString()
	createdAt := time.Now().UTC()

	query, args, err := squirrel.Insert("terrains").
		Columns("id", "name", "is_available", "created_at").
		Values(id, t.Name, t.IsAvailable, createdAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create terrain query failed: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		if db.IsUniqueViolation(err) {
			return ErrNameTaken
		}
		return fmt.Errorf("create terrain failed: %w", err)
	}

	t.ID = id
	t.CreatedAt = createdAt
	return nil
}

func (r *sqliteTerrainRepository) GetByID(ctx context.Context, id string) (*Terrain, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *sqliteTerrainRepository) GetByName(ctx context.Context, name string) (*Terrain, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name})
}

func (r *sqliteTerrainRepository) getOne(ctx context.Context, where squirrel.Eq) (*Terrain, error) {
	query, args, err := squirrel.Select(terrainColumns...).
		From("terrains").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get terrain query failed: %w", err)
	}

	var t Terrain
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(
		&t.ID, &t.Name, &t.IsAvailable, &t.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get terrain failed: %w", err)
	}
	return &t, nil
}

func (r *sqliteTerrainRepository) List(ctx context.Context, filter Filter) ([]*Terrain, int, error) {
	query := squirrel.Select(append(terrainColumns, "count(*) OVER() AS total_count")...).
		From("terrains")

	if filter.Name != "" {
		query = query.Where(squirrel.Expr(`name LIKE ? ESCAPE '\'`, db.ContainsPattern(filter.Name)))
	}
	if filter.IsAvailable != nil {
		query = query.Where(squirrel.Eq{"is_available": *filter.IsAvailable})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("name ASC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list terrains query failed: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list terrains failed: %w", err)
	}
	defer rows.Close()

	var terrains []*Terrain
	var total int

	for rows.Next() {
		var t Terrain
		if err := rows.Scan(&t.ID, &t.Name, &t.IsAvailable, &t.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan terrain failed: %w", err)
		}
		terrains = append(terrains, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate terrains failed: %w", err)
	}

	return terrains, total, nil
}

func (r *sqliteTerrainRepository) UpdateAvailability(ctx context.Context, id string, available bool) (*Terrain, error) {
	query, args, err := squirrel.Update("terrains").
		Set("is_available", available).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"is_available": available}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update terrain query failed: %w", err)
	}

	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update terrain failed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update terrain failed: %w", err)
	}

	// RETURNING loses the TIMESTAMP column type, so read the row back.
	t, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNoChange
	}
	return t, nil
}

func (r *sqliteTerrainRepository) Delete(ctx context.Context, id string) error {
	query, args, err := squirrel.Delete("terrains").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete terrain query failed: %w", err)
	}

	res, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete terrain failed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete terrain failed: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
