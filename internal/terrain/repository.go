package terrain

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/terrain-booking-backend/internal/db"
)

// Repository defines methods for accessing terrain data from storage.
type Repository interface {
	Create(ctx context.Context, t *Terrain) error
	GetByID(ctx context.Context, id string) (*Terrain, error)
	GetByName(ctx context.Context, name string) (*Terrain, error)
	List(ctx context.Context, filter Filter) ([]*Terrain, int, error)
	// UpdateAvailability sets the flag only if it differs from the stored value
	// and returns the updated row. It fails with ErrNoChange when the flag
	// already had that value and ErrNotFound when there is no such terrain.
	UpdateAvailability(ctx context.Context, id string, available bool) (*Terrain, error)
	// Delete removes the terrain and, through the foreign key cascade, every reservation on it.
	Delete(ctx context.Context, id string) error
}

type pgxTerrainRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxTerrainRepository{
		pool: pool,
	}
}

var terrainColumns = []string{"id", "name", "is_available", "created_at"}

func (r *pgxTerrainRepository) Create(ctx context.Context, t *Terrain) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.terrains").
		Columns("name", "is_available").
		Values(t.Name, t.IsAvailable).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create terrain query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&t.ID, &t.CreatedAt); err != nil {
		if db.IsUniqueViolation(err) {
			return ErrNameTaken
		}
		return fmt.Errorf("create terrain failed: %w", err)
	}
	return nil
}

func (r *pgxTerrainRepository) GetByID(ctx context.Context, id string) (*Terrain, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *pgxTerrainRepository) GetByName(ctx context.Context, name string) (*Terrain, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name})
}

func (r *pgxTerrainRepository) getOne(ctx context.Context, where squirrel.Eq) (*Terrain, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(terrainColumns...).
		From("public.terrains").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get terrain query failed: %w", err)
	}

	var t Terrain
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.Name, &t.IsAvailable, &t.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get terrain failed: %w", err)
	}
	return &t, nil
}

func (r *pgxTerrainRepository) List(ctx context.Context, filter Filter) ([]*Terrain, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(terrainColumns, "count(*) OVER() AS total_count")...).
		From("public.terrains")

	if filter.Name != "" {
		query = query.Where(squirrel.Expr(`name ILIKE ? ESCAPE '\'`, db.ContainsPattern(filter.Name)))
	}
	if filter.IsAvailable != nil {
		query = query.Where(squirrel.Eq{"is_available": *filter.IsAvailable})
	}

	// Pagination
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

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list terrains query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
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

func (r *pgxTerrainRepository) UpdateAvailability(ctx context.Context, id string, available bool) (*Terrain, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.terrains").
		Set("is_available", available).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"is_available": available}).
		Suffix("RETURNING id, name, is_available, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update terrain query failed: %w", err)
	}

	var t Terrain
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.Name, &t.IsAvailable, &t.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.noUpdateReason(ctx, id)
		}
		return nil, fmt.Errorf("update terrain failed: %w", err)
	}
	return &t, nil
}

// noUpdateReason tells a missing terrain from one that already had the value.
func (r *pgxTerrainRepository) noUpdateReason(ctx context.Context, id string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrNoChange
}

func (r *pgxTerrainRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.terrains").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete terrain query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete terrain failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
