package reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/terrain-booking-backend/internal/db"
)

// Repository defines methods for accessing the reservation ledger.
// There is deliberately no update: a reservation is created or deleted.
type Repository interface {
	// Create inserts r and fills its ID and CreatedAt. The slot constraint
	// decides concurrent attempts: all but one get ErrSlotTaken.
	Create(ctx context.Context, r *Reservation) error
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var pgxReservationColumns = []string{
	"r.id", "r.user_id", "u.username", "r.terrain_id", "t.name",
	"r.reservation_date::text", "r.reservation_time::text", "r.duration", "r.created_at",
}

func (r *pgxRepository) Create(ctx context.Context, res *Reservation) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.reservations").
		Columns("user_id", "terrain_id", "reservation_date", "reservation_time", "duration").
		Values(
			res.UserID,
			res.TerrainID,
			squirrel.Expr("?::date", res.Date),
			squirrel.Expr("?::time", res.StartTime),
			res.DurationMinutes,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create reservation query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&res.ID, &res.CreatedAt); err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(pgxReservationColumns...).
		From("public.reservations r").
		Join("public.users u ON r.user_id = u.id").
		Join("public.terrains t ON r.terrain_id = t.id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reservation query failed: %w", err)
	}

	var res Reservation
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&res.ID, &res.UserID, &res.UserName, &res.TerrainID, &res.TerrainName,
		&res.Date, &res.StartTime, &res.DurationMinutes, &res.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}
	return &res, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(pgxReservationColumns, "count(*) OVER() AS total_count")...).
		From("public.reservations r").
		Join("public.users u ON r.user_id = u.id").
		Join("public.terrains t ON r.terrain_id = t.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"r.user_id": filter.UserID})
	}
	if filter.TerrainID != "" {
		query = query.Where(squirrel.Eq{"r.terrain_id": filter.TerrainID})
	}
	if filter.Date != "" {
		query = query.Where(squirrel.Expr("r.reservation_date = ?::date", filter.Date))
	}
	if filter.StartTime != "" {
		query = query.Where(squirrel.Expr("r.reservation_time = ?::time", filter.StartTime))
	}

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("r.reservation_date ASC", "r.reservation_time ASC", "t.name ASC").
		Limit(uint64(filter.PageSize)).
		Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var reservations []*Reservation
	var total int

	for rows.Next() {
		var res Reservation
		if err := rows.Scan(
			&res.ID, &res.UserID, &res.UserName, &res.TerrainID, &res.TerrainName,
			&res.Date, &res.StartTime, &res.DurationMinutes, &res.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan reservation failed: %w", err)
		}
		reservations = append(reservations, &res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reservations failed: %w", err)
	}

	return reservations, total, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete reservation query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete reservation failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// mapWriteError turns constraint failures on insert into domain errors.
func mapWriteError(err error) error {
	switch {
	case db.IsUniqueViolation(err):
		return ErrSlotTaken
	case db.IsForeignKeyViolation(err):
		return ErrReferenceMissing
	default:
		return fmt.Errorf("create reservation failed: %w", err)
	}
}
