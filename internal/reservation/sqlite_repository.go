package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type sqliteRepository struct {
	conn *sql.DB
}

// NewSQLiteRepository creates a Repository backed by an embedded SQLite database.
func NewSQLiteRepository(conn *sql.DB) Repository {
	return &sqliteRepository{conn: conn}
}

var sqliteReservationColumns = []string{
	"r.id", "r.user_id", "u.username", "r.terrain_id", "t.name",
	"r.reservation_date", "r.reservation_time", "r.duration", "r.created_at",
}

func (r *sqliteRepository) Create(ctx context.Context, res *Reservation) error {
	id := uuid.NewString()
	createdAt := time.Now().UTC()

	query, args, err := squirrel.Insert("reservations").
		Columns("id", "user_id", "terrain_id", "reservation_date", "reservation_time", "duration", "created_at").
		Values(id, res.UserID, res.TerrainID, res.Date, res.StartTime, res.DurationMinutes, createdAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create reservation query failed: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return mapWriteError(err)
	}

	res.ID = id
	res.CreatedAt = createdAt
	return nil
}

func (r *sqliteRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	query, args, err := squirrel.Select(sqliteReservationColumns...).
		From("reservations r").
		Join("users u ON r.user_id = u.id").
		Join("terrains t ON r.terrain_id = t.id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reservation query failed: %w", err)
	}

	var res Reservation
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(
		&res.ID, &res.UserID, &res.UserName, &res.TerrainID, &res.TerrainName,
		&res.Date, &res.StartTime, &res.DurationMinutes, &res.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}
	return &res, nil
}

func (r *sqliteRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	query := squirrel.Select(append(sqliteReservationColumns, "count(*) OVER() AS total_count")...).
		From("reservations r").
		Join("users u ON r.user_id = u.id").
		Join("terrains t ON r.terrain_id = t.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"r.user_id": filter.UserID})
	}
	if filter.TerrainID != "" {
		query = query.Where(squirrel.Eq{"r.terrain_id": filter.TerrainID})
	}
	if filter.Date != "" {
		query = query.Where(squirrel.Eq{"r.reservation_date": filter.Date})
	}
	if filter.StartTime != "" {
		query = query.Where(squirrel.Eq{"r.reservation_time": filter.StartTime})
	}

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

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, stmt, args...)
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

func (r *sqliteRepository) Delete(ctx context.Context, id string) error {
	query, args, err := squirrel.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete reservation query failed: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete reservation failed: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete reservation failed: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
