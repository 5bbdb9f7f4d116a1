package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/terrain-booking-backend/internal/config"
	"github.com/nekogravitycat/terrain-booking-backend/internal/db"
)

// Store is the opened persistence backend. Exactly one of Pool and SQLite is set.
type Store struct {
	Driver string
	Pool   *pgxpool.Pool
	SQLite *sql.DB
}

// OpenStore connects to the backend selected by cfg.StoreDriver and,
// when cfg.AutoMigrate is set, applies the schema.
func OpenStore(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := db.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &Store{Driver: config.DriverPostgres, Pool: pool}, nil

	case config.DriverSQLite:
		conn, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := db.MigrateSQLite(ctx, conn); err != nil {
				conn.Close()
				return nil, err
			}
		}
		return &Store{Driver: config.DriverSQLite, SQLite: conn}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

// Ping checks that the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.Pool != nil {
		return s.Pool.Ping(ctx)
	}
	return s.SQLite.PingContext(ctx)
}

func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
	if s.SQLite != nil {
		s.SQLite.Close()
	}
}
