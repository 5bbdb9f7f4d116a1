// Package dbtest provides a migrated Postgres pool for repository tests.
// Tests using it are skipped unless TEST_DB_DSN is set.
package dbtest

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/terrain-booking-backend/internal/db"
)

// DSNEnv names the environment variable holding the test database DSN.
const DSNEnv = "TEST_DB_DSN"

// NewPool connects to the test database and applies the schema.
// Tables are shared with other packages running in parallel, so callers
// should create rows with Name rather than truncate.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", DSNEnv)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(ctx, pool))
	return pool
}

// Name returns prefix followed by a short random suffix.
// The result stays within the 50 character name columns for short prefixes.
func Name(prefix string) string {
	return prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
