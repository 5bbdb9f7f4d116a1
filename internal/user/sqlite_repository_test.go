package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/terrain-booking-backend/internal/db"
)

func newSQLiteRepo(t *testing.T) Repository {
	t.Helper()
	ctx := context.Background()

	conn, err := db.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, db.MigrateSQLite(ctx, conn))

	return NewSQLiteRepository(conn)
}

func TestSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	hash := "$2a$04$abcdefghijklmnopqrstuv"
	admin := &User{Name: "admybad", PasswordHash: &hash, IsAdmin: true}
	require.NoError(t, repo.Create(ctx, admin))
	assert.NotEmpty(t, admin.ID)

	plain := &User{Name: "marvin"}
	require.NoError(t, repo.Create(ctx, plain))

	assert.ErrorIs(t, repo.Create(ctx, &User{Name: "marvin"}), ErrNameTaken)

	got, err := repo.GetByName(ctx, "admybad")
	require.NoError(t, err)
	require.NotNil(t, got.PasswordHash)
	assert.Equal(t, hash, *got.PasswordHash)
	assert.True(t, got.IsAdmin)

	got, err = repo.GetByID(ctx, plain.ID)
	require.NoError(t, err)
	assert.Nil(t, got.PasswordHash)

	require.NoError(t, repo.Delete(ctx, plain.ID))
	assert.ErrorIs(t, repo.Delete(ctx, plain.ID), ErrNotFound)
	_, err = repo.GetByID(ctx, plain.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteRepository_NameFilterIsLiteral(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepo(t)

	for _, name := range []string{"50%off", "j_doe", "jxdoe", `back\slash`} {
		require.NoError(t, repo.Create(ctx, &User{Name: name}))
	}

	cases := []struct {
		filter string
		want   string
	}{
		{"%", "50%off"},
		{"_", "j_doe"},
		{`\`, `back\slash`},
	}
	for _, tc := range cases {
		list, total, err := repo.List(ctx, Filter{Name: tc.filter})
		require.NoError(t, err)
		assert.Equal(t, 1, total, tc.filter)
		require.Len(t, list, 1, tc.filter)
		assert.Equal(t, tc.want, list[0].Name)
	}
}
