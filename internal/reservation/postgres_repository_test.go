package reservation

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/terrain-booking-backend/internal/auth"
	"github.com/nekogravitycat/terrain-booking-backend/internal/db/dbtest"
	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/logger"
	"github.com/nekogravitycat/terrain-booking-backend/internal/terrain"
	"github.com/nekogravitycat/terrain-booking-backend/internal/user"
)

type pgFixture struct {
	repo     Repository
	users    user.Service
	terrains terrain.Service
	svc      Service
}

func newPgFixture(t *testing.T) *pgFixture {
	t.Helper()
	pool := dbtest.NewPool(t)

	users := user.NewService(user.NewPgxRepository(pool), auth.NewBcryptPasswordHasherWithCost(4))
	terrains := terrain.NewService(terrain.NewPgxRepository(pool), users)
	repo := NewPgxRepository(pool)

	return &pgFixture{
		repo:     repo,
		users:    users,
		terrains: terrains,
		svc:      NewService(repo, users, terrains, DefaultPolicy(), logger.Discard().Logger),
	}
}

func (f *pgFixture) user(t *testing.T, prefix string) *user.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), dbtest.Name(prefix), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.users.Delete(context.Background(), u.ID) })
	return u
}

func (f *pgFixture) terrain(t *testing.T, prefix string) *terrain.Terrain {
	t.Helper()
	tr, err := f.terrains.Create(context.Background(), terrain.CreateRequest{Name: dbtest.Name(prefix), IsAvailable: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.terrains.Delete(context.Background(), tr.ID) })
	return tr
}

func (f *pgFixture) countOn(t *testing.T, terrainID string) int {
	t.Helper()
	_, total, err := f.repo.List(context.Background(), Filter{TerrainID: terrainID})
	require.NoError(t, err)
	return total
}

func TestPgxRepository_CreateAndRead(t *testing.T) {
	ctx := context.Background()
	f := newPgFixture(t)
	u := f.user(t, "marvin")
	a := f.terrain(t, "A")

	res := &Reservation{UserID: u.ID, TerrainID: a.ID, Date: "2024-12-20", StartTime: "10:00", DurationMinutes: 45}
	require.NoError(t, f.repo.Create(ctx, res))
	assert.NotEmpty(t, res.ID)
	assert.False(t, res.CreatedAt.IsZero())

	got, err := f.repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Name, got.UserName)
	assert.Equal(t, a.Name, got.TerrainName)
	assert.Equal(t, "2024-12-20", got.Date)
	assert.Equal(t, "10:00:00", got.StartTime)
	assert.Equal(t, 45, got.DurationMinutes)

	_, err = f.repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	list, total, err := f.repo.List(ctx, Filter{TerrainID: a.ID, Date: "2024-12-20", StartTime: "10:00:00"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, res.ID, list[0].ID)

	require.NoError(t, f.repo.Delete(ctx, res.ID))
	assert.ErrorIs(t, f.repo.Delete(ctx, res.ID), ErrNotFound)
}

func TestPgxRepository_SlotUniqueness(t *testing.T) {
	ctx := context.Background()
	f := newPgFixture(t)
	marvin := f.user(t, "marvin")
	hugo := f.user(t, "hugo")
	a := f.terrain(t, "A")
	c := f.terrain(t, "C")

	require.NoError(t, f.repo.Create(ctx, &Reservation{UserID: marvin.ID, TerrainID: a.ID, Date: "2024-12-20", StartTime: "10:00:00", DurationMinutes: 45}))

	// The short time form names the same slot.
	dup := &Reservation{UserID: hugo.ID, TerrainID: a.ID, Date: "2024-12-20", StartTime: "10:00", DurationMinutes: 30}
	assert.ErrorIs(t, f.repo.Create(ctx, dup), ErrSlotTaken)

	require.NoError(t, f.repo.Create(ctx, &Reservation{UserID: hugo.ID, TerrainID: c.ID, Date: "2024-12-20", StartTime: "10:00:00", DurationMinutes: 45}))
	require.NoError(t, f.repo.Create(ctx, &Reservation{UserID: hugo.ID, TerrainID: a.ID, Date: "2024-12-20", StartTime: "11:00:00", DurationMinutes: 45}))

	assert.Equal(t, 2, f.countOn(t, a.ID))
	assert.Equal(t, 1, f.countOn(t, c.ID))
}

func TestPgxRepository_ReferenceMissing(t *testing.T) {
	ctx := context.Background()
	f := newPgFixture(t)
	u := f.user(t, "marvin")
	a := f.terrain(t, "A")

	err := f.repo.Create(ctx, &Reservation{
		UserID: uuid.NewString(), TerrainID: a.ID,
		Date: "2024-12-20", StartTime: "10:00:00", DurationMinutes: 45,
	})
	assert.ErrorIs(t, err, ErrReferenceMissing)

	err = f.repo.Create(ctx, &Reservation{
		UserID: u.ID, TerrainID: uuid.NewString(),
		Date: "2024-12-20", StartTime: "10:00:00", DurationMinutes: 45,
	})
	assert.ErrorIs(t, err, ErrReferenceMissing)
}

func TestPgxAdmit_ConcurrentRequestsForOneSlot(t *testing.T) {
	ctx := context.Background()
	f := newPgFixture(t)

	const contenders = 8
	names := make([]string, contenders)
	for i := range names {
		names[i] = f.user(t, "player").Name
	}
	a := f.terrain(t, "A")

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i := range contenders {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Admit(ctx, AdmitRequest{
				UserName:    names[i],
				TerrainName: a.Name,
				Date:        "2024-12-20",
				StartTime:   "18:00",
			})
		}(i)
	}
	wg.Wait()

	committed := 0
	for _, err := range errs {
		if err == nil {
			committed++
			continue
		}
		assert.ErrorIs(t, err, ErrSlotTaken)
	}
	assert.Equal(t, 1, committed)
	assert.Equal(t, 1, f.countOn(t, a.ID))
}

func TestPgxDeleteCascades(t *testing.T) {
	ctx := context.Background()
	f := newPgFixture(t)
	marvin := f.user(t, "marvin")
	hugo := f.user(t, "hugo")
	a := f.terrain(t, "A")
	c := f.terrain(t, "C")

	admit := func(u *user.User, tr *terrain.Terrain, start string) {
		_, err := f.svc.Admit(ctx, AdmitRequest{UserName: u.Name, TerrainName: tr.Name, Date: "2024-12-20", StartTime: start})
		require.NoError(t, err)
	}
	admit(marvin, a, "10:00")
	admit(marvin, c, "11:00")
	admit(hugo, a, "12:00")
	admit(hugo, c, "13:00")

	require.NoError(t, f.users.Delete(ctx, marvin.ID))
	_, total, err := f.repo.List(ctx, Filter{UserID: marvin.ID})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Equal(t, 1, f.countOn(t, a.ID))
	assert.Equal(t, 1, f.countOn(t, c.ID))

	require.NoError(t, f.terrains.Delete(ctx, a.ID))
	assert.Zero(t, f.countOn(t, a.ID))

	list, total, err := f.repo.List(ctx, Filter{UserID: hugo.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].TerrainID)
}
