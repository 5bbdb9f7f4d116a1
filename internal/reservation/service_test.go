package reservation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/terrain-booking-backend/internal/terrain"
	"github.com/nekogravitycat/terrain-booking-backend/internal/user"
)

type mockUsers struct {
	getByNameFn func(ctx context.Context, name string) (*user.User, error)
}

func (m *mockUsers) GetByName(ctx context.Context, name string) (*user.User, error) {
	return m.getByNameFn(ctx, name)
}

type mockTerrains struct {
	getByNameFn func(ctx context.Context, name string) (*terrain.Terrain, error)
}

func (m *mockTerrains) GetByName(ctx context.Context, name string) (*terrain.Terrain, error) {
	return m.getByNameFn(ctx, name)
}

type mockRepo struct {
	createFn func(ctx context.Context, r *Reservation) error
	created  []*Reservation
}

func (m *mockRepo) Create(ctx context.Context, r *Reservation) error {
	if m.createFn != nil {
		if err := m.createFn(ctx, r); err != nil {
			return err
		}
	}
	r.ID = "res-1"
	m.created = append(m.created, r)
	return nil
}

func (m *mockRepo) GetByID(context.Context, string) (*Reservation, error) {
	return nil, ErrNotFound
}

func (m *mockRepo) List(context.Context, Filter) ([]*Reservation, int, error) {
	return nil, 0, nil
}

func (m *mockRepo) Delete(context.Context, string) error {
	return ErrNotFound
}

var (
	testUser = &user.User{ID: "user-1", Name: "marvin"}
	openA    = &terrain.Terrain{ID: "terrain-a", Name: "A", IsAvailable: true}
	closedB  = &terrain.Terrain{ID: "terrain-b", Name: "B", IsAvailable: false}
)

func knownUsers() *mockUsers {
	return &mockUsers{getByNameFn: func(_ context.Context, name string) (*user.User, error) {
		if name == testUser.Name {
			return testUser, nil
		}
		return nil, user.ErrNotFound
	}}
}

func knownTerrains() *mockTerrains {
	return &mockTerrains{getByNameFn: func(_ context.Context, name string) (*terrain.Terrain, error) {
		switch name {
		case openA.Name:
			return openA, nil
		case closedB.Name:
			return closedB, nil
		}
		return nil, terrain.ErrNotFound
	}}
}

func newTestService(repo *mockRepo, users UserFinder, terrains TerrainFinder) Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, users, terrains, DefaultPolicy(), log)
}

func validRequest() AdmitRequest {
	return AdmitRequest{
		UserName:    "marvin",
		TerrainName: "A",
		Date:        "2024-12-20",
		StartTime:   "10:00",
	}
}

func TestAdmit_Success(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo, knownUsers(), knownTerrains())

	res, err := svc.Admit(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "res-1", res.ID)
	assert.Equal(t, "user-1", res.UserID)
	assert.Equal(t, "marvin", res.UserName)
	assert.Equal(t, "terrain-a", res.TerrainID)
	assert.Equal(t, "A", res.TerrainName)
	assert.Equal(t, "2024-12-20", res.Date)
	assert.Equal(t, "10:00:00", res.StartTime, "start time is stored in canonical form")
	assert.Equal(t, 45, res.DurationMinutes)
	assert.Len(t, repo.created, 1)
}

func TestAdmit_ExplicitDuration(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo, knownUsers(), knownTerrains())

	req := validRequest()
	ninety := 90
	req.DurationMinutes = &ninety

	res, err := svc.Admit(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 90, res.DurationMinutes)
}

func TestAdmit_Window(t *testing.T) {
	cases := []struct {
		start string
		want  error
	}{
		{"09:00", ErrOutOfWindow},
		{"09:59", ErrOutOfWindow},
		{"10:00", nil},
		{"14:30:00", nil},
		{"22:00", nil},
		{"22:30", nil},
		{"23:00", ErrOutOfWindow},
		{"00:00", ErrOutOfWindow},
		{"25:00", ErrInvalidInput},
		{"ten", ErrInvalidInput},
		{"", ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.start, func(t *testing.T) {
			repo := &mockRepo{}
			svc := newTestService(repo, knownUsers(), knownTerrains())

			req := validRequest()
			req.StartTime = tc.start

			_, err := svc.Admit(context.Background(), req)
			if tc.want == nil {
				assert.NoError(t, err)
				assert.Len(t, repo.created, 1)
				return
			}
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, repo.created)
		})
	}
}

func TestAdmit_InvalidValues(t *testing.T) {
	zero := 0
	negative := -15

	cases := map[string]func(r *AdmitRequest){
		"bad date":          func(r *AdmitRequest) { r.Date = "20/12/2024" },
		"impossible date":   func(r *AdmitRequest) { r.Date = "2024-02-30" },
		"zero duration":     func(r *AdmitRequest) { r.DurationMinutes = &zero },
		"negative duration": func(r *AdmitRequest) { r.DurationMinutes = &negative },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &mockRepo{}
			svc := newTestService(repo, knownUsers(), knownTerrains())

			req := validRequest()
			mutate(&req)

			_, err := svc.Admit(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, repo.created)
		})
	}
}

func TestAdmit_CheckOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user wins over everything else", func(t *testing.T) {
		svc := newTestService(&mockRepo{}, knownUsers(), knownTerrains())

		_, err := svc.Admit(ctx, AdmitRequest{
			UserName:    "nobody",
			TerrainName: "Z",
			Date:        "garbage",
			StartTime:   "03:00",
		})
		assert.ErrorIs(t, err, ErrUnknownUser)
		assert.Equal(t, apperror.KindUnknownUser, apperror.KindOf(err))
	})

	t.Run("unknown terrain before availability and window", func(t *testing.T) {
		svc := newTestService(&mockRepo{}, knownUsers(), knownTerrains())

		req := validRequest()
		req.TerrainName = "Z"
		req.StartTime = "03:00"

		_, err := svc.Admit(ctx, req)
		assert.ErrorIs(t, err, ErrUnknownTerrain)
		assert.Equal(t, apperror.KindUnknownResource, apperror.KindOf(err))
	})

	t.Run("unavailable terrain before window", func(t *testing.T) {
		repo := &mockRepo{}
		svc := newTestService(repo, knownUsers(), knownTerrains())

		req := validRequest()
		req.TerrainName = "B"
		req.StartTime = "03:00"

		_, err := svc.Admit(ctx, req)
		assert.ErrorIs(t, err, ErrTerrainUnavailable)
		assert.Empty(t, repo.created)
	})

	t.Run("window before slot", func(t *testing.T) {
		repo := &mockRepo{createFn: func(context.Context, *Reservation) error { return ErrSlotTaken }}
		svc := newTestService(repo, knownUsers(), knownTerrains())

		req := validRequest()
		req.StartTime = "08:00"

		_, err := svc.Admit(ctx, req)
		assert.ErrorIs(t, err, ErrOutOfWindow)
	})
}

func TestAdmit_StoreOutcomes(t *testing.T) {
	ctx := context.Background()

	t.Run("slot taken", func(t *testing.T) {
		repo := &mockRepo{createFn: func(context.Context, *Reservation) error { return ErrSlotTaken }}
		svc := newTestService(repo, knownUsers(), knownTerrains())

		_, err := svc.Admit(ctx, validRequest())
		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.Equal(t, apperror.KindSlotTaken, apperror.KindOf(err))
	})

	t.Run("store failure is infrastructure", func(t *testing.T) {
		boom := errors.New("connection refused")
		repo := &mockRepo{createFn: func(context.Context, *Reservation) error { return boom }}
		svc := newTestService(repo, knownUsers(), knownTerrains())

		_, err := svc.Admit(ctx, validRequest())
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, apperror.KindInfrastructure, apperror.KindOf(err))
	})

	t.Run("user lookup failure is not reported as unknown user", func(t *testing.T) {
		boom := errors.New("timeout")
		users := &mockUsers{getByNameFn: func(context.Context, string) (*user.User, error) { return nil, boom }}
		svc := newTestService(&mockRepo{}, users, knownTerrains())

		_, err := svc.Admit(ctx, validRequest())
		assert.NotErrorIs(t, err, ErrUnknownUser)
		assert.Equal(t, apperror.KindInfrastructure, apperror.KindOf(err))
	})
}

func TestPolicy_Allows(t *testing.T) {
	p := Policy{OpenHour: 8, CloseHour: 20}

	assert.False(t, p.Allows(7))
	assert.True(t, p.Allows(8))
	assert.True(t, p.Allows(20))
	assert.False(t, p.Allows(21))
}

func TestList_RejectsMalformedDate(t *testing.T) {
	svc := newTestService(&mockRepo{}, knownUsers(), knownTerrains())

	_, _, err := svc.List(context.Background(), Filter{Date: "tomorrow"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_CanonicalizesStartTime(t *testing.T) {
	var got Filter
	repo := &listRecorder{listFn: func(f Filter) { got = f }}
	svc := NewService(repo, knownUsers(), knownTerrains(), DefaultPolicy(), nil)

	_, _, err := svc.List(context.Background(), Filter{StartTime: "18:00"})
	require.NoError(t, err)
	assert.Equal(t, "18:00:00", got.StartTime)

	_, _, err = svc.List(context.Background(), Filter{StartTime: "6pm"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

type listRecorder struct {
	mockRepo
	listFn func(Filter)
}

func (l *listRecorder) List(_ context.Context, f Filter) ([]*Reservation, int, error) {
	l.listFn(f)
	return nil, 0, nil
}
