package reservation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/terrain-booking-backend/internal/terrain"
	"github.com/nekogravitycat/terrain-booking-backend/internal/user"
)

// UserFinder resolves users by name. user.Service satisfies it.
type UserFinder interface {
	GetByName(ctx context.Context, name string) (*user.User, error)
}

// TerrainFinder resolves terrains by name. terrain.Service satisfies it.
type TerrainFinder interface {
	GetByName(ctx context.Context, name string) (*terrain.Terrain, error)
}

// AdmitRequest is a booking request as submitted by a client.
type AdmitRequest struct {
	UserName        string
	TerrainName     string
	Date            string // YYYY-MM-DD
	StartTime       string // HH:MM or HH:MM:SS
	DurationMinutes *int   // nil means the policy default
}

type Service interface {
	// Admit decides a booking request and commits it when every rule passes.
	// Checks run in a fixed order and the first failure is returned:
	// user, terrain, availability, opening hours, then the slot itself.
	Admit(ctx context.Context, req AdmitRequest) (*Reservation, error)
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	users    UserFinder
	terrains TerrainFinder
	policy   Policy
	log      *slog.Logger
}

func NewService(repo Repository, users UserFinder, terrains TerrainFinder, policy Policy, log *slog.Logger) Service {
	if log == nil {
		log = slog.Default()
	}
	return &service{
		repo:     repo,
		users:    users,
		terrains: terrains,
		policy:   policy,
		log:      log.With("component", "reservation"),
	}
}

func (s *service) Admit(ctx context.Context, req AdmitRequest) (*Reservation, error) {
	res, err := s.admit(ctx, req)
	if err != nil {
		if apperror.IsKind(err, apperror.KindInfrastructure) {
			s.log.ErrorContext(ctx, "admission failed", "user", req.UserName, "terrain", req.TerrainName, "error", err)
		} else {
			s.log.DebugContext(ctx, "admission rejected",
				"user", req.UserName,
				"terrain", req.TerrainName,
				"date", req.Date,
				"start_time", req.StartTime,
				"kind", apperror.KindOf(err),
			)
		}
		return nil, err
	}

	s.log.DebugContext(ctx, "reservation admitted", "id", res.ID, "terrain", res.TerrainName, "date", res.Date, "start_time", res.StartTime)
	return res, nil
}

func (s *service) admit(ctx context.Context, req AdmitRequest) (*Reservation, error) {
	// 1. Requester
	u, err := s.users.GetByName(ctx, req.UserName)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, apperror.Infrastructure(err)
	}

	// 2. Terrain
	t, err := s.terrains.GetByName(ctx, req.TerrainName)
	if err != nil {
		if errors.Is(err, terrain.ErrNotFound) {
			return nil, ErrUnknownTerrain
		}
		return nil, apperror.Infrastructure(err)
	}

	// 3. Availability, as read above. A flag flipped after this point does
	// not cancel the admission.
	if !t.IsAvailable {
		return nil, ErrTerrainUnavailable
	}

	// 4. Opening hours and well-formed values
	start, err := ParseStartTime(req.StartTime)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if !s.policy.Allows(start.Hour()) {
		return nil, ErrOutOfWindow
	}

	date, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidInput
	}

	duration := s.policy.DefaultDuration
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}
	if duration <= 0 {
		return nil, ErrInvalidInput
	}

	// 5. Commit; the slot constraint has the final word.
	res := &Reservation{
		UserID:          u.ID,
		UserName:        u.Name,
		TerrainID:       t.ID,
		TerrainName:     t.Name,
		Date:            date.Format(DateLayout),
		StartTime:       start.Format(TimeLayout),
		DurationMinutes: duration,
	}
	if err := s.repo.Create(ctx, res); err != nil {
		return nil, apperror.Infrastructure(err)
	}

	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Reservation, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	return res, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	if filter.Date != "" {
		if _, err := time.Parse(DateLayout, filter.Date); err != nil {
			return nil, 0, ErrInvalidInput
		}
	}
	if filter.StartTime != "" {
		start, err := ParseStartTime(filter.StartTime)
		if err != nil {
			return nil, 0, ErrInvalidInput
		}
		filter.StartTime = start.Format(TimeLayout)
	}

	reservations, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, apperror.Infrastructure(err)
	}
	return reservations, total, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return apperror.Infrastructure(s.repo.Delete(ctx, id))
}

// ParseStartTime accepts HH:MM or HH:MM:SS.
func ParseStartTime(value string) (time.Time, error) {
	if t, err := time.Parse("15:04", value); err == nil {
		return t, nil
	}
	return time.Parse(TimeLayout, value)
}
