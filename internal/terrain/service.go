package terrain

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/terrain-booking-backend/internal/user"
)

// AdminAuthorizer verifies administrator credentials.
// user.Service satisfies it.
type AdminAuthorizer interface {
	AuthorizeAdmin(ctx context.Context, name, secret string) (*user.AdminIdentity, error)
}

// CreateRequest carries data to create a terrain.
type CreateRequest struct {
	Name        string
	IsAvailable bool
}

// ChangeAvailabilityRequest is an administrator's request to open or close a terrain.
type ChangeAvailabilityRequest struct {
	AdminName   string
	AdminSecret string
	TerrainID   string
	Available   bool
}

// Service defines business logic related to terrains.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Terrain, error)
	GetByID(ctx context.Context, id string) (*Terrain, error)
	GetByName(ctx context.Context, name string) (*Terrain, error)
	List(ctx context.Context, filter Filter) ([]*Terrain, int, error)
	Delete(ctx context.Context, id string) error

	// IsAvailable reports the current availability flag of a terrain.
	IsAvailable(ctx context.Context, id string) (bool, error)
	// SetAvailability changes the flag. Setting the value it already has
	// fails with ErrNoChange.
	SetAvailability(ctx context.Context, id string, available bool) (*Terrain, error)
	// ChangeAvailability authorizes the administrator, then calls SetAvailability.
	ChangeAvailability(ctx context.Context, req ChangeAvailabilityRequest) (*Terrain, error)
}

type service struct {
	repo  Repository
	admin AdminAuthorizer
}

// NewService creates a new terrain Service.
func NewService(repo Repository, admin AdminAuthorizer) Service {
	return &service{
		repo:  repo,
		admin: admin,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Terrain, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return nil, ErrInvalidName
	}

	t := &Terrain{
		Name:        name,
		IsAvailable: req.IsAvailable,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, apperror.Infrastructure(err)
	}
	return t, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Terrain, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	return t, nil
}

func (s *service) GetByName(ctx context.Context, name string) (*Terrain, error) {
	t, err := s.repo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	return t, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Terrain, int, error) {
	terrains, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, apperror.Infrastructure(err)
	}
	return terrains, total, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return apperror.Infrastructure(s.repo.Delete(ctx, id))
}

func (s *service) IsAvailable(ctx context.Context, id string) (bool, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return t.IsAvailable, nil
}

func (s *service) SetAvailability(ctx context.Context, id string, available bool) (*Terrain, error) {
	// The store compares and writes in one statement, so of two identical
	// concurrent requests exactly one sees ErrNoChange.
	t, err := s.repo.UpdateAvailability(ctx, id, available)
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	return t, nil
}

func (s *service) ChangeAvailability(ctx context.Context, req ChangeAvailabilityRequest) (*Terrain, error) {
	if _, err := s.admin.AuthorizeAdmin(ctx, req.AdminName, req.AdminSecret); err != nil {
		return nil, err
	}
	return s.SetAvailability(ctx, req.TerrainID, req.Available)
}
