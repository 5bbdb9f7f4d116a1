package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/nekogravitycat/terrain-booking-backend/internal/auth"
	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/apperror"
)

// CreateRequest carries data to create a user directly (seeding, setup).
type CreateRequest struct {
	Name    string
	Secret  string // optional; empty means the user has no credential
	IsAdmin bool
}

// Service defines business logic related to users.
type Service interface {
	// Register creates a regular (non-admin) user; the secret is optional.
	Register(ctx context.Context, name, secret string) (*User, error)
	Create(ctx context.Context, req CreateRequest) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByName(ctx context.Context, name string) (*User, error)
	List(ctx context.Context, filter Filter) ([]*User, int, error)
	Delete(ctx context.Context, id string) error

	// AuthorizeAdmin verifies that name/secret belong to an administrator.
	// Every failure, whatever its cause, is reported as ErrUnauthorized.
	AuthorizeAdmin(ctx context.Context, name, secret string) (*AdminIdentity, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	// dummyHash is compared against when the requested admin has no usable
	// credential, so an unknown name costs the same hashing work as a wrong secret.
	dummyHash string
}

// NewService creates a new user Service.
// It panics if hasher cannot produce the dummy hash, since AuthorizeAdmin
// would otherwise answer unknown names faster than known ones.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	dummy, err := hasher.Hash("terrain-booking-unknown-user")
	if err != nil {
		panic(fmt.Sprintf("user: cannot create dummy hash: %v", err))
	}
	return &service{
		repo:      repo,
		hasher:    hasher,
		dummyHash: dummy,
	}
}

func (s *service) Register(ctx context.Context, name, secret string) (*User, error) {
	return s.Create(ctx, CreateRequest{Name: name, Secret: secret})
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	name := normalizeName(req.Name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return nil, ErrInvalidName
	}

	u := &User{
		Name:    name,
		IsAdmin: req.IsAdmin,
	}

	if len(req.Secret) > MaxSecretBytes {
		return nil, ErrSecretTooLong
	}

	if req.Secret != "" {
		hash, err := s.hasher.Hash(req.Secret)
		if err != nil {
			return nil, apperror.Infrastructure(err)
		}
		u.PasswordHash = &hash
	}

	// The unique index on username is the authority; no pre-check needed.
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, apperror.Infrastructure(err)
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	return u, nil
}

func (s *service) GetByName(ctx context.Context, name string) (*User, error) {
	u, err := s.repo.GetByName(ctx, normalizeName(name))
	if err != nil {
		return nil, apperror.Infrastructure(err)
	}
	return u, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, apperror.Infrastructure(err)
	}
	return users, total, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return apperror.Infrastructure(s.repo.Delete(ctx, id))
}

func (s *service) AuthorizeAdmin(ctx context.Context, name, secret string) (*AdminIdentity, error) {
	u, err := s.repo.GetByName(ctx, normalizeName(name))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			_ = s.hasher.Compare(s.dummyHash, secret)
			return nil, ErrUnauthorized
		}
		return nil, apperror.Infrastructure(err)
	}

	if u.PasswordHash == nil || secret == "" {
		_ = s.hasher.Compare(s.dummyHash, secret)
		return nil, ErrUnauthorized
	}

	if err := s.hasher.Compare(*u.PasswordHash, secret); err != nil {
		return nil, ErrUnauthorized
	}

	if !u.IsAdmin {
		return nil, ErrUnauthorized
	}

	return &AdminIdentity{ID: u.ID, Name: u.Name}, nil
}

// normalizeName trims surrounding spaces. Names stay case-sensitive.
func normalizeName(name string) string {
	return strings.TrimSpace(name)
}
