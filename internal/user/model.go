package user

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/apperror"
)

const (
	MaxNameLength = 50
	// MaxSecretBytes is bcrypt's input limit, counted in bytes not characters.
	MaxSecretBytes = 72
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, apperror.KindNotFound, "user not found")
	ErrNameTaken     = apperror.New(http.StatusConflict, apperror.KindConstraintViolation, "username already taken")
	ErrInvalidName   = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "username must be between 1 and 50 characters")
	ErrSecretTooLong = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "password must be at most 72 bytes")
	ErrUnauthorized  = apperror.New(http.StatusForbidden, apperror.KindUnauthorized, "forbidden: only administrators can perform this action")
)

// User represents a registered account.
type User struct {
	ID           string // UUID
	Name         string
	PasswordHash *string // nil when the user registered without a secret
	IsAdmin      bool
	CreatedAt    time.Time
}

// AdminIdentity is the result of a successful administrator check.
type AdminIdentity struct {
	ID   string
	Name string
}

// Filter defines filter options for listing users.
type Filter struct {
	Name     string // substring match
	Page     int
	PageSize int
}
