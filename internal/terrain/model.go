package terrain

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/apperror"
)

const MaxNameLength = 50

var (
	ErrNotFound    = apperror.New(http.StatusNotFound, apperror.KindNotFound, "terrain not found")
	ErrNameTaken   = apperror.New(http.StatusConflict, apperror.KindConstraintViolation, "terrain name already taken")
	ErrInvalidName = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "terrain name must be between 1 and 50 characters")
	ErrNoChange    = apperror.New(http.StatusBadRequest, apperror.KindNoChange, "terrain availability is already set to the requested value")
)

// Terrain is a bookable court.
type Terrain struct {
	ID          string // UUID
	Name        string
	IsAvailable bool
	CreatedAt   time.Time
}

// Filter defines filter options for listing terrains.
type Filter struct {
	Name        string // substring match
	IsAvailable *bool
	Page        int
	PageSize    int
}
