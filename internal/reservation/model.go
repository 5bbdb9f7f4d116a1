package reservation

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/apperror"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, apperror.KindNotFound, "reservation not found")
	ErrUnknownUser        = apperror.New(http.StatusNotFound, apperror.KindUnknownUser, "user not found")
	ErrUnknownTerrain     = apperror.New(http.StatusNotFound, apperror.KindUnknownResource, "terrain not found")
	ErrTerrainUnavailable = apperror.New(http.StatusConflict, apperror.KindResourceUnavailable, "terrain is not available for booking")
	ErrOutOfWindow        = apperror.New(http.StatusBadRequest, apperror.KindOutOfWindow, "reservations are only accepted within opening hours")
	ErrSlotTaken          = apperror.New(http.StatusConflict, apperror.KindSlotTaken, "this time slot is already reserved")
	ErrReferenceMissing   = apperror.New(http.StatusConflict, apperror.KindConstraintViolation, "user or terrain no longer exists")
	ErrInvalidInput       = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "invalid reservation date, time or duration")
)

// Reservation is a committed booking of one terrain slot.
type Reservation struct {
	ID              string
	UserID          string
	UserName        string
	TerrainID       string
	TerrainName     string
	Date            string // YYYY-MM-DD
	StartTime       string // HH:MM:SS
	DurationMinutes int
	CreatedAt       time.Time
}

type Filter struct {
	UserID    string
	TerrainID string
	Date      string // YYYY-MM-DD, exact day
	StartTime string // HH:MM or HH:MM:SS, exact start
	Page      int
	PageSize  int
}

// Policy holds the booking rules applied at admission.
type Policy struct {
	// OpenHour and CloseHour bound the accepted start hour, both inclusive.
	OpenHour        int
	CloseHour       int
	DefaultDuration int // minutes
}

// DefaultPolicy accepts start hours 10 through 22 and books 45 minutes.
func DefaultPolicy() Policy {
	return Policy{
		OpenHour:        10,
		CloseHour:       22,
		DefaultDuration: 45,
	}
}

// Allows reports whether a reservation may start at hour.
func (p Policy) Allows(hour int) bool {
	return hour >= p.OpenHour && hour <= p.CloseHour
}
