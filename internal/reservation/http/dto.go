package http

import (
	"time"

	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/terrain-booking-backend/internal/reservation"
)

type ListReservationsRequest struct {
	request.ListParams
	UserID    string `form:"user_id" binding:"omitempty,uuid"`
	TerrainID string `form:"terrain_id" binding:"omitempty,uuid"`
	Date      string `form:"date" binding:"omitempty,civildate"`
	StartTime string `form:"start_time" binding:"omitempty,clock"`
}

// CreateReservationRequest only checks presence. Format and range checks
// belong to admission so that they run after the user and terrain lookups.
type CreateReservationRequest struct {
	UserName    string `json:"username" binding:"required"`
	TerrainName string `json:"terrain" binding:"required"`
	Date        string `json:"reservation_date" binding:"required"`
	StartTime   string `json:"reservation_time" binding:"required"`
	Duration    *int   `json:"duration"`
}

type ReservationResponse struct {
	ID              string                   `json:"id"`
	UserID          string                   `json:"user_id"`
	UserName        string                   `json:"username"`
	TerrainID       string                   `json:"terrain_id"`
	TerrainName     string                   `json:"terrain"`
	Date            string                   `json:"reservation_date"`
	StartTime       string                   `json:"reservation_time"`
	DurationMinutes int                      `json:"duration"`
	CreatedAt       time.Time                `json:"created_at"`
	Links           map[string]response.Link `json:"_links"`
}

func NewResponse(r *reservation.Reservation) ReservationResponse {
	links := response.SelfLinks("/v1/reservations/" + r.ID)
	links = response.WithLink(links, "user", "/v1/users/"+r.UserID)
	links = response.WithLink(links, "terrain", "/v1/terrains/"+r.TerrainID)

	return ReservationResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		UserName:        r.UserName,
		TerrainID:       r.TerrainID,
		TerrainName:     r.TerrainName,
		Date:            r.Date,
		StartTime:       r.StartTime,
		DurationMinutes: r.DurationMinutes,
		CreatedAt:       r.CreatedAt,
		Links:           links,
	}
}
