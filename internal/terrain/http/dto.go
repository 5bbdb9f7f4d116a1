package http

import (
	"time"

	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/terrain-booking-backend/internal/terrain"
)

type ListTerrainsRequest struct {
	request.ListParams
	Name        string `form:"name" binding:"omitempty,max=50"`
	IsAvailable *bool  `form:"is_available" binding:"omitempty"`
}

type TerrainResponse struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	IsAvailable bool                     `json:"is_available"`
	CreatedAt   time.Time                `json:"created_at"`
	Links       map[string]response.Link `json:"_links"`
}

func NewResponse(t *terrain.Terrain) TerrainResponse {
	links := response.SelfLinks("/v1/terrains/" + t.ID)
	links = response.WithLink(links, "terrains", "/v1/terrains")
	links = response.WithLink(links, "reservations", "/v1/reservations?terrain_id="+t.ID)

	return TerrainResponse{
		ID:          t.ID,
		Name:        t.Name,
		IsAvailable: t.IsAvailable,
		CreatedAt:   t.CreatedAt,
		Links:       links,
	}
}

type CreateRequest struct {
	Name string `json:"name" binding:"required,max=50"`
	// Defaults to true when omitted.
	IsAvailable *bool `json:"is_available"`
}

// UpdateAvailabilityRequest carries the administrator's credentials alongside
// the new flag; there is no session to take them from.
type UpdateAvailabilityRequest struct {
	AdminName   string `json:"admin_name" binding:"required"`
	AdminSecret string `json:"admin_secret" binding:"required"`
	IsAvailable *bool  `json:"is_available" binding:"required"`
}
