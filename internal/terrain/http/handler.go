package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/terrain-booking-backend/internal/terrain"
)

type Handler struct {
	service terrain.Service
}

func NewHandler(service terrain.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListTerrainsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	filter := terrain.Filter{
		Name:        req.Name,
		IsAvailable: req.IsAvailable,
		Page:        req.Page,
		PageSize:    req.PageSize,
	}

	terrains, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]TerrainResponse, len(terrains))
	for i, t := range terrains {
		items[i] = NewResponse(t)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total, "/v1/terrains"))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	t, err := h.service.Create(c.Request.Context(), terrain.CreateRequest{
		Name:        req.Name,
		IsAvailable: available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(t))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(t))
}

// UpdateAvailability opens or closes a terrain. Only administrators may do this.
func (h *Handler) UpdateAvailability(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	t, err := h.service.ChangeAvailability(c.Request.Context(), terrain.ChangeAvailabilityRequest{
		AdminName:   body.AdminName,
		AdminSecret: body.AdminSecret,
		TerrainID:   uri.ID,
		Available:   *body.IsAvailable,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(t))
}

func (h *Handler) Delete(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
