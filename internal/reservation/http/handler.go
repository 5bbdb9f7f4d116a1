package http

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/terrain-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/terrain-booking-backend/internal/reservation"
)

type Handler struct {
	service reservation.Service
}

func NewHandler(service reservation.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	req.Normalize()

	filter := reservation.Filter{
		UserID:    req.UserID,
		TerrainID: req.TerrainID,
		Date:      req.Date,
		StartTime: req.StartTime,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}

	reservations, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		items[i] = NewResponse(r)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total, selfHref(req)))
}

// Create runs the admission process for a booking request.
func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	res, err := h.service.Admit(c.Request.Context(), reservation.AdmitRequest{
		UserName:        req.UserName,
		TerrainName:     req.TerrainName,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.Duration,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(res))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	res, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(res))
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

// selfHref rebuilds the list URL with the active filters.
func selfHref(req ListReservationsRequest) string {
	q := url.Values{}
	if req.UserID != "" {
		q.Set("user_id", req.UserID)
	}
	if req.TerrainID != "" {
		q.Set("terrain_id", req.TerrainID)
	}
	if req.Date != "" {
		q.Set("date", req.Date)
	}
	if req.StartTime != "" {
		q.Set("start_time", req.StartTime)
	}
	if len(q) == 0 {
		return "/v1/reservations"
	}
	return "/v1/reservations?" + q.Encode()
}
