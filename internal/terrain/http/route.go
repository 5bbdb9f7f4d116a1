package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	terrains := r.Group("/terrains")
	{
		terrains.GET("", h.List)
		terrains.POST("", h.Create)
		terrains.GET("/:id", h.Get)
		terrains.PATCH("/:id", h.UpdateAvailability)
		terrains.DELETE("/:id", h.Delete)
	}
}
