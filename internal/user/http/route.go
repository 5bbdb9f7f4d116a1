package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all user-related routes.
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler) {
	group := g.Group("/users")
	{
		group.GET("", h.List)
		group.POST("", h.Register)
		group.GET("/:id", h.Get)
		group.DELETE("/:id", h.Delete)
	}
}
