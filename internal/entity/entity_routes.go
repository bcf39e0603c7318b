package entity

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the legal-entity admin endpoints. These are not
// tenant-scoped: they manage the tenants themselves.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	entities := r.Group("/entities")
	{
		entities.GET("", handler.GetAll)
		entities.GET("/:id", handler.GetByID)
		entities.POST("", handler.Create)
		entities.PUT("/:id", handler.Update)
		entities.DELETE("/:id", handler.Delete)
	}
}
