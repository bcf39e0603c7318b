package staffing

import (
	"leavehr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	rules := r.Group("/staffing-rules")
	rules.Use(middleware.TenantContext())
	{
		rules.GET("", h.GetAll)
		rules.POST("", h.Create)
		rules.PUT("/:id", h.Update)
		rules.DELETE("/:id", h.Delete)
	}
}
