package holiday

import (
	"leavehr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	holidays := r.Group("/public-holidays")
	holidays.Use(middleware.TenantContext())
	{
		holidays.GET("", h.GetAll)
		holidays.POST("", h.Create)
		holidays.DELETE("/:id", h.Delete)
	}
}
