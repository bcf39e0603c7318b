package salary

import (
	"leavehr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	salaries := r.Group("/employee-salaries")
	salaries.Use(middleware.TenantContext())
	{
		salaries.GET("", h.GetAll)
		salaries.POST("", h.Create)
		salaries.GET("/:id", h.GetByID)
		salaries.DELETE("/:id", h.Delete)
	}
}
