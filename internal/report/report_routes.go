package report

import (
	"leavehr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	reports := r.Group("/reports")
	reports.Use(middleware.TenantContext())
	{
		reports.GET("/leave-summary", h.PeriodSummary)
	}
}
