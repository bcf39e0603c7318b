package balance

import (
	"leavehr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	balances := r.Group("/employees/:id/balances")
	balances.Use(middleware.TenantContext())
	{
		balances.GET("", h.GetForEmployee)
		balances.POST("/recalculate", h.Recalculate)
	}
}
