package leave

import (
	"leavehr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.TenantContext())
	{
		requests.GET("", h.GetAll)
		requests.POST("", h.Create)
		requests.POST("/validate", h.Validate)
		requests.GET("/:id", h.GetByID)
		requests.POST("/:id/approve", h.Approve)
		requests.POST("/:id/decline", h.Decline)
		requests.POST("/:id/cancel", h.Cancel)
	}
}
