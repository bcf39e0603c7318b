package policy

import (
	"leavehr/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	leaveTypes := r.Group("/leave-types")
	leaveTypes.Use(middleware.TenantContext())
	{
		leaveTypes.GET("", h.GetLeaveTypes)
		leaveTypes.POST("", h.CreateLeaveType)
	}

	policies := r.Group("/leave-policies")
	policies.Use(middleware.TenantContext())
	{
		policies.GET("", h.GetPolicies)
		policies.POST("", h.CreatePolicy)
		policies.PUT("/:id", h.UpdatePolicy)
	}
}
