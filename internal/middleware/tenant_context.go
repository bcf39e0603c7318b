package middleware

import (
	"net/http"

	"leavehr/internal/shared/contextutil"
	"leavehr/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	entityHeader = "X-Entity-ID"
	actorHeader  = "X-Actor-ID"
)

// TenantContext resolves the legal-entity scope and acting employee for
// the request. Identity verification happens upstream at the gateway;
// this layer only requires that a well-formed entity scope is present and
// propagates it to the service layer.
func TenantContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		entityID := c.GetHeader(entityHeader)
		if _, err := uuid.Parse(entityID); err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_TENANT",
				"a valid "+entityHeader+" header is required", nil)
			c.Abort()
			return
		}

		actorID := c.GetHeader(actorHeader)

		c.Set("entity_id", entityID)
		c.Set("actor_id", actorID)

		ctx := contextutil.WithActorID(c.Request.Context(), actorID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
