package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"leavehr/internal/shared/apperror"
	"leavehr/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const summaryCacheTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client) *Handler {
	return &Handler{service: service, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func summaryCacheKey(entityID string, req PeriodSummaryRequest) string {
	return fmt.Sprintf("reports:summary:%s:%s:%s:%s",
		entityID, req.EmployeeID, req.PeriodStart, req.PeriodEnd)
}

func (h *Handler) PeriodSummary(c *gin.Context) {
	ctx := c.Request.Context()
	entityID := c.GetString("entity_id")

	var req PeriodSummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid input", err.Error())
		return
	}

	cacheKey := summaryCacheKey(entityID, req)
	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp PeriodSummaryResponse
			if json.Unmarshal(cached, &resp) == nil {
				response.Success(c, http.StatusOK, resp, nil)
				return
			}
		}
	}

	resp, err := h.service.Summarize(ctx, entityID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
			_ = h.rdb.Set(ctx, cacheKey, payload, summaryCacheTTL).Err()
		}
	}

	response.Success(c, http.StatusOK, resp, nil)
}
