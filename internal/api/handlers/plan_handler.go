package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/ibp-ai/planning-engine/internal/domain"
	"github.com/ibp-ai/planning-engine/internal/service"
	"github.com/ibp-ai/planning-engine/internal/store"
)

type PlanHandler struct {
	planningService *service.PlanningService
}

func NewPlanHandler(planningService *service.PlanningService) *PlanHandler {
	return &PlanHandler{planningService: planningService}
}

// GeneratePlan turns a stored forecast into order and production recommendations
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	var req domain.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan request", "details": err.Error()})
		return
	}

	artifact, err := h.planningService.GeneratePlan(req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "forecast not found"})
			return
		}
		log.Error().Err(err).Str("forecast_id", req.ForecastID).Msg("failed to generate plan")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate plan"})
		return
	}

	c.JSON(http.StatusOK, artifact)
}
