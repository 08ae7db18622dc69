package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/ibp-ai/planning-engine/internal/domain"
	"github.com/ibp-ai/planning-engine/internal/scenario"
	"github.com/ibp-ai/planning-engine/internal/service"
	"github.com/ibp-ai/planning-engine/internal/store"
)

type ScenarioHandler struct {
	scenarioService *service.ScenarioService
}

func NewScenarioHandler(scenarioService *service.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{scenarioService: scenarioService}
}

// RunScenario evaluates shocks against a stored plan
func (h *ScenarioHandler) RunScenario(c *gin.Context) {
	var req domain.ScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid scenario request", "details": err.Error()})
		return
	}

	artifact, err := h.scenarioService.RunScenario(req)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
		case errors.Is(err, scenario.ErrNoBasePlan):
			c.JSON(http.StatusNotFound, gin.H{"error": "no plan found for forecast; generate a plan first"})
		default:
			log.Error().Err(err).Str("forecast_id", req.ForecastID).Msg("failed to run scenario")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to run scenario"})
		}
		return
	}

	c.JSON(http.StatusOK, artifact)
}

// ListScenarios returns scenario summaries with optional forecast/plan filters
func (h *ScenarioHandler) ListScenarios(c *gin.Context) {
	forecastID := c.Query("forecast_id")
	planID := c.Query("plan_id")

	summaries := h.scenarioService.ListScenarios(forecastID, planID)
	c.JSON(http.StatusOK, gin.H{"scenarios": summaries})
}

// GetScenario returns a stored scenario artifact
func (h *ScenarioHandler) GetScenario(c *gin.Context) {
	scenarioID := c.Param("scenario_id")
	artifact, err := h.scenarioService.GetScenario(scenarioID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "scenario not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch scenario"})
		return
	}

	c.JSON(http.StatusOK, artifact)
}
