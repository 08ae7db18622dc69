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

type ForecastHandler struct {
	forecastService *service.ForecastService
}

func NewForecastHandler(forecastService *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{forecastService: forecastService}
}

// GenerateForecast runs model selection per SKU and returns the stored artifact
func (h *ForecastHandler) GenerateForecast(c *gin.Context) {
	var req domain.ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid forecast request", "details": err.Error()})
		return
	}

	if req.Granularity != "" && !req.Granularity.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "granularity must be one of day, week, month"})
		return
	}

	artifact, err := h.forecastService.GenerateForecast(c.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate forecast")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate forecast"})
		return
	}

	c.JSON(http.StatusOK, artifact)
}

// GetForecast returns a previously generated forecast artifact
func (h *ForecastHandler) GetForecast(c *gin.Context) {
	forecastID := c.Param("forecast_id")
	artifact, err := h.forecastService.GetForecast(forecastID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "forecast not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch forecast"})
		return
	}

	c.JSON(http.StatusOK, artifact)
}
