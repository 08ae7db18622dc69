package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ibp-ai/planning-engine/internal/service"
	"github.com/ibp-ai/planning-engine/internal/store"
)

type ExplainHandler struct {
	explainService *service.ExplainService
}

func NewExplainHandler(explainService *service.ExplainService) *ExplainHandler {
	return &ExplainHandler{explainService: explainService}
}

// ExplainForecast returns driver attributions for a stored forecast
func (h *ExplainHandler) ExplainForecast(c *gin.Context) {
	forecastID := c.Param("forecast_id")
	location := c.Query("location")

	resp, err := h.explainService.ExplainForecast(forecastID, location)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "forecast not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to explain forecast"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
