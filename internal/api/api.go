package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ibp-ai/planning-engine/internal/api/handlers"
	"github.com/ibp-ai/planning-engine/internal/api/middleware"
	"github.com/ibp-ai/planning-engine/internal/config"
	"github.com/ibp-ai/planning-engine/internal/metrics"
	"github.com/ibp-ai/planning-engine/internal/service"
)

type Services struct {
	ForecastService *service.ForecastService
	PlanningService *service.PlanningService
	ScenarioService *service.ScenarioService
	ExplainService  *service.ExplainService
}

func NewRouter(services *Services, cfg *config.Config, collector *metrics.Collector) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-API-Key", "X-Role"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.Server.AllowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(cfg.Server.AllowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if collector != nil {
		router.GET("/metrics", gin.WrapH(collector.Handler()))
	}

	apiGroup := router.Group("/api/v1")
	apiGroup.Use(middleware.Authenticate(cfg.Auth))

	if services != nil {
		if services.ForecastService != nil {
			forecastHandler := handlers.NewForecastHandler(services.ForecastService)
			apiGroup.POST("/forecast", middleware.RequireRole("planner", "admin"), forecastHandler.GenerateForecast)
			apiGroup.GET("/forecast/:forecast_id", middleware.RequireRole("planner", "admin", "viewer"), forecastHandler.GetForecast)
		}

		if services.PlanningService != nil {
			planHandler := handlers.NewPlanHandler(services.PlanningService)
			apiGroup.POST("/plan/generate", middleware.RequireRole("planner", "admin"), planHandler.GeneratePlan)
		}

		if services.ScenarioService != nil {
			scenarioHandler := handlers.NewScenarioHandler(services.ScenarioService)
			apiGroup.POST("/scenario", middleware.RequireRole("planner", "admin"), scenarioHandler.RunScenario)
			apiGroup.GET("/scenario", middleware.RequireRole("planner", "admin", "viewer"), scenarioHandler.ListScenarios)
			apiGroup.GET("/scenario/:scenario_id", middleware.RequireRole("planner", "admin", "viewer"), scenarioHandler.GetScenario)
		}

		if services.ExplainService != nil {
			explainHandler := handlers.NewExplainHandler(services.ExplainService)
			apiGroup.GET("/explain/:forecast_id", middleware.RequireRole("planner", "admin", "viewer"), explainHandler.ExplainForecast)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
