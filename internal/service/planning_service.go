package service

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ibp-ai/planning-engine/internal/domain"
	"github.com/ibp-ai/planning-engine/internal/metrics"
	"github.com/ibp-ai/planning-engine/internal/planning"
	"github.com/ibp-ai/planning-engine/internal/store"
)

// PlanningService turns a stored forecast into a supply plan artifact.
type PlanningService struct {
	sessions  *store.SessionStore
	collector *metrics.Collector
}

func NewPlanningService(sessions *store.SessionStore, collector *metrics.Collector) *PlanningService {
	return &PlanningService{sessions: sessions, collector: collector}
}

func (s *PlanningService) GeneratePlan(req domain.PlanRequest) (*domain.PlanArtifact, error) {
	s.collector.ObservePlanRequest()

	raw, ok := s.sessions.Get(store.KindForecast, req.ForecastID)
	if !ok {
		return nil, store.ErrNotFound
	}
	forecastArtifact := raw.(*domain.ForecastArtifact)

	constraints := domain.DefaultConstraints()
	if req.Constraints != nil {
		constraints = *req.Constraints
	}

	orders, production, kpis := planning.GeneratePlan(forecastArtifact.Points, constraints, req.Location)

	artifact := &domain.PlanArtifact{
		PlanID:     uuid.NewString(),
		ForecastID: req.ForecastID,
		Orders:     orders,
		Production: production,
		KPIs:       kpis,
	}
	s.sessions.Put(store.KindPlan, artifact.PlanID, artifact)

	log.Info().
		Str("plan_id", artifact.PlanID).
		Str("forecast_id", req.ForecastID).
		Int("orders", len(orders)).
		Int("production", len(production)).
		Msg("supply plan generated")

	return artifact, nil
}
