package service

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ibp-ai/planning-engine/internal/domain"
	"github.com/ibp-ai/planning-engine/internal/metrics"
	"github.com/ibp-ai/planning-engine/internal/scenario"
	"github.com/ibp-ai/planning-engine/internal/store"
)

// ScenarioService evaluates shock scenarios against stored plans.
type ScenarioService struct {
	sessions  *store.SessionStore
	collector *metrics.Collector
}

func NewScenarioService(sessions *store.SessionStore, collector *metrics.Collector) *ScenarioService {
	return &ScenarioService{sessions: sessions, collector: collector}
}

// RunScenario resolves the base plan (explicitly by id, otherwise the first
// plan registered for the request's forecast) and computes before/after KPIs.
func (s *ScenarioService) RunScenario(req domain.ScenarioRequest) (*domain.ScenarioArtifact, error) {
	s.collector.ObserveScenarioRequest()

	plan, err := s.resolveBasePlan(req)
	if err != nil {
		return nil, err
	}

	kpis := scenario.ComputeKPIs(plan, req.Shocks)
	factor := scenario.AverageDemandFactor(req.Shocks)
	narrative := scenario.BuildNarrative(req.Name, kpis, factor)

	artifact := &domain.ScenarioArtifact{
		ScenarioID: uuid.NewString(),
		ForecastID: req.ForecastID,
		PlanID:     plan.PlanID,
		Name:       req.Name,
		KPIs:       kpis,
		Narrative:  narrative,
	}
	s.sessions.Put(store.KindScenario, artifact.ScenarioID, artifact)

	log.Info().
		Str("scenario_id", artifact.ScenarioID).
		Str("plan_id", plan.PlanID).
		Float64("avg_demand_factor", factor).
		Msg("scenario evaluated")

	return artifact, nil
}

func (s *ScenarioService) resolveBasePlan(req domain.ScenarioRequest) (*domain.PlanArtifact, error) {
	if req.PlanID != "" {
		raw, ok := s.sessions.Get(store.KindPlan, req.PlanID)
		if !ok {
			return nil, store.ErrNotFound
		}
		return raw.(*domain.PlanArtifact), nil
	}

	// No explicit plan: first matching plan in insertion order wins.
	for _, raw := range s.sessions.List(store.KindPlan) {
		plan := raw.(*domain.PlanArtifact)
		if plan.ForecastID == req.ForecastID {
			return plan, nil
		}
	}

	return nil, scenario.ErrNoBasePlan
}

// GetScenario resolves a stored scenario artifact by id.
func (s *ScenarioService) GetScenario(id string) (*domain.ScenarioArtifact, error) {
	raw, ok := s.sessions.Get(store.KindScenario, id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return raw.(*domain.ScenarioArtifact), nil
}

// ListScenarios returns scenario summaries, optionally filtered by forecast or
// plan id, in insertion order.
func (s *ScenarioService) ListScenarios(forecastID, planID string) []domain.ScenarioSummary {
	summaries := make([]domain.ScenarioSummary, 0)
	for _, raw := range s.sessions.List(store.KindScenario) {
		sc := raw.(*domain.ScenarioArtifact)
		if forecastID != "" && sc.ForecastID != forecastID {
			continue
		}
		if planID != "" && sc.PlanID != planID {
			continue
		}
		summaries = append(summaries, domain.ScenarioSummary{
			ScenarioID: sc.ScenarioID,
			ForecastID: sc.ForecastID,
			PlanID:     sc.PlanID,
			Name:       sc.Name,
		})
	}
	return summaries
}
