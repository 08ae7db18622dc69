package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ibp-ai/planning-engine/internal/domain"
	"github.com/ibp-ai/planning-engine/internal/forecast"
	"github.com/ibp-ai/planning-engine/internal/metrics"
	"github.com/ibp-ai/planning-engine/internal/store"
)

// ForecastService generates forecast artifacts and registers them in the
// session store under fresh ids.
type ForecastService struct {
	engine    *forecast.Engine
	sessions  *store.SessionStore
	collector *metrics.Collector
}

func NewForecastService(engine *forecast.Engine, sessions *store.SessionStore, collector *metrics.Collector) *ForecastService {
	return &ForecastService{engine: engine, sessions: sessions, collector: collector}
}

func (s *ForecastService) GenerateForecast(ctx context.Context, req domain.ForecastRequest) (*domain.ForecastArtifact, error) {
	s.collector.ObserveForecastRequest()

	result, err := s.engine.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	artifact := &domain.ForecastArtifact{
		ForecastID: uuid.NewString(),
		Points:     result.Points,
		Metadata:   result.Metadata,
		Metrics:    result.Metrics,
	}
	s.sessions.Put(store.KindForecast, artifact.ForecastID, artifact)

	log.Info().
		Str("forecast_id", artifact.ForecastID).
		Int("skus", len(req.SKUList)).
		Int("points", len(artifact.Points)).
		Msg("forecast generated")

	return artifact, nil
}

// GetForecast resolves a stored forecast artifact by id.
func (s *ForecastService) GetForecast(id string) (*domain.ForecastArtifact, error) {
	raw, ok := s.sessions.Get(store.KindForecast, id)
	if !ok {
		return nil, store.ErrNotFound
	}
	return raw.(*domain.ForecastArtifact), nil
}
