package service

import (
	"github.com/ibp-ai/planning-engine/internal/domain"
	"github.com/ibp-ai/planning-engine/internal/explain"
	"github.com/ibp-ai/planning-engine/internal/featurestore"
	"github.com/ibp-ai/planning-engine/internal/store"
)

const signalSummaryWindowDays = 14

// ExplainService builds driver attributions for stored forecasts, enriched
// with a digest of recent external signals.
type ExplainService struct {
	sessions *store.SessionStore
	loader   *featurestore.Loader
}

func NewExplainService(sessions *store.SessionStore, loader *featurestore.Loader) *ExplainService {
	return &ExplainService{sessions: sessions, loader: loader}
}

func (s *ExplainService) ExplainForecast(forecastID, location string) (*domain.ExplainResponse, error) {
	raw, ok := s.sessions.Get(store.KindForecast, forecastID)
	if !ok {
		return nil, store.ErrNotFound
	}
	artifact := raw.(*domain.ForecastArtifact)

	summary := ""
	if s.loader != nil {
		summary = s.loader.SummarizeSignals(location, signalSummaryWindowDays)
	}

	return explain.BuildExplanation(artifact, summary), nil
}
