package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibp-ai/planning-engine/internal/domain"
	"github.com/ibp-ai/planning-engine/internal/forecast"
	"github.com/ibp-ai/planning-engine/internal/scenario"
	"github.com/ibp-ai/planning-engine/internal/store"
)

type fixedSource struct {
	histories map[string]domain.TimeSeries
}

func (s *fixedSource) GetHistory(ctx context.Context, sku, location string) (domain.TimeSeries, error) {
	return s.histories[sku], nil
}

func historyOf(start domain.Date, values ...float64) domain.TimeSeries {
	series := make(domain.TimeSeries, len(values))
	for i, v := range values {
		series[i] = domain.SeriesPoint{Date: start.AddDays(i), Quantity: v}
	}
	return series
}

func newTestServices(t *testing.T) (*ForecastService, *PlanningService, *ScenarioService, *store.SessionStore) {
	t.Helper()

	source := &fixedSource{histories: map[string]domain.TimeSeries{
		"SKU-A": historyOf(domain.NewDate(2025, 1, 1), 50, 52, 49, 55, 51, 56, 50, 57, 52, 58),
		"SKU-B": historyOf(domain.NewDate(2025, 1, 1), 20, 22, 19, 25),
	}}

	sessions := store.New()
	engine := forecast.NewEngine(source, nil)

	return NewForecastService(engine, sessions, nil),
		NewPlanningService(sessions, nil),
		NewScenarioService(sessions, nil),
		sessions
}

func TestForecastPlanScenarioPipeline(t *testing.T) {
	forecastSvc, planSvc, scenarioSvc, _ := newTestServices(t)

	forecastArtifact, err := forecastSvc.GenerateForecast(context.Background(), domain.ForecastRequest{
		SKUList:   []string{"SKU-A", "SKU-B"},
		StartDate: domain.NewDate(2025, 2, 1),
		EndDate:   domain.NewDate(2025, 2, 7),
	})
	require.NoError(t, err)
	require.NotEmpty(t, forecastArtifact.ForecastID)

	// Two SKUs over a 7-day daily horizon.
	assert.Len(t, forecastArtifact.Points, 14)

	fetched, err := forecastSvc.GetForecast(forecastArtifact.ForecastID)
	require.NoError(t, err)
	assert.Equal(t, forecastArtifact, fetched)

	planArtifact, err := planSvc.GeneratePlan(domain.PlanRequest{
		ForecastID: forecastArtifact.ForecastID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, planArtifact.PlanID)
	assert.Equal(t, forecastArtifact.ForecastID, planArtifact.ForecastID)
	require.NotEmpty(t, planArtifact.KPIs)
	assert.Equal(t, "Target Service Level", planArtifact.KPIs[1].Name)
	assert.Equal(t, 0.95, planArtifact.KPIs[1].Value)

	scenarioArtifact, err := scenarioSvc.RunScenario(domain.ScenarioRequest{
		ForecastID: forecastArtifact.ForecastID,
		Name:       "Demand Surge",
		Shocks: []domain.ScenarioShock{
			{Type: domain.ShockDemand, Factor: 1.2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, planArtifact.PlanID, scenarioArtifact.PlanID)

	require.Len(t, scenarioArtifact.KPIs, 1)
	kpi := scenarioArtifact.KPIs[0]
	assert.InDelta(t, kpi.Base*0.2, kpi.Delta, 1e-6)
	assert.Contains(t, scenarioArtifact.Narrative, "increase")
	assert.Contains(t, scenarioArtifact.Narrative, "Demand Surge")
}

func TestGeneratePlanUnknownForecast(t *testing.T) {
	_, planSvc, _, _ := newTestServices(t)

	_, err := planSvc.GeneratePlan(domain.PlanRequest{ForecastID: "missing"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetForecastUnknownID(t *testing.T) {
	forecastSvc, _, _, _ := newTestServices(t)

	_, err := forecastSvc.GetForecast("missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRunScenarioWithoutPlan(t *testing.T) {
	forecastSvc, _, scenarioSvc, _ := newTestServices(t)

	forecastArtifact, err := forecastSvc.GenerateForecast(context.Background(), domain.ForecastRequest{
		SKUList:   []string{"SKU-A"},
		StartDate: domain.NewDate(2025, 2, 1),
		EndDate:   domain.NewDate(2025, 2, 3),
	})
	require.NoError(t, err)

	_, err = scenarioSvc.RunScenario(domain.ScenarioRequest{ForecastID: forecastArtifact.ForecastID})
	assert.ErrorIs(t, err, scenario.ErrNoBasePlan)
}

func TestRunScenarioUnknownExplicitPlan(t *testing.T) {
	_, _, scenarioSvc, _ := newTestServices(t)

	_, err := scenarioSvc.RunScenario(domain.ScenarioRequest{
		ForecastID: "fc-whatever",
		PlanID:     "missing",
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRunScenarioUsesFirstPlanForForecast(t *testing.T) {
	forecastSvc, planSvc, scenarioSvc, _ := newTestServices(t)

	forecastArtifact, err := forecastSvc.GenerateForecast(context.Background(), domain.ForecastRequest{
		SKUList:   []string{"SKU-A"},
		StartDate: domain.NewDate(2025, 2, 1),
		EndDate:   domain.NewDate(2025, 2, 5),
	})
	require.NoError(t, err)

	first, err := planSvc.GeneratePlan(domain.PlanRequest{ForecastID: forecastArtifact.ForecastID})
	require.NoError(t, err)
	_, err = planSvc.GeneratePlan(domain.PlanRequest{ForecastID: forecastArtifact.ForecastID})
	require.NoError(t, err)

	scenarioArtifact, err := scenarioSvc.RunScenario(domain.ScenarioRequest{
		ForecastID: forecastArtifact.ForecastID,
	})
	require.NoError(t, err)
	assert.Equal(t, first.PlanID, scenarioArtifact.PlanID)
}

func TestListScenariosFilters(t *testing.T) {
	forecastSvc, planSvc, scenarioSvc, _ := newTestServices(t)

	forecastArtifact, err := forecastSvc.GenerateForecast(context.Background(), domain.ForecastRequest{
		SKUList:   []string{"SKU-A"},
		StartDate: domain.NewDate(2025, 2, 1),
		EndDate:   domain.NewDate(2025, 2, 5),
	})
	require.NoError(t, err)

	planArtifact, err := planSvc.GeneratePlan(domain.PlanRequest{ForecastID: forecastArtifact.ForecastID})
	require.NoError(t, err)

	a, err := scenarioSvc.RunScenario(domain.ScenarioRequest{
		ForecastID: forecastArtifact.ForecastID, Name: "first",
	})
	require.NoError(t, err)
	b, err := scenarioSvc.RunScenario(domain.ScenarioRequest{
		ForecastID: forecastArtifact.ForecastID, PlanID: planArtifact.PlanID, Name: "second",
	})
	require.NoError(t, err)

	all := scenarioSvc.ListScenarios("", "")
	require.Len(t, all, 2)
	assert.Equal(t, a.ScenarioID, all[0].ScenarioID)
	assert.Equal(t, b.ScenarioID, all[1].ScenarioID)

	byForecast := scenarioSvc.ListScenarios(forecastArtifact.ForecastID, "")
	assert.Len(t, byForecast, 2)

	assert.Empty(t, scenarioSvc.ListScenarios("other-forecast", ""))

	byPlan := scenarioSvc.ListScenarios("", planArtifact.PlanID)
	assert.Len(t, byPlan, 2)

	got, err := scenarioSvc.GetScenario(a.ScenarioID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Name)
}
