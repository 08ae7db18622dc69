package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibp-ai/planning-engine/internal/domain"
)

func TestSelectorShortHistoryFallsBackToStub(t *testing.T) {
	selector := NewSelector(nil)
	history := dailyHistory(domain.NewDate(2025, 1, 1), 10, 12, 11)
	horizon := dailyHorizon(domain.NewDate(2025, 2, 1), 5)

	selection := selector.SelectAndForecast(history, horizon, "")

	assert.Equal(t, StrategyStub, selection.Chosen)
	assert.Len(t, selection.Values, 5)
	assert.Empty(t, selection.Metrics)
}

func TestSelectorEmptyHorizonFallsBackToStub(t *testing.T) {
	selector := NewSelector(nil)
	history := dailyHistory(domain.NewDate(2025, 1, 1), 10, 12, 11, 13, 9, 14, 10, 12)

	selection := selector.SelectAndForecast(history, nil, "")

	assert.Equal(t, StrategyStub, selection.Chosen)
	assert.Empty(t, selection.Values)
}

func TestSelectorChoosesCandidateAndReportsMetrics(t *testing.T) {
	selector := NewSelector(nil)
	history := dailyHistory(domain.NewDate(2025, 1, 1),
		50, 52, 49, 55, 51, 56, 50, 57, 52, 58, 51, 59, 53, 60)
	horizon := dailyHorizon(domain.NewDate(2025, 2, 1), 7)

	selection := selector.SelectAndForecast(history, horizon, "")

	assert.Contains(t, []string{StrategyARIMA, StrategySeasonal, StrategyBoosted}, selection.Chosen)
	require.Len(t, selection.Values, 7)

	// The winner's validation scores must be reported and finite.
	mape, ok := selection.Metrics[selection.Chosen+"_mape"]
	require.True(t, ok)
	assert.False(t, math.IsInf(mape, 0))
	mae, ok := selection.Metrics[selection.Chosen+"_mae"]
	require.True(t, ok)
	assert.False(t, math.IsInf(mae, 0))

	for _, v := range selection.Values {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestSelectorForcedModelSkipsValidation(t *testing.T) {
	selector := NewSelector(nil)
	history := dailyHistory(domain.NewDate(2025, 1, 1),
		50, 52, 49, 55, 51, 56, 50, 57, 52, 58)
	horizon := dailyHorizon(domain.NewDate(2025, 2, 1), 3)

	selection := selector.SelectAndForecast(history, horizon, StrategyARIMA)

	assert.Equal(t, StrategyARIMA, selection.Chosen)
	assert.Len(t, selection.Values, 3)
	assert.Empty(t, selection.Metrics)
}

func TestSelectorForcedStub(t *testing.T) {
	selector := NewSelector(nil)
	history := dailyHistory(domain.NewDate(2025, 1, 1),
		50, 52, 49, 55, 51, 56, 50, 57)
	horizon := dailyHorizon(domain.NewDate(2025, 2, 1), 4)

	selection := selector.SelectAndForecast(history, horizon, StrategyStub)

	assert.Equal(t, StrategyStub, selection.Chosen)
	assert.Len(t, selection.Values, 4)
}

func TestSelectorForcedUnknownModelUsesStub(t *testing.T) {
	selector := NewSelector(nil)
	history := dailyHistory(domain.NewDate(2025, 1, 1),
		50, 52, 49, 55, 51, 56, 50, 57)
	horizon := dailyHorizon(domain.NewDate(2025, 2, 1), 4)

	selection := selector.SelectAndForecast(history, horizon, "prophet")

	assert.Equal(t, StrategyStub, selection.Chosen)
	assert.Len(t, selection.Values, 4)
}

func TestSelectorForcedInapplicableModelUsesStub(t *testing.T) {
	selector := NewSelector(nil)
	// Too short for the boosted strategy but forcing it is not an error.
	history := dailyHistory(domain.NewDate(2025, 1, 1), 50, 52, 49, 55)
	horizon := dailyHorizon(domain.NewDate(2025, 2, 1), 4)

	selection := selector.SelectAndForecast(history, horizon, StrategyBoosted)

	assert.Equal(t, StrategyStub, selection.Chosen)
	assert.Len(t, selection.Values, 4)
}

func TestComputeMAPE(t *testing.T) {
	mape := computeMAPE([]float64{10, 20}, []float64{11, 18})
	assert.InDelta(t, (0.1+0.1)/2, mape, 1e-9)

	assert.True(t, math.IsInf(computeMAPE([]float64{0, 0}, []float64{1, 2}), 1))
}

func TestComputeMAE(t *testing.T) {
	mae := computeMAE([]float64{10, 20}, []float64{11, 18})
	assert.InDelta(t, 1.5, mae, 1e-9)

	assert.True(t, math.IsInf(computeMAE(nil, nil), 1))
}
