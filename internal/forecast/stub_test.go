package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibp-ai/planning-engine/internal/domain"
)

func TestStubForecastDeterministic(t *testing.T) {
	first := StubForecast(100, 14)
	second := StubForecast(100, 14)

	require.Len(t, first, 14)
	assert.Equal(t, first, second)
}

func TestStubForecastNonNegative(t *testing.T) {
	for _, base := range []float64{0, 1, 100, 1e6} {
		for _, v := range StubForecast(base, 30) {
			assert.GreaterOrEqual(t, v, 0.0)
		}
	}
}

func TestStubForecastEmptyHorizon(t *testing.T) {
	assert.Empty(t, StubForecast(100, 0))
	assert.Empty(t, StubForecast(100, -3))
}

func TestStubForecastSingleStep(t *testing.T) {
	// With one step the phase is 0 and the trend stays at its -8% start.
	values := StubForecast(100, 1)
	require.Len(t, values, 1)
	assert.InDelta(t, 92.0, values[0], 1e-9)
}

func TestStubStrategyUsesHistoricalMean(t *testing.T) {
	history := domain.TimeSeries{
		{Date: domain.NewDate(2025, 1, 1), Quantity: 10},
		{Date: domain.NewDate(2025, 1, 2), Quantity: 30},
	}
	horizon := []domain.Date{domain.NewDate(2025, 2, 1)}

	values, err := StubStrategy{}.FitForecast(history, horizon)
	require.NoError(t, err)
	require.Len(t, values, 1)
	// mean=20, single step gives base*(1-0.08)
	assert.InDelta(t, 18.4, values[0], 1e-9)
}

func TestStubStrategyDefaultsWithoutHistory(t *testing.T) {
	horizon := []domain.Date{domain.NewDate(2025, 2, 1)}

	values, err := StubStrategy{}.FitForecast(nil, horizon)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.InDelta(t, 92.0, values[0], 1e-9)
}

func TestQuantileBandOrdering(t *testing.T) {
	for _, mean := range []float64{0, 5, 123.4} {
		q10, q50, q90 := QuantileBand(mean)
		assert.LessOrEqual(t, q10, q50)
		assert.LessOrEqual(t, q50, q90)
		assert.Equal(t, mean, q50)
	}
}
