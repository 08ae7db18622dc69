package forecast

import (
	"math"

	"github.com/ibp-ai/planning-engine/internal/domain"
)

// stubBaseLevel is the constant demand level assumed when a SKU has no history.
const stubBaseLevel = 100.0

// StubStrategy is the always-applicable fallback. It perturbs the historical
// mean with a deterministic sinusoid plus linear trend so the output looks like
// a demand curve rather than a flat line.
type StubStrategy struct{}

func (StubStrategy) Name() string { return StrategyStub }

func (StubStrategy) FitForecast(history domain.TimeSeries, horizon []domain.Date) ([]float64, error) {
	base := stubBaseLevel
	if len(history) > 0 {
		base = history.Mean()
	}
	return StubForecast(base, len(horizon)), nil
}

// StubForecast produces the deterministic fallback curve around a base level.
// For step i of an n-step horizon the phase advances through 2.5π, a 12%
// seasonal swing and a -8%..+8% linear trend scale the base, and a small
// secondary sinusoid adds texture. Values are floored at 0.
func StubForecast(base float64, horizon int) []float64 {
	if horizon <= 0 {
		return []float64{}
	}

	values := make([]float64, horizon)
	for i := range values {
		phase := float64(i) / float64(horizon) * 2.5 * math.Pi
		seasonal := 0.12 * math.Sin(phase)
		trend := -0.08
		if horizon > 1 {
			trend += 0.16 * float64(i) / float64(horizon-1)
		}
		noise := 0.05 * base * math.Sin(1.7*phase)
		values[i] = math.Max(0, base*(1+seasonal+trend)+noise)
	}
	return values
}
