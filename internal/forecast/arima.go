package forecast

import (
	"errors"
	"math"

	"github.com/ibp-ai/planning-engine/internal/domain"
)

// ARIMAStrategy fits a fixed-order ARIMA(1,1,1) on the raw history. The AR and
// MA coefficients are estimated by a conditional sum-of-squares grid search
// over the differenced series, which is deterministic and has no convergence
// machinery to fail in surprising ways. Requires at least 4 observations.
type ARIMAStrategy struct{}

func (ARIMAStrategy) Name() string { return StrategyARIMA }

func (ARIMAStrategy) FitForecast(history domain.TimeSeries, horizon []domain.Date) ([]float64, error) {
	if len(history) < 4 || len(horizon) < 1 {
		return nil, ErrInapplicable
	}

	forecasts, err := arimaForecast(history.Values(), len(horizon))
	if err != nil {
		return nil, ErrInapplicable
	}
	return forecasts, nil
}

const (
	arimaCoefMin  = -0.95
	arimaCoefMax  = 0.95
	arimaCoefStep = 0.05
)

func arimaForecast(values []float64, steps int) ([]float64, error) {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.New("non-finite history value")
		}
	}

	// First difference removes the integrated component.
	diffs := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		diffs[i-1] = values[i] - values[i-1]
	}

	var meanDiff float64
	for _, d := range diffs {
		meanDiff += d
	}
	meanDiff /= float64(len(diffs))

	bestSSE := math.Inf(1)
	var bestPhi, bestTheta, bestC float64

	for phi := arimaCoefMin; phi <= arimaCoefMax+arimaCoefStep/2; phi += arimaCoefStep {
		for theta := arimaCoefMin; theta <= arimaCoefMax+arimaCoefStep/2; theta += arimaCoefStep {
			// Intercept chosen so the unconditional mean of the AR part
			// matches the differenced series mean.
			c := (1 - phi) * meanDiff
			sse, innovation := 0.0, 0.0
			for t := 1; t < len(diffs); t++ {
				resid := diffs[t] - (c + phi*diffs[t-1] + theta*innovation)
				sse += resid * resid
				innovation = resid
			}
			if sse < bestSSE {
				bestSSE = sse
				bestPhi, bestTheta, bestC = phi, theta, c
			}
		}
	}

	if math.IsInf(bestSSE, 1) || math.IsNaN(bestSSE) {
		return nil, errors.New("conditional sum of squares failed")
	}

	// Replay the innovations with the winning coefficients so the forecast
	// starts from the correct one-step-ahead state.
	innovation := 0.0
	for t := 1; t < len(diffs); t++ {
		innovation = diffs[t] - (bestC + bestPhi*diffs[t-1] + bestTheta*innovation)
	}

	level := values[len(values)-1]
	prevDiff := diffs[len(diffs)-1]

	forecasts := make([]float64, steps)
	for i := 0; i < steps; i++ {
		nextDiff := bestC + bestPhi*prevDiff + bestTheta*innovation
		level += nextDiff
		forecasts[i] = math.Max(0, level)
		prevDiff = nextDiff
		innovation = 0
	}
	return forecasts, nil
}
