package forecast

import (
	"errors"

	"github.com/ibp-ai/planning-engine/internal/domain"
)

// ErrInapplicable is returned by a strategy that declines to run: the history
// is too short, the horizon is empty, or fitting failed numerically. It is
// always absorbed by the selector, never surfaced to callers of the engine.
var ErrInapplicable = errors.New("strategy not applicable")

// Strategy is one point-forecasting algorithm. FitForecast fits on the given
// history and predicts a non-negative value for every horizon date, or returns
// ErrInapplicable. The strategy set is closed: stub, arima, seasonal, boosted.
type Strategy interface {
	Name() string
	FitForecast(history domain.TimeSeries, horizon []domain.Date) ([]float64, error)
}

// Strategy name constants used in metrics keys and forecast metadata.
const (
	StrategyStub     = "stub"
	StrategyARIMA    = "arima"
	StrategySeasonal = "seasonal"
	StrategyBoosted  = "boosted"
)

// modelCodes maps a chosen strategy to the numeric code reported under
// "{sku}.chosen_model" in the metrics mapping. Unknown names map to -1.
var modelCodes = map[string]float64{
	StrategyStub:     0,
	StrategyARIMA:    1,
	StrategySeasonal: 2,
	StrategyBoosted:  3,
}

// ModelCode returns the numeric metrics code for a strategy name.
func ModelCode(name string) float64 {
	if code, ok := modelCodes[name]; ok {
		return code
	}
	return -1
}
