package forecast

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/ibp-ai/planning-engine/internal/domain"
	"github.com/ibp-ai/planning-engine/internal/metrics"
)

// Selector runs holdout validation over the candidate strategies, scores them
// by MAPE, and re-fits the winner on the full history for the real horizon.
// Candidates are evaluated in a fixed priority order (arima, seasonal,
// boosted) and ties on MAPE go to the earlier strategy, so selection never
// depends on map iteration order.
type Selector struct {
	candidates []Strategy
	stub       StubStrategy
	collector  *metrics.Collector
}

func NewSelector(collector *metrics.Collector) *Selector {
	return &Selector{
		candidates: []Strategy{ARIMAStrategy{}, SeasonalStrategy{}, BoostedStrategy{}},
		collector:  collector,
	}
}

// Selection is the outcome of model selection for one SKU.
type Selection struct {
	Values  []float64
	Chosen  string
	Metrics map[string]float64
}

// SelectAndForecast picks a strategy for the history and produces the horizon
// forecast. A non-empty forced name bypasses validation: the forced strategy
// runs on the full history if applicable, otherwise the stub is used and
// reported as chosen; forcing an inapplicable model is not an error.
func (s *Selector) SelectAndForecast(history domain.TimeSeries, horizon []domain.Date, forced string) Selection {
	if forced != "" {
		return s.forcedForecast(history, horizon, forced)
	}

	if len(history) < 4 || len(horizon) == 0 {
		return s.stubSelection(history, horizon, map[string]float64{})
	}

	nVal := len(history) / 4
	if nVal < 1 {
		nVal = 1
	}
	if nVal > 3 {
		nVal = 3
	}

	train := history[:len(history)-nVal]
	validation := history[len(history)-nVal:]

	if len(train) < 4 {
		return s.stubSelection(history, horizon, map[string]float64{})
	}

	valDates := make([]domain.Date, len(validation))
	valActual := make([]float64, len(validation))
	for i, p := range validation {
		valDates[i] = p.Date
		valActual[i] = p.Quantity
	}

	scores := make(map[string]float64)
	reported := make(map[string]float64)

	for _, strat := range s.candidates {
		predicted, err := strat.FitForecast(train, valDates)
		if err != nil {
			s.observeFailure(strat.Name(), len(train), len(valDates))
			continue
		}

		mape := computeMAPE(valActual, predicted)
		mae := computeMAE(valActual, predicted)

		// Infinite scores (no positive actuals) are unusable for selection
		// and would not survive JSON encoding, so they are not reported.
		if !math.IsInf(mape, 1) {
			scores[strat.Name()] = mape
			reported[strat.Name()+"_mape"] = mape
		}
		if !math.IsInf(mae, 1) {
			reported[strat.Name()+"_mae"] = mae
		}
	}

	best := ""
	bestMAPE := math.Inf(1)
	for _, strat := range s.candidates {
		if mape, ok := scores[strat.Name()]; ok && mape < bestMAPE {
			best = strat.Name()
			bestMAPE = mape
		}
	}

	if best == "" {
		return s.stubSelection(history, horizon, reported)
	}

	winner := s.byName(best)
	values, err := winner.FitForecast(history, horizon)
	if err != nil {
		// Validation succeeded but the full refit did not; validation
		// metrics are still reported.
		s.observeFailure(best, len(history), len(horizon))
		return s.stubSelection(history, horizon, reported)
	}

	return Selection{Values: values, Chosen: best, Metrics: reported}
}

func (s *Selector) forcedForecast(history domain.TimeSeries, horizon []domain.Date, forced string) Selection {
	if forced == StrategyStub {
		return s.stubSelection(history, horizon, map[string]float64{})
	}

	strat := s.byName(forced)
	if strat == nil {
		log.Warn().Str("forced_model", forced).Msg("unknown forced model, using stub")
		return s.stubSelection(history, horizon, map[string]float64{})
	}

	values, err := strat.FitForecast(history, horizon)
	if err != nil {
		s.observeFailure(forced, len(history), len(horizon))
		return s.stubSelection(history, horizon, map[string]float64{})
	}

	return Selection{Values: values, Chosen: forced, Metrics: map[string]float64{}}
}

func (s *Selector) stubSelection(history domain.TimeSeries, horizon []domain.Date, reported map[string]float64) Selection {
	values, _ := s.stub.FitForecast(history, horizon)
	return Selection{Values: values, Chosen: StrategyStub, Metrics: reported}
}

func (s *Selector) byName(name string) Strategy {
	for _, strat := range s.candidates {
		if strat.Name() == name {
			return strat
		}
	}
	return nil
}

func (s *Selector) observeFailure(strategy string, historyLen, horizonLen int) {
	log.Warn().
		Str("strategy", strategy).
		Int("history_len", historyLen).
		Int("horizon", horizonLen).
		Msg("strategy fit failed, falling back")
	s.collector.ObserveFitFailure(strategy)
}

// computeMAPE averages |actual-predicted|/actual over points with actual > 0.
// Returns +Inf when no such point exists.
func computeMAPE(actual, predicted []float64) float64 {
	var sum float64
	var count int
	for i := range actual {
		if actual[i] > 0 {
			sum += math.Abs((actual[i] - predicted[i]) / actual[i])
			count++
		}
	}
	if count == 0 {
		return math.Inf(1)
	}
	return sum / float64(count)
}

// computeMAE is the mean absolute error; +Inf for empty series.
func computeMAE(actual, predicted []float64) float64 {
	if len(actual) == 0 || len(predicted) == 0 {
		return math.Inf(1)
	}
	var sum float64
	for i := range actual {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(len(actual))
}
