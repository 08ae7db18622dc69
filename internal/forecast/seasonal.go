package forecast

import (
	"math"

	"github.com/ibp-ai/planning-engine/internal/domain"
)

// SeasonalStrategy fits an additive trend plus weekly seasonal decomposition
// over (date, value) pairs and predicts at the exact requested dates. There is
// no yearly component since daily business data rarely spans a year. Requires
// at least 4 observations and a non-empty explicit horizon.
type SeasonalStrategy struct{}

func (SeasonalStrategy) Name() string { return StrategySeasonal }

func (SeasonalStrategy) FitForecast(history domain.TimeSeries, horizon []domain.Date) ([]float64, error) {
	if len(history) < 4 || len(horizon) == 0 {
		return nil, ErrInapplicable
	}

	origin := history[0].Date

	// Linear trend by ordinary least squares on days-since-origin.
	n := float64(len(history))
	var sumX, sumY float64
	for _, p := range history {
		sumX += float64(domain.DaysBetween(origin, p.Date))
		sumY += p.Quantity
	}
	meanX, meanY := sumX/n, sumY/n

	var sxx, sxy float64
	for _, p := range history {
		dx := float64(domain.DaysBetween(origin, p.Date)) - meanX
		sxx += dx * dx
		sxy += dx * (p.Quantity - meanY)
	}
	if sxx == 0 {
		return nil, ErrInapplicable
	}
	slope := sxy / sxx
	intercept := meanY - slope*meanX

	// Weekly seasonality as mean detrended residual per weekday.
	var weekdaySum, weekdayCount [7]float64
	for _, p := range history {
		x := float64(domain.DaysBetween(origin, p.Date))
		resid := p.Quantity - (intercept + slope*x)
		wd := int(p.Date.Weekday())
		weekdaySum[wd] += resid
		weekdayCount[wd]++
	}

	forecasts := make([]float64, len(horizon))
	for i, date := range horizon {
		x := float64(domain.DaysBetween(origin, date))
		value := intercept + slope*x
		wd := int(date.Weekday())
		if weekdayCount[wd] > 0 {
			value += weekdaySum[wd] / weekdayCount[wd]
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, ErrInapplicable
		}
		forecasts[i] = math.Max(0, value)
	}
	return forecasts, nil
}
