package domain

// Granularity controls the spacing of forecast horizon dates.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Valid reports whether g is one of the supported granularities.
func (g Granularity) Valid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return true
	}
	return false
}

// DateRange expands [start, end] into horizon dates stepped by g.
// Returns nil when start is after end.
func (g Granularity) DateRange(start, end Date) []Date {
	if start.After(end) {
		return nil
	}
	var dates []Date
	for d := start; !d.After(end); {
		dates = append(dates, d)
		switch g {
		case GranularityWeek:
			d = d.AddDays(7)
		case GranularityMonth:
			d = d.AddMonths(1)
		default:
			d = d.AddDays(1)
		}
	}
	return dates
}

// ForecastRequest asks for a per-SKU forecast over a date range.
type ForecastRequest struct {
	SKUList     []string    `json:"sku_list" binding:"required,min=1"`
	StartDate   Date        `json:"start_date" binding:"required"`
	EndDate     Date        `json:"end_date" binding:"required"`
	Granularity Granularity `json:"granularity"`
	Location    string      `json:"location,omitempty"`
	// ForecastModel selection override: one of arima, seasonal, boosted, stub.
	ForcedModel string `json:"forced_model,omitempty"`
}

// ForecastPoint is one forecast value with its approximate quantile band.
// Invariant: Q10 <= Q50 <= Q90 and Q50 == Mean.
type ForecastPoint struct {
	SKU  string  `json:"sku"`
	Date Date    `json:"date"`
	Mean float64 `json:"mean"`
	Q10  float64 `json:"q10"`
	Q50  float64 `json:"q50"`
	Q90  float64 `json:"q90"`
}

type ForecastMetadata struct {
	ModelName    string            `json:"model_name"`
	ModelVersion string            `json:"model_version"`
	Components   []string          `json:"components,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	PerSKUModel  map[string]string `json:"per_sku_model,omitempty"`
}

// ForecastArtifact is immutable once registered in the session store.
type ForecastArtifact struct {
	ForecastID string             `json:"forecast_id"`
	Points     []ForecastPoint    `json:"points"`
	Metadata   ForecastMetadata   `json:"metadata"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}
