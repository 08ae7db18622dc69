package domain

// SeriesPoint is one daily observation of unit sales for a SKU.
type SeriesPoint struct {
	Date     Date    `json:"date"`
	Quantity float64 `json:"quantity"`
}

// TimeSeries is an ordered daily sales history, strictly increasing by date.
// Duplicate dates are summed during extraction, so a well-formed series never
// carries two points for the same day. An empty series is a valid value and
// means the SKU has no recorded history.
type TimeSeries []SeriesPoint

// Values returns the quantities in date order.
func (ts TimeSeries) Values() []float64 {
	values := make([]float64, len(ts))
	for i, p := range ts {
		values[i] = p.Quantity
	}
	return values
}

// Mean returns the average quantity, or 0 for an empty series.
func (ts TimeSeries) Mean() float64 {
	if len(ts) == 0 {
		return 0
	}
	var sum float64
	for _, p := range ts {
		sum += p.Quantity
	}
	return sum / float64(len(ts))
}
