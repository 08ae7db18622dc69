package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2025, 2, 14)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-02-14"`, string(data))

	var parsed Date
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, d.Equal(parsed))
}

func TestDateUnmarshalEmpty(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(NewDate(2025, 1, 1), NewDate(2025, 1, 1)))
	assert.Equal(t, 6, DaysBetween(NewDate(2025, 1, 1), NewDate(2025, 1, 7)))
	assert.Equal(t, -1, DaysBetween(NewDate(2025, 1, 2), NewDate(2025, 1, 1)))
}

func TestGranularityValid(t *testing.T) {
	assert.True(t, GranularityDay.Valid())
	assert.True(t, GranularityWeek.Valid())
	assert.True(t, GranularityMonth.Valid())
	assert.False(t, Granularity("hour").Valid())
	assert.False(t, Granularity("").Valid())
}

func TestGranularityDateRangeDaily(t *testing.T) {
	dates := GranularityDay.DateRange(NewDate(2025, 2, 1), NewDate(2025, 2, 4))
	require.Len(t, dates, 4)
	assert.Equal(t, "2025-02-01", dates[0].String())
	assert.Equal(t, "2025-02-04", dates[3].String())
}

func TestGranularityDateRangeWeekly(t *testing.T) {
	dates := GranularityWeek.DateRange(NewDate(2025, 2, 1), NewDate(2025, 2, 28))
	require.Len(t, dates, 4)
	assert.Equal(t, "2025-02-08", dates[1].String())
	assert.Equal(t, "2025-02-22", dates[3].String())
}

func TestGranularityDateRangeMonthly(t *testing.T) {
	dates := GranularityMonth.DateRange(NewDate(2025, 1, 31), NewDate(2025, 4, 30))
	require.Len(t, dates, 3)
	assert.Equal(t, "2025-01-31", dates[0].String())
	// Calendar-month arithmetic: Jan 31 + 1 month normalizes to Mar 3.
	assert.Equal(t, "2025-03-03", dates[1].String())
}

func TestGranularityDateRangeInverted(t *testing.T) {
	assert.Nil(t, GranularityDay.DateRange(NewDate(2025, 2, 2), NewDate(2025, 2, 1)))
}

func TestScenarioShockFactorDefault(t *testing.T) {
	var shock ScenarioShock
	require.NoError(t, json.Unmarshal([]byte(`{"type":"demand"}`), &shock))
	assert.Equal(t, 1.0, shock.Factor)
	assert.Equal(t, 0.0, shock.Delta)

	require.NoError(t, json.Unmarshal([]byte(`{"type":"demand","factor":0.5}`), &shock))
	assert.Equal(t, 0.5, shock.Factor)
}

func TestTimeSeriesMean(t *testing.T) {
	assert.Equal(t, 0.0, TimeSeries{}.Mean())

	series := TimeSeries{
		{Date: NewDate(2025, 1, 1), Quantity: 10},
		{Date: NewDate(2025, 1, 2), Quantity: 30},
	}
	assert.Equal(t, 20.0, series.Mean())
	assert.Equal(t, []float64{10, 30}, series.Values())
}
