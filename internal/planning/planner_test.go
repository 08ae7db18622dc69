package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibp-ai/planning-engine/internal/domain"
)

func forecastPoints(sku string, start domain.Date, means ...float64) []domain.ForecastPoint {
	points := make([]domain.ForecastPoint, len(means))
	for i, m := range means {
		points[i] = domain.ForecastPoint{SKU: sku, Date: start.AddDays(i), Mean: m}
	}
	return points
}

func TestGeneratePlanEmptyForecast(t *testing.T) {
	orders, production, kpis := GeneratePlan(nil, domain.DefaultConstraints(), "")

	assert.Nil(t, orders)
	assert.Nil(t, production)
	assert.Nil(t, kpis)
}

func TestGeneratePlanSplitRatio(t *testing.T) {
	points := forecastPoints("SKU-A", domain.NewDate(2025, 2, 1), 10, 10, 10, 10, 10)
	constraints := domain.DefaultConstraints()

	orders, production, _ := GeneratePlan(points, constraints, "JKT")
	require.Len(t, orders, 1)
	require.Len(t, production, 1)

	// horizon 5 days, demand 50, safety stock = 10 * 10 * 1.65 = 165
	totalRequired := 50.0 + 165.0
	assert.InDelta(t, totalRequired*0.4, orders[0].Quantity, 1e-9)
	assert.InDelta(t, totalRequired*0.6, production[0].Quantity, 1e-9)
	assert.InDelta(t, totalRequired, orders[0].Quantity+production[0].Quantity, 1e-9)

	assert.Equal(t, "purchase", orders[0].OrderType)
	assert.Equal(t, "JKT", orders[0].Location)
	assert.Equal(t, "LINE-1", production[0].LineID)
	assert.Equal(t, "2025-02-01", orders[0].OrderDate.String())
	assert.Equal(t, "2025-02-01", production[0].ProductionDate.String())
}

func TestGeneratePlanLowServiceLevelZ(t *testing.T) {
	points := forecastPoints("SKU-A", domain.NewDate(2025, 2, 1), 10, 10, 10, 10, 10)
	constraints := domain.InventoryConstraints{
		TargetServiceLevel: 0.9,
		LeadTimeDays:       10,
	}

	orders, production, _ := GeneratePlan(points, constraints, "")
	require.Len(t, orders, 1)
	require.Len(t, production, 1)

	// z drops to 1.0 below a 95% target: safety stock = 10 * 10 * 1.0 = 100
	totalRequired := 50.0 + 100.0
	assert.InDelta(t, totalRequired, orders[0].Quantity+production[0].Quantity, 1e-9)
}

func TestGeneratePlanZeroDemandSuppressesRecommendations(t *testing.T) {
	points := forecastPoints("SKU-A", domain.NewDate(2025, 2, 1), 0, 0, 0)

	orders, production, kpis := GeneratePlan(points, domain.DefaultConstraints(), "")

	assert.Empty(t, orders)
	assert.Empty(t, production)
	require.NotEmpty(t, kpis)
	assert.Equal(t, "Total Volume", kpis[0].Name)
	assert.Equal(t, 0.0, kpis[0].Value)
}

func TestGeneratePlanPreservesSKUOrder(t *testing.T) {
	points := forecastPoints("SKU-B", domain.NewDate(2025, 2, 1), 10, 10)
	points = append(points, forecastPoints("SKU-A", domain.NewDate(2025, 2, 1), 20, 20)...)

	orders, _, _ := GeneratePlan(points, domain.DefaultConstraints(), "")
	require.Len(t, orders, 2)
	assert.Equal(t, "SKU-B", orders[0].SKU)
	assert.Equal(t, "SKU-A", orders[1].SKU)
}

func TestGeneratePlanKPIs(t *testing.T) {
	points := forecastPoints("SKU-A", domain.NewDate(2025, 2, 1), 10, 10, 10, 10, 10)
	constraints := domain.DefaultConstraints()

	orders, production, kpis := GeneratePlan(points, constraints, "")
	require.Len(t, kpis, 2)

	var total float64
	for _, o := range orders {
		total += o.Quantity
	}
	for _, p := range production {
		total += p.Quantity
	}

	assert.Equal(t, "Total Volume", kpis[0].Name)
	assert.InDelta(t, total, kpis[0].Value, 1e-9)
	assert.Equal(t, "units", kpis[0].Unit)

	assert.Equal(t, "Target Service Level", kpis[1].Name)
	assert.Equal(t, constraints.TargetServiceLevel, kpis[1].Value)
}

func TestServiceLevelZ(t *testing.T) {
	assert.Equal(t, 1.65, serviceLevelZ(0.95))
	assert.Equal(t, 1.65, serviceLevelZ(0.99))
	assert.Equal(t, 1.0, serviceLevelZ(0.9))
}
