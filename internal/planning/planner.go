package planning

import (
	"github.com/ibp-ai/planning-engine/internal/domain"
)

// serviceLevelZ approximates the service-level z-score with two discrete
// points: 1.65 at or above a 95% target, 1.0 below it. This is a deliberate
// design simplification, not a continuous inverse-normal lookup.
func serviceLevelZ(targetServiceLevel float64) float64 {
	if targetServiceLevel >= 0.95 {
		return 1.65
	}
	return 1.0
}

// Purchase/production split of total required quantity. The 40/60 ratio is
// fixed; it is not derived from capacity data.
const (
	purchaseShare   = 0.4
	productionShare = 0.6
)

// GeneratePlan aggregates a forecast's mean demand per SKU over its full date
// span, adds lead-time safety stock, and splits the total required quantity
// into purchase orders and production recommendations. A forecast with no
// points yields an empty plan, not an error.
func GeneratePlan(points []domain.ForecastPoint, constraints domain.InventoryConstraints, location string) ([]domain.RecommendedOrder, []domain.ProductionRecommendation, []domain.PlanKPI) {
	demandBySKU, skuOrder, minDate, maxDate, ok := summarizeDemand(points)
	if !ok {
		return nil, nil, nil
	}

	horizonDays := domain.DaysBetween(minDate, maxDate) + 1

	var (
		orders      []domain.RecommendedOrder
		production  []domain.ProductionRecommendation
		totalVolume float64
	)

	for _, sku := range skuOrder {
		totalDemand := demandBySKU[sku]
		safetyStock := computeSafetyStock(totalDemand, horizonDays, constraints)
		totalRequired := totalDemand + safetyStock

		purchaseQty := totalRequired * purchaseShare
		productionQty := totalRequired * productionShare

		if purchaseQty > 0 {
			orders = append(orders, domain.RecommendedOrder{
				SKU:       sku,
				Location:  location,
				OrderDate: minDate,
				Quantity:  purchaseQty,
				OrderType: "purchase",
			})
		}

		if productionQty > 0 {
			production = append(production, domain.ProductionRecommendation{
				SKU:            sku,
				LineID:         "LINE-1",
				ProductionDate: minDate,
				Quantity:       productionQty,
			})
		}

		totalVolume += totalRequired
	}

	kpis := []domain.PlanKPI{
		{Name: "Total Volume", Value: totalVolume, Unit: "units"},
		{Name: "Target Service Level", Value: constraints.TargetServiceLevel},
	}

	return orders, production, kpis
}

// summarizeDemand totals mean demand per SKU and finds the artifact's date
// span. SKUs keep their first-appearance order so plan output is stable.
func summarizeDemand(points []domain.ForecastPoint) (map[string]float64, []string, domain.Date, domain.Date, bool) {
	if len(points) == 0 {
		return nil, nil, domain.Date{}, domain.Date{}, false
	}

	demand := make(map[string]float64)
	var skuOrder []string
	minDate, maxDate := points[0].Date, points[0].Date

	for _, p := range points {
		if _, seen := demand[p.SKU]; !seen {
			skuOrder = append(skuOrder, p.SKU)
		}
		demand[p.SKU] += p.Mean

		if p.Date.Before(minDate) {
			minDate = p.Date
		}
		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	return demand, skuOrder, minDate, maxDate, true
}

// computeSafetyStock sizes buffer inventory to cover average daily demand over
// the replenishment lead time, scaled by the service-level factor.
func computeSafetyStock(totalDemand float64, horizonDays int, constraints domain.InventoryConstraints) float64 {
	if horizonDays <= 0 {
		return 0
	}
	avgDaily := totalDemand / float64(horizonDays)
	return avgDaily * float64(constraints.LeadTimeDays) * serviceLevelZ(constraints.TargetServiceLevel)
}
