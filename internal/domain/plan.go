package domain

// PlanObjective is informational at this layer; the planner does not branch on it.
type PlanObjective string

const (
	ObjectiveServiceLevel PlanObjective = "service_level"
	ObjectiveMargin       PlanObjective = "margin"
	ObjectiveCost         PlanObjective = "cost"
)

type InventoryConstraints struct {
	TargetServiceLevel float64 `json:"target_service_level"`
	MaxDaysOfCover     int     `json:"max_days_of_cover"`
	MinDaysOfCover     int     `json:"min_days_of_cover"`
	LeadTimeDays       int     `json:"lead_time_days"`
}

// DefaultConstraints mirrors the request defaults applied when a plan request
// omits the constraints block.
func DefaultConstraints() InventoryConstraints {
	return InventoryConstraints{
		TargetServiceLevel: 0.95,
		MaxDaysOfCover:     90,
		MinDaysOfCover:     0,
		LeadTimeDays:       10,
	}
}

type PlanRequest struct {
	ForecastID  string                `json:"forecast_id" binding:"required"`
	Objective   PlanObjective         `json:"objective,omitempty"`
	Constraints *InventoryConstraints `json:"constraints,omitempty"`
	Location    string                `json:"location,omitempty"`
}

type RecommendedOrder struct {
	SKU       string  `json:"sku"`
	Location  string  `json:"location,omitempty"`
	OrderDate Date    `json:"order_date"`
	Quantity  float64 `json:"quantity"`
	OrderType string  `json:"order_type"`
}

type ProductionRecommendation struct {
	SKU            string  `json:"sku"`
	LineID         string  `json:"line_id,omitempty"`
	ProductionDate Date    `json:"production_date"`
	Quantity       float64 `json:"quantity"`
}

type PlanKPI struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// PlanArtifact is immutable once registered in the session store. It references
// its owning forecast by id only.
type PlanArtifact struct {
	PlanID     string                     `json:"plan_id"`
	ForecastID string                     `json:"forecast_id"`
	Orders     []RecommendedOrder         `json:"orders"`
	Production []ProductionRecommendation `json:"production"`
	KPIs       []PlanKPI                  `json:"kpis"`
}
