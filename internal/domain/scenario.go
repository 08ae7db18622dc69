package domain

import "encoding/json"

type ShockType string

const (
	ShockDemand   ShockType = "demand"
	ShockSupply   ShockType = "supply"
	ShockCapacity ShockType = "capacity"
	ShockPrice    ShockType = "price"
)

// ScenarioShock perturbs one dimension of a base plan. Factor is multiplicative
// (default 1.0), Delta additive (default 0.0).
type ScenarioShock struct {
	Type      ShockType `json:"type"`
	SKU       string    `json:"sku,omitempty"`
	Location  string    `json:"location,omitempty"`
	StartDate Date      `json:"start_date"`
	EndDate   Date      `json:"end_date"`
	Factor    float64   `json:"factor"`
	Delta     float64   `json:"delta"`
}

// UnmarshalJSON applies the Factor default of 1.0 when the field is absent.
func (s *ScenarioShock) UnmarshalJSON(data []byte) error {
	type alias ScenarioShock
	shock := alias{Factor: 1.0}
	if err := json.Unmarshal(data, &shock); err != nil {
		return err
	}
	*s = ScenarioShock(shock)
	return nil
}

type ScenarioRequest struct {
	ForecastID string          `json:"forecast_id" binding:"required"`
	PlanID     string          `json:"plan_id,omitempty"`
	Name       string          `json:"name,omitempty"`
	Shocks     []ScenarioShock `json:"shocks"`
}

type ScenarioKPI struct {
	Name     string  `json:"name"`
	Base     float64 `json:"base"`
	Scenario float64 `json:"scenario"`
	Delta    float64 `json:"delta"`
	Unit     string  `json:"unit,omitempty"`
}

// ScenarioArtifact is immutable once registered in the session store.
type ScenarioArtifact struct {
	ScenarioID string        `json:"scenario_id"`
	ForecastID string        `json:"forecast_id"`
	PlanID     string        `json:"plan_id"`
	Name       string        `json:"name,omitempty"`
	KPIs       []ScenarioKPI `json:"kpis"`
	Narrative  string        `json:"narrative,omitempty"`
}

type ScenarioSummary struct {
	ScenarioID string `json:"scenario_id"`
	ForecastID string `json:"forecast_id"`
	PlanID     string `json:"plan_id"`
	Name       string `json:"name,omitempty"`
}
