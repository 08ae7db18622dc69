package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ibp-ai/planning-engine/internal/domain"
)

// ErrNoBasePlan is returned when a scenario references a forecast with no
// associated plan and none can be inferred from the session store.
var ErrNoBasePlan = errors.New("no base plan available for scenario")

// AverageDemandFactor returns the unweighted mean factor across demand-type
// shocks. Supply, capacity, and price shocks do not affect volume at this
// layer. With no demand shocks the factor is 1.0.
func AverageDemandFactor(shocks []domain.ScenarioShock) float64 {
	var sum float64
	var count int
	for _, shock := range shocks {
		if shock.Type == domain.ShockDemand {
			sum += shock.Factor
			count++
		}
	}
	if count == 0 {
		return 1.0
	}
	return sum / float64(count)
}

// ComputeKPIs evaluates shocked volume against the base plan. The base volume
// is the sum of all order and production quantities; the scenario scales it by
// the average demand factor.
func ComputeKPIs(plan *domain.PlanArtifact, shocks []domain.ScenarioShock) []domain.ScenarioKPI {
	var baseVolume float64
	for _, o := range plan.Orders {
		baseVolume += o.Quantity
	}
	for _, p := range plan.Production {
		baseVolume += p.Quantity
	}

	factor := AverageDemandFactor(shocks)
	scenarioVolume := baseVolume * factor

	return []domain.ScenarioKPI{
		{
			Name:     "Total Volume",
			Base:     baseVolume,
			Scenario: scenarioVolume,
			Delta:    scenarioVolume - baseVolume,
			Unit:     "units",
		},
	}
}

// BuildNarrative renders a short human-readable digest of the volume change.
// Returns "" when there is nothing to report.
func BuildNarrative(name string, kpis []domain.ScenarioKPI, avgDemandFactor float64) string {
	var totalKPI *domain.ScenarioKPI
	for i := range kpis {
		if kpis[i].Name == "Total Volume" {
			totalKPI = &kpis[i]
			break
		}
	}

	var parts []string

	if totalKPI != nil {
		pctChange := 0.0
		if totalKPI.Base != 0 {
			pctChange = totalKPI.Delta / totalKPI.Base * 100.0
		}

		direction := "no change"
		switch {
		case totalKPI.Delta > 0:
			direction = "increase"
		case totalKPI.Delta < 0:
			direction = "decrease"
		}

		parts = append(parts, fmt.Sprintf("Total volume %s from %.0f to %.0f units (%+.1f%%).",
			direction, totalKPI.Base, totalKPI.Scenario, pctChange))
	}

	if avgDemandFactor != 1.0 {
		parts = append(parts, fmt.Sprintf("Average demand factor applied across shocks: x%.2f.", avgDemandFactor))
	}

	if len(parts) == 0 {
		return ""
	}

	if name == "" {
		name = "Scenario"
	}
	return name + ": " + strings.Join(parts, " ")
}
