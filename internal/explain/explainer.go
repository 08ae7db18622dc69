package explain

import (
	"sort"

	"github.com/ibp-ai/planning-engine/internal/domain"
)

// Fixed feature importances for the stub explanation. Price and weather are
// treated as demand suppressors; everything else contributes positively.
var baseContributions = []domain.FeatureContribution{
	{Feature: "trend", Importance: 0.3, Direction: "positive"},
	{Feature: "seasonality", Importance: 0.25, Direction: "positive"},
	{Feature: "promotion", Importance: 0.2, Direction: "positive"},
	{Feature: "holiday", Importance: 0.1, Direction: "positive"},
	{Feature: "price", Importance: 0.1, Direction: "negative"},
	{Feature: "weather", Importance: 0.05, Direction: "negative"},
}

// Method tags the explanation as a SHAP-shaped stub, not a model-derived
// attribution.
const Method = "stub-shap-like"

// BuildExplanation produces fixed global feature importances plus a per-SKU
// variant scaled by the SKU's position in sorted order.
func BuildExplanation(artifact *domain.ForecastArtifact, externalSummary string) *domain.ExplainResponse {
	global := make([]domain.FeatureContribution, len(baseContributions))
	copy(global, baseContributions)

	seen := make(map[string]struct{})
	var skus []string
	for _, p := range artifact.Points {
		if _, ok := seen[p.SKU]; !ok {
			seen[p.SKU] = struct{}{}
			skus = append(skus, p.SKU)
		}
	}
	sort.Strings(skus)

	bySKU := make([]domain.SKUExplanation, 0, len(skus))
	for index, sku := range skus {
		scale := 1.0 + 0.05*float64(index)
		drivers := make([]domain.FeatureContribution, len(global))
		for i, c := range global {
			drivers[i] = domain.FeatureContribution{
				Feature:    c.Feature,
				Importance: c.Importance * scale,
				Direction:  c.Direction,
			}
		}
		bySKU = append(bySKU, domain.SKUExplanation{SKU: sku, TopDrivers: drivers})
	}

	return &domain.ExplainResponse{
		ForecastID:       artifact.ForecastID,
		GlobalImportance: global,
		BySKU:            bySKU,
		Method:           Method,
		ExternalSummary:  externalSummary,
	}
}
