package domain

type FeatureContribution struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
	Direction  string  `json:"direction"`
}

type SKUExplanation struct {
	SKU        string                `json:"sku"`
	TopDrivers []FeatureContribution `json:"top_drivers"`
}

type ExplainResponse struct {
	ForecastID       string                `json:"forecast_id"`
	GlobalImportance []FeatureContribution `json:"global_importance"`
	BySKU            []SKUExplanation      `json:"by_sku"`
	Method           string                `json:"method"`
	ExternalSummary  string                `json:"external_summary,omitempty"`
}
