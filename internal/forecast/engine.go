package forecast

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ibp-ai/planning-engine/internal/domain"
	"github.com/ibp-ai/planning-engine/internal/metrics"
)

// HistorySource resolves a SKU's daily sales history. An unknown SKU or
// location yields an empty series, not an error.
type HistorySource interface {
	GetHistory(ctx context.Context, sku, location string) (domain.TimeSeries, error)
}

const (
	// ModelFamilyName identifies the selection ensemble in forecast metadata.
	ModelFamilyName = "ensemble-selector"
	ModelVersion    = "1.0.0"

	metadataNotes = "Per-SKU model selection across ARIMA, seasonal decomposition, " +
		"and gradient boosting; quantiles approximated from the mean."

	// maxConcurrentSKUs bounds the per-SKU forecasting fan-out. SKU pipelines
	// share no mutable state, so they only need a concurrency cap.
	maxConcurrentSKUs = 4
)

// Engine is the forecast orchestrator: it loops model selection over every
// requested SKU and assembles one forecast result. Strategy failures never
// escape the selector, so a single SKU cannot abort the batch.
type Engine struct {
	source    HistorySource
	selector  *Selector
	collector *metrics.Collector
}

func NewEngine(source HistorySource, collector *metrics.Collector) *Engine {
	return &Engine{
		source:    source,
		selector:  NewSelector(collector),
		collector: collector,
	}
}

// Result is an assembled forecast before it is wrapped into an artifact.
type Result struct {
	Points   []domain.ForecastPoint
	Metadata domain.ForecastMetadata
	Metrics  map[string]float64
}

type skuOutcome struct {
	points  []domain.ForecastPoint
	chosen  string
	metrics map[string]float64
}

// Generate produces one ForecastPoint per (sku, horizon date) for every
// requested SKU, with model-selection metadata and a flat metrics mapping
// keyed "{sku}.{metric}".
func (e *Engine) Generate(ctx context.Context, req domain.ForecastRequest) (*Result, error) {
	granularity := req.Granularity
	if !granularity.Valid() {
		granularity = domain.GranularityDay
	}
	horizon := granularity.DateRange(req.StartDate, req.EndDate)

	outcomes := make([]skuOutcome, len(req.SKUList))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSKUs)

	for i, sku := range req.SKUList {
		i, sku := i, sku
		g.Go(func() error {
			outcomes[i] = e.forecastSKU(gctx, sku, req.Location, horizon, req.ForcedModel)
			return nil
		})
	}
	// Per-SKU goroutines never return errors: all recoverable conditions are
	// absorbed inside the selector layer.
	_ = g.Wait()

	result := &Result{
		Metrics: make(map[string]float64),
		Metadata: domain.ForecastMetadata{
			ModelName:    ModelFamilyName,
			ModelVersion: ModelVersion,
			Components:   []string{StrategyARIMA, StrategySeasonal, StrategyBoosted},
			Notes:        metadataNotes,
			PerSKUModel:  make(map[string]string),
		},
	}

	for i, sku := range req.SKUList {
		outcome := outcomes[i]
		result.Points = append(result.Points, outcome.points...)
		result.Metadata.PerSKUModel[sku] = outcome.chosen
		for key, value := range outcome.metrics {
			result.Metrics[sku+"."+key] = value
		}
		result.Metrics[sku+".chosen_model"] = ModelCode(outcome.chosen)
	}

	return result, nil
}

func (e *Engine) forecastSKU(ctx context.Context, sku, location string, horizon []domain.Date, forced string) skuOutcome {
	history, err := e.source.GetHistory(ctx, sku, location)
	if err != nil {
		// History lookups must not fail a SKU's pipeline: fall back to the
		// empty-history path, which the stub handles.
		log.Warn().Err(err).Str("sku", sku).Msg("history lookup failed, forecasting without history")
		history = domain.TimeSeries{}
	}

	selection := e.selector.SelectAndForecast(history, horizon, forced)
	e.collector.ObserveModelChosen(selection.Chosen)

	log.Info().
		Str("sku", sku).
		Str("chosen", selection.Chosen).
		Str("forced", forced).
		Int("history_len", len(history)).
		Int("horizon", len(horizon)).
		Msg("forecast model selected")

	points := make([]domain.ForecastPoint, 0, len(horizon))
	for i, date := range horizon {
		q10, q50, q90 := QuantileBand(selection.Values[i])
		points = append(points, domain.ForecastPoint{
			SKU:  sku,
			Date: date,
			Mean: selection.Values[i],
			Q10:  q10,
			Q50:  q50,
			Q90:  q90,
		})
	}

	return skuOutcome{points: points, chosen: selection.Chosen, metrics: selection.Metrics}
}
