package featurestore

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/ibp-ai/planning-engine/internal/cache"
	"github.com/ibp-ai/planning-engine/internal/domain"
)

// CSVSource serves per-SKU sales history out of the file-based feature store.
type CSVSource struct {
	loader *Loader
}

func NewCSVSource(loader *Loader) *CSVSource {
	return &CSVSource{loader: loader}
}

// GetHistory returns the daily-aggregated history for a SKU. An unknown SKU
// yields an empty series, never an error.
func (s *CSVSource) GetHistory(ctx context.Context, sku, location string) (domain.TimeSeries, error) {
	records, err := s.loader.LoadSales()
	if err != nil {
		return nil, err
	}
	return ExtractHistory(records, sku, location), nil
}

// ExtractHistory filters the merged sales table down to one SKU and aggregates
// quantities by day. A location filter is applied only when at least one row
// matches it; otherwise the full multi-location history is used so forecasting
// never fails solely because of an unknown location.
func ExtractHistory(records []SalesRecord, sku, location string) domain.TimeSeries {
	var rows []SalesRecord
	for _, r := range records {
		if r.SKU == sku {
			rows = append(rows, r)
		}
	}

	if location != "" {
		var located []SalesRecord
		for _, r := range rows {
			if r.Location == location {
				located = append(located, r)
			}
		}
		if len(located) > 0 {
			rows = located
		}
	}

	if len(rows) == 0 {
		return domain.TimeSeries{}
	}

	byDate := make(map[string]float64)
	dates := make(map[string]domain.Date)
	for _, r := range rows {
		key := r.Date.String()
		byDate[key] += r.Quantity
		dates[key] = r.Date
	}

	keys := make([]string, 0, len(byDate))
	for k := range byDate {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make(domain.TimeSeries, 0, len(keys))
	for _, k := range keys {
		series = append(series, domain.SeriesPoint{Date: dates[k], Quantity: byDate[k]})
	}
	return series
}

// CachingSource wraps a history source with a read-through series cache.
type CachingSource struct {
	source HistorySource
	cache  cache.HistoryCache
}

// HistorySource is the engine-facing history lookup contract.
type HistorySource interface {
	GetHistory(ctx context.Context, sku, location string) (domain.TimeSeries, error)
}

func NewCachingSource(source HistorySource, cacheImpl cache.HistoryCache) *CachingSource {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopHistoryCache()
	}
	return &CachingSource{source: source, cache: cacheImpl}
}

func (s *CachingSource) GetHistory(ctx context.Context, sku, location string) (domain.TimeSeries, error) {
	if series, ok, err := s.cache.GetSeries(ctx, sku, location); err == nil && ok {
		return series, nil
	} else if err != nil {
		log.Warn().Err(err).Str("sku", sku).Msg("history cache: get failed")
	}

	series, err := s.source.GetHistory(ctx, sku, location)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetSeries(ctx, sku, location, series); err != nil {
		log.Warn().Err(err).Str("sku", sku).Msg("history cache: set failed")
	}

	return series, nil
}
