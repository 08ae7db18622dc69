package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ibp-ai/planning-engine/internal/config"
	"github.com/ibp-ai/planning-engine/internal/domain"
)

const historySeriesKeyPrefix = "history:series"

// HistoryCache is a read-through cache for extracted per-SKU sales histories.
// Forecast/plan/scenario artifacts are never cached here: their lifetime is
// owned by the in-memory session store.
type HistoryCache interface {
	GetSeries(ctx context.Context, sku, location string) (domain.TimeSeries, bool, error)
	SetSeries(ctx context.Context, sku, location string, series domain.TimeSeries) error
}

type redisHistoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopHistoryCache struct{}

func NewHistoryCache(cfg config.CacheConfig) (HistoryCache, error) {
	if !cfg.Enabled {
		return &noopHistoryCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisHistoryCache{client: client, ttl: ttl}, nil
}

func NewNoopHistoryCache() HistoryCache {
	return &noopHistoryCache{}
}

func (c *redisHistoryCache) GetSeries(ctx context.Context, sku, location string) (domain.TimeSeries, bool, error) {
	payload, err := c.client.Get(ctx, buildSeriesKey(sku, location)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var series domain.TimeSeries
	if err := json.Unmarshal(payload, &series); err != nil {
		return nil, false, fmt.Errorf("decode history series cache: %w", err)
	}

	return series, true, nil
}

func (c *redisHistoryCache) SetSeries(ctx context.Context, sku, location string, series domain.TimeSeries) error {
	payload, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("encode history series cache: %w", err)
	}

	if err := c.client.Set(ctx, buildSeriesKey(sku, location), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (n *noopHistoryCache) GetSeries(ctx context.Context, sku, location string) (domain.TimeSeries, bool, error) {
	return nil, false, nil
}

func (n *noopHistoryCache) SetSeries(ctx context.Context, sku, location string, series domain.TimeSeries) error {
	return nil
}

func buildSeriesKey(sku, location string) string {
	if location == "" {
		location = "_all"
	}
	return fmt.Sprintf("%s:%s:%s", historySeriesKeyPrefix, sku, location)
}
