package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibp-ai/planning-engine/internal/config"
)

func TestBuildSeriesKey(t *testing.T) {
	assert.Equal(t, "history:series:SKU-A:JKT", buildSeriesKey("SKU-A", "JKT"))
	assert.Equal(t, "history:series:SKU-A:_all", buildSeriesKey("SKU-A", ""))
}

func TestNewHistoryCacheDisabledIsNoop(t *testing.T) {
	c, err := NewHistoryCache(config.CacheConfig{Enabled: false})
	require.NoError(t, err)

	series, ok, err := c.GetSeries(context.Background(), "SKU-A", "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, series)

	assert.NoError(t, c.SetSeries(context.Background(), "SKU-A", "", nil))
}
