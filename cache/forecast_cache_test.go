package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"airquality-service/datasource"
	"airquality-service/models"
)

// countingForecastSource is a stub ForecastSource that counts fetches
type countingForecastSource struct {
	calls int
}

func (s *countingForecastSource) Name() string { return "Stub" }

func (s *countingForecastSource) FetchForecast(ctx context.Context, loc datasource.Location, hours int) (models.ForecastData, error) {
	s.calls++
	forecasts := make([]models.AQIForecast, hours)
	for i := range forecasts {
		forecasts[i] = models.AQIForecast{AQI: 70}
	}
	return models.ForecastData{
		Provider:  s.Name(),
		Location:  loc.Name,
		Forecasts: forecasts,
		Updated:   time.Now(),
	}, nil
}

func TestCachedForecastSourceServesFromCache(t *testing.T) {
	source := &countingForecastSource{}
	cached := NewCachedForecastSource(source, time.Minute)
	loc := datasource.Location{Name: "Delhi"}

	ctx := context.Background()

	first, err := cached.FetchForecast(ctx, loc, 12)
	require.NoError(t, err)
	require.Len(t, first.Forecasts, 12)

	_, err = cached.FetchForecast(ctx, loc, 12)
	require.NoError(t, err)
	require.Equal(t, 1, source.calls)

	hits, misses := cached.CacheStats()
	require.Equal(t, 1, hits)
	require.Equal(t, 1, misses)
}

func TestCachedForecastSourceKeyIncludesHours(t *testing.T) {
	source := &countingForecastSource{}
	cached := NewCachedForecastSource(source, time.Minute)
	loc := datasource.Location{Name: "Delhi"}

	ctx := context.Background()

	_, err := cached.FetchForecast(ctx, loc, 12)
	require.NoError(t, err)

	// A different window is a different cache entry
	_, err = cached.FetchForecast(ctx, loc, 24)
	require.NoError(t, err)
	require.Equal(t, 2, source.calls)
}
