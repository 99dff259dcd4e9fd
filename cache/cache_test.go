package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"airquality-service/datasource"
	"airquality-service/models"
)

// countingSource is a stub DataSource that counts fetches
type countingSource struct {
	mutex sync.Mutex
	calls int
}

func (s *countingSource) Name() string { return "Stub" }

func (s *countingSource) FetchAirQuality(ctx context.Context, loc datasource.Location) (models.AirQualityData, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.calls++
	return models.AirQualityData{
		Provider:  s.Name(),
		Location:  loc.Name,
		AQI:       42,
		Timestamp: time.Now(),
	}, nil
}

func (s *countingSource) callCount() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.calls
}

func TestCachedDataSourceServesFromCache(t *testing.T) {
	source := &countingSource{}
	cached := NewCachedDataSource(source, time.Minute)
	loc := datasource.Location{Name: "Delhi"}

	ctx := context.Background()

	first, err := cached.FetchAirQuality(ctx, loc)
	require.NoError(t, err)
	require.Equal(t, 42, first.AQI)

	second, err := cached.FetchAirQuality(ctx, loc)
	require.NoError(t, err)
	require.Equal(t, first, second)

	require.Equal(t, 1, source.callCount())

	hits, misses := cached.CacheStats()
	require.Equal(t, 1, hits)
	require.Equal(t, 1, misses)
}

func TestCachedDataSourceExpiry(t *testing.T) {
	source := &countingSource{}
	cached := NewCachedDataSource(source, 10*time.Millisecond)
	loc := datasource.Location{Name: "Delhi"}

	ctx := context.Background()

	_, err := cached.FetchAirQuality(ctx, loc)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = cached.FetchAirQuality(ctx, loc)
	require.NoError(t, err)

	require.Equal(t, 2, source.callCount())
}

func TestCachedDataSourceSeparateLocations(t *testing.T) {
	source := &countingSource{}
	cached := NewCachedDataSource(source, time.Minute)

	ctx := context.Background()

	_, err := cached.FetchAirQuality(ctx, datasource.Location{Name: "Delhi"})
	require.NoError(t, err)
	_, err = cached.FetchAirQuality(ctx, datasource.Location{Name: "Beijing"})
	require.NoError(t, err)

	require.Equal(t, 2, source.callCount())
}

func TestCachedDataSourceName(t *testing.T) {
	cached := NewCachedDataSource(&countingSource{}, time.Minute)
	require.Equal(t, "Stub [Cached]", cached.Name())
}
