package datasource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"airquality-service/models"
)

// fakeProvider implements both AirQualityProvider and ForecastSource
type fakeProvider struct {
	currentCalls  int
	forecastCalls int
}

func (f *fakeProvider) Name() string { return "Fake" }

func (f *fakeProvider) GetAirQuality(ctx context.Context, loc Location) (models.AirQualityData, error) {
	f.currentCalls++
	return models.AirQualityData{Provider: f.Name(), Location: loc.Name, AQI: 55}, nil
}

func (f *fakeProvider) FetchForecast(ctx context.Context, loc Location, hours int) (models.ForecastData, error) {
	f.forecastCalls++
	forecasts := make([]models.AQIForecast, hours)
	for i := range forecasts {
		forecasts[i] = models.AQIForecast{AQI: 55}
	}
	return models.ForecastData{Provider: f.Name(), Location: loc.Name, Forecasts: forecasts}, nil
}

func TestRateLimitedAirQualityProviderForwards(t *testing.T) {
	fake := &fakeProvider{}
	limited := NewRateLimitedAirQualityProvider(fake, 100, 1)

	require.Equal(t, "Fake [Rate Limited]", limited.Name())

	data, err := limited.GetAirQuality(context.Background(), Location{Name: "Delhi"})
	require.NoError(t, err)
	require.Equal(t, "Delhi", data.Location)
	require.Equal(t, 55, data.AQI)
	require.Equal(t, 1, fake.currentCalls)
}

func TestRateLimitedForecastSourceForwards(t *testing.T) {
	fake := &fakeProvider{}
	limited := NewRateLimitedForecastSource(fake, 100, 1)

	require.Equal(t, "Fake [Rate Limited]", limited.Name())

	forecast, err := limited.FetchForecast(context.Background(), Location{Name: "Delhi"}, 6)
	require.NoError(t, err)
	require.Len(t, forecast.Forecasts, 6)
	require.Equal(t, 1, fake.forecastCalls)
}

func TestRateLimitedProviderServesBothInterfaces(t *testing.T) {
	fake := &fakeProvider{}
	limited := NewRateLimitedProvider(fake, 100, 100, 1)

	_, err := limited.GetAirQuality(context.Background(), Location{Name: "Delhi"})
	require.NoError(t, err)
	_, err = limited.FetchForecast(context.Background(), Location{Name: "Delhi"}, 3)
	require.NoError(t, err)

	require.Equal(t, 1, fake.currentCalls)
	require.Equal(t, 1, fake.forecastCalls)
}

func TestRateLimiterHonorsContextCancellation(t *testing.T) {
	fake := &fakeProvider{}
	// 1 request per 10 seconds with burst 1: the second call has to wait
	limited := NewRateLimitedAirQualityProvider(fake, 0.1, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := limited.GetAirQuality(ctx, Location{Name: "Delhi"})
	require.NoError(t, err)

	_, err = limited.GetAirQuality(ctx, Location{Name: "Delhi"})
	require.Error(t, err)
	require.Equal(t, 1, fake.currentCalls)
}
