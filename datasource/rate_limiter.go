package datasource

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"airquality-service/models"
)

// RateLimitedAirQualityProvider wraps an AirQualityProvider with rate limiting
type RateLimitedAirQualityProvider struct {
	provider AirQualityProvider
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedAirQualityProvider creates a new rate limited air quality provider
// rps is the maximum requests per second allowed (can be fractional for less than 1 request per second)
// burst is the maximum burst size allowed
func NewRateLimitedAirQualityProvider(provider AirQualityProvider, rps float64, burst int) *RateLimitedAirQualityProvider {
	return &RateLimitedAirQualityProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

// GetAirQuality fetches air quality data, respecting rate limits
func (r *RateLimitedAirQualityProvider) GetAirQuality(ctx context.Context, loc Location) (models.AirQualityData, error) {
	// Wait for rate limiter permission or context cancellation
	if err := r.limiter.Wait(ctx); err != nil {
		return models.AirQualityData{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	// Forward to the underlying provider
	return r.provider.GetAirQuality(ctx, loc)
}

// Name returns the provider name
func (r *RateLimitedAirQualityProvider) Name() string {
	return r.name
}

// RateLimitedForecastSource wraps a ForecastSource with rate limiting
type RateLimitedForecastSource struct {
	source  ForecastSource
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedForecastSource creates a new rate limited forecast source
// rps is the maximum requests per second allowed
// burst is the maximum burst size allowed
func NewRateLimitedForecastSource(source ForecastSource, rps float64, burst int) *RateLimitedForecastSource {
	return &RateLimitedForecastSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// FetchForecast fetches forecast data, respecting rate limits
func (r *RateLimitedForecastSource) FetchForecast(ctx context.Context, loc Location, hours int) (models.ForecastData, error) {
	// Wait for rate limiter permission or context cancellation
	if err := r.limiter.Wait(ctx); err != nil {
		return models.ForecastData{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	// Forward to the underlying source
	return r.source.FetchForecast(ctx, loc, hours)
}

// Name returns the source name
func (r *RateLimitedForecastSource) Name() string {
	return r.name
}

// RateLimitedProvider combines both interfaces for providers that implement both
type RateLimitedProvider struct {
	provider        AirQualityProvider
	forecastSrc     ForecastSource
	currentLimiter  *rate.Limiter
	forecastLimiter *rate.Limiter
	name            string
}

// NewRateLimitedProvider creates a provider that implements both interfaces with rate limiting
// currentRPS and forecastRPS are the maximum requests per second for the current and forecast APIs
func NewRateLimitedProvider(provider interface{}, currentRPS, forecastRPS float64, burst int) *RateLimitedProvider {
	name := "Unknown"

	// Type assertions to get the name
	if ap, ok := provider.(AirQualityProvider); ok {
		name = ap.Name()
	} else if fs, ok := provider.(ForecastSource); ok {
		name = fs.Name()
	}

	return &RateLimitedProvider{
		provider:        provider.(AirQualityProvider),
		forecastSrc:     provider.(ForecastSource),
		currentLimiter:  rate.NewLimiter(rate.Limit(currentRPS), burst),
		forecastLimiter: rate.NewLimiter(rate.Limit(forecastRPS), burst),
		name:            fmt.Sprintf("%s [Rate Limited]", name),
	}
}

// GetAirQuality implements AirQualityProvider interface with rate limiting
func (r *RateLimitedProvider) GetAirQuality(ctx context.Context, loc Location) (models.AirQualityData, error) {
	if err := r.currentLimiter.Wait(ctx); err != nil {
		return models.AirQualityData{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.GetAirQuality(ctx, loc)
}

// FetchForecast implements ForecastSource interface with rate limiting
func (r *RateLimitedProvider) FetchForecast(ctx context.Context, loc Location, hours int) (models.ForecastData, error) {
	if err := r.forecastLimiter.Wait(ctx); err != nil {
		return models.ForecastData{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.forecastSrc.FetchForecast(ctx, loc, hours)
}

// Name returns the provider name
func (r *RateLimitedProvider) Name() string {
	return r.name
}

// Verify that our rate limited types implement the required interfaces
var (
	_ AirQualityProvider = (*RateLimitedAirQualityProvider)(nil)
	_ ForecastSource     = (*RateLimitedForecastSource)(nil)
	_ AirQualityProvider = (*RateLimitedProvider)(nil)
	_ ForecastSource     = (*RateLimitedProvider)(nil)
)
