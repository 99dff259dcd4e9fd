package datasource

import (
	"context"
	"encoding/json"
	"os"

	"airquality-service/models"
)

// AirQualityProvider is an interface for services that can fetch current air quality data
type AirQualityProvider interface {
	// GetAirQuality fetches the current air quality reading for a location
	GetAirQuality(ctx context.Context, loc Location) (models.AirQualityData, error)

	// Name returns the provider's name
	Name() string
}

// ForecastSource is an interface for services that can fetch hourly AQI forecasts
type ForecastSource interface {
	// FetchForecast fetches an hourly forecast for a location covering the
	// specified number of hours
	FetchForecast(ctx context.Context, loc Location, hours int) (models.ForecastData, error)

	// Name returns the source's name
	Name() string
}

// Location identifies a monitored place. WAQI resolves stations by name;
// OpenWeatherMap needs coordinates.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Config represents the application configuration
type Config struct {
	// API provider configurations
	OpenWeatherMap struct {
		Enabled bool   `json:"enabled"`
		APIKey  string `json:"apiKey"`
	} `json:"openWeatherMap"`

	WAQI struct {
		Enabled bool   `json:"enabled"`
		APIKey  string `json:"apiKey"`
	} `json:"waqi"`

	// List of locations to monitor
	Locations []Location `json:"locations"`
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	config := &Config{}
	config.OpenWeatherMap.Enabled = false
	config.WAQI.Enabled = false
	config.Locations = []Location{
		{Name: "London", Lat: 51.5074, Lon: -0.1278},
		{Name: "Delhi", Lat: 28.6139, Lon: 77.2090},
		{Name: "Beijing", Lat: 39.9042, Lon: 116.4074},
	}
	return config
}
