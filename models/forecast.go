package models

import (
	"time"
)

// AQIForecast represents a single forecast point with predicted air quality at a specific time
type AQIForecast struct {
	AQI       int       `json:"aqi"`       // US EPA scale, 0-500
	PM25      float64   `json:"pm25"`      // in µg/m³
	PM10      float64   `json:"pm10"`      // in µg/m³
	Timestamp time.Time `json:"timestamp"` // time this forecast is for
}

// ForecastData represents an hourly air quality forecast from a provider
type ForecastData struct {
	Provider  string        `json:"provider"`  // air quality data provider name
	Location  string        `json:"location"`  // location name
	Forecasts []AQIForecast `json:"forecasts"` // hourly forecast points, ascending by time
	Updated   time.Time     `json:"updated"`   // when this forecast was fetched
}
