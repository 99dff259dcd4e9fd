package models

import (
	"time"
)

// AirQualityData represents a normalized air quality reading from a provider.
// AQI is on the US EPA 0-500 scale; pollutant concentrations are in µg/m³
// except CO, which is reported in mg/m³ by most upstreams.
type AirQualityData struct {
	Provider  string    `json:"provider"`
	Location  string    `json:"location"`
	AQI       int       `json:"aqi"`
	PM25      float64   `json:"pm25"`
	PM10      float64   `json:"pm10"`
	O3        float64   `json:"o3"`
	NO2       float64   `json:"no2"`
	SO2       float64   `json:"so2"`
	CO        float64   `json:"co"`
	Timestamp time.Time `json:"timestamp"`
}
