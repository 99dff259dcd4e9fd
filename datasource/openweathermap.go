package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"airquality-service/aqi"
	"airquality-service/models"
)

// OpenWeatherMapProvider implements both AirQualityProvider and ForecastSource interfaces
type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherMapProvider creates a new OpenWeatherMap air pollution provider
func NewOpenWeatherMapProvider(apiKey string) *OpenWeatherMapProvider {
	return &OpenWeatherMapProvider{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/air_pollution",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the provider name
func (p *OpenWeatherMapProvider) Name() string {
	return "OpenWeatherMap"
}

// owmPollutionResponse is the shape of both the current and forecast
// air_pollution endpoints.
type owmPollutionResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			AQI int `json:"aqi"` // OpenWeatherMap's own 1-5 index, unused
		} `json:"main"`
		Components struct {
			CO   float64 `json:"co"`
			NO2  float64 `json:"no2"`
			O3   float64 `json:"o3"`
			SO2  float64 `json:"so2"`
			PM25 float64 `json:"pm2_5"`
			PM10 float64 `json:"pm10"`
		} `json:"components"`
	} `json:"list"`
}

// GetAirQuality fetches the current air quality for a location. The US EPA
// AQI is derived from the reported PM2.5 concentration, since
// OpenWeatherMap only provides its own 1-5 scale.
func (p *OpenWeatherMapProvider) GetAirQuality(ctx context.Context, loc Location) (models.AirQualityData, error) {
	response, err := p.fetch(ctx, p.baseURL, loc)
	if err != nil {
		return models.AirQualityData{}, err
	}

	if len(response.List) == 0 {
		return models.AirQualityData{}, fmt.Errorf("no air quality data returned for %s", loc.Name)
	}

	item := response.List[0]
	epaAQI, ok := aqi.FromPM25(item.Components.PM25)
	if !ok {
		return models.AirQualityData{}, fmt.Errorf("no usable PM2.5 reading for %s", loc.Name)
	}

	return models.AirQualityData{
		Provider:  p.Name(),
		Location:  loc.Name,
		AQI:       epaAQI,
		PM25:      item.Components.PM25,
		PM10:      item.Components.PM10,
		O3:        item.Components.O3,
		NO2:       item.Components.NO2,
		SO2:       item.Components.SO2,
		CO:        item.Components.CO / 1000, // µg/m³ -> mg/m³
		Timestamp: time.Unix(item.Dt, 0),
	}, nil
}

// FetchForecast fetches an hourly air quality forecast for a location
// covering the specified number of hours
func (p *OpenWeatherMapProvider) FetchForecast(ctx context.Context, loc Location, hours int) (models.ForecastData, error) {
	response, err := p.fetch(ctx, p.baseURL+"/forecast", loc)
	if err != nil {
		return models.ForecastData{}, err
	}

	forecast := models.ForecastData{
		Provider:  p.Name(),
		Location:  loc.Name,
		Forecasts: []models.AQIForecast{},
		Updated:   time.Now(),
	}

	// The forecast endpoint returns hourly entries for about four days
	maxEntries := hours
	if maxEntries > len(response.List) {
		maxEntries = len(response.List)
	}

	for i := 0; i < maxEntries; i++ {
		item := response.List[i]
		epaAQI, ok := aqi.FromPM25(item.Components.PM25)
		if !ok {
			continue
		}

		forecast.Forecasts = append(forecast.Forecasts, models.AQIForecast{
			AQI:       epaAQI,
			PM25:      item.Components.PM25,
			PM10:      item.Components.PM10,
			Timestamp: time.Unix(item.Dt, 0),
		})
	}

	return forecast, nil
}

// fetch executes a GET against an air_pollution endpoint and decodes the response
func (p *OpenWeatherMapProvider) fetch(ctx context.Context, endpoint string, loc Location) (owmPollutionResponse, error) {
	params := url.Values{}
	params.Add("lat", fmt.Sprintf("%f", loc.Lat))
	params.Add("lon", fmt.Sprintf("%f", loc.Lon))
	params.Add("appid", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return owmPollutionResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return owmPollutionResponse{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return owmPollutionResponse{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return owmPollutionResponse{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response owmPollutionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return owmPollutionResponse{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return response, nil
}
