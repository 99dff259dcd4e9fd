package openweathermap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"airquality-service/aqi"
	"airquality-service/datasource"
	"airquality-service/models"
)

// OpenWeatherMapSource is an implementation of the DataSource interface for
// the OpenWeatherMap air_pollution API
type OpenWeatherMapSource struct {
	apiKey string
	client *http.Client
}

// Ensure OpenWeatherMapSource implements datasource.DataSource
var _ datasource.DataSource = (*OpenWeatherMapSource)(nil)

// NewOpenWeatherMapSource creates a new OpenWeatherMap data source
func NewOpenWeatherMapSource(apiKey string) *OpenWeatherMapSource {
	return &OpenWeatherMapSource{
		apiKey: apiKey,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Name returns the name of this data source
func (o *OpenWeatherMapSource) Name() string {
	return "OpenWeatherMap"
}

// FetchAirQuality fetches the current air quality reading for a location
func (o *OpenWeatherMapSource) FetchAirQuality(ctx context.Context, loc datasource.Location) (models.AirQualityData, error) {
	params := url.Values{}
	params.Add("lat", fmt.Sprintf("%f", loc.Lat))
	params.Add("lon", fmt.Sprintf("%f", loc.Lon))
	params.Add("appid", o.apiKey)

	endpoint := "https://api.openweathermap.org/data/2.5/air_pollution?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return models.AirQualityData{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return models.AirQualityData{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.AirQualityData{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return models.AirQualityData{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response struct {
		List []struct {
			Dt         int64 `json:"dt"`
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

	if err := json.Unmarshal(body, &response); err != nil {
		return models.AirQualityData{}, fmt.Errorf("failed to parse response: %w", err)
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
		Provider:  o.Name(),
		Location:  loc.Name,
		AQI:       epaAQI,
		PM25:      item.Components.PM25,
		PM10:      item.Components.PM10,
		O3:        item.Components.O3,
		NO2:       item.Components.NO2,
		SO2:       item.Components.SO2,
		CO:        item.Components.CO / 1000,
		Timestamp: time.Unix(item.Dt, 0),
	}, nil
}
