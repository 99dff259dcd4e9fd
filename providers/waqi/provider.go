package waqi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"airquality-service/datasource"
	"airquality-service/models"
)

// WAQISource is an implementation of the DataSource interface for the
// World Air Quality Index feed API
type WAQISource struct {
	token  string
	client *http.Client
}

// Ensure WAQISource implements datasource.DataSource
var _ datasource.DataSource = (*WAQISource)(nil)

// NewWAQISource creates a new WAQI data source
func NewWAQISource(token string) *WAQISource {
	return &WAQISource{
		token: token,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Name returns the name of this data source
func (w *WAQISource) Name() string {
	return "WAQI"
}

// FetchAirQuality fetches the current air quality reading for a location
func (w *WAQISource) FetchAirQuality(ctx context.Context, loc datasource.Location) (models.AirQualityData, error) {
	endpoint := fmt.Sprintf("https://api.waqi.info/feed/%s/?token=%s",
		url.PathEscape(loc.Name), url.QueryEscape(w.token))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return models.AirQualityData{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := w.client.Do(req)
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
		Status string `json:"status"`
		Data   struct {
			AQI  int `json:"aqi"`
			IAQI struct {
				PM25 struct {
					V float64 `json:"v"`
				} `json:"pm25"`
				PM10 struct {
					V float64 `json:"v"`
				} `json:"pm10"`
			} `json:"iaqi"`
			Time struct {
				ISO string `json:"iso"`
			} `json:"time"`
		} `json:"data"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return models.AirQualityData{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if response.Status != "ok" {
		return models.AirQualityData{}, fmt.Errorf("WAQI error for %s: status %q", loc.Name, response.Status)
	}

	timestamp := time.Now()
	if parsed, err := time.Parse(time.RFC3339, response.Data.Time.ISO); err == nil {
		timestamp = parsed
	}

	return models.AirQualityData{
		Provider:  w.Name(),
		Location:  loc.Name,
		AQI:       response.Data.AQI,
		PM25:      response.Data.IAQI.PM25.V,
		PM10:      response.Data.IAQI.PM10.V,
		Timestamp: timestamp,
	}, nil
}
