package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"airquality-service/models"
)

// WAQIProvider implements the AirQualityProvider interface against the
// World Air Quality Index feed API. WAQI reports station AQI directly on
// the US EPA scale, so no conversion is needed.
type WAQIProvider struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewWAQIProvider creates a new WAQI provider
func NewWAQIProvider(token string) *WAQIProvider {
	return &WAQIProvider{
		token:   token,
		baseURL: "https://api.waqi.info",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the provider name
func (p *WAQIProvider) Name() string {
	return "WAQI"
}

// GetAirQuality fetches the current air quality for a location by city feed
func (p *WAQIProvider) GetAirQuality(ctx context.Context, loc Location) (models.AirQualityData, error) {
	endpoint := fmt.Sprintf("%s/feed/%s/", p.baseURL, url.PathEscape(loc.Name))
	params := url.Values{}
	params.Add("token", p.token)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return models.AirQualityData{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
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
			City struct {
				Name string `json:"name"`
			} `json:"city"`
			IAQI struct {
				PM25 struct {
					V float64 `json:"v"`
				} `json:"pm25"`
				PM10 struct {
					V float64 `json:"v"`
				} `json:"pm10"`
				O3 struct {
					V float64 `json:"v"`
				} `json:"o3"`
				NO2 struct {
					V float64 `json:"v"`
				} `json:"no2"`
				SO2 struct {
					V float64 `json:"v"`
				} `json:"so2"`
				CO struct {
					V float64 `json:"v"`
				} `json:"co"`
			} `json:"iaqi"`
			Time struct {
				ISO string `json:"iso"`
			} `json:"time"`
		} `json:"data"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return models.AirQualityData{}, fmt.Errorf("failed to parse response: %w", err)
	}

	// WAQI signals errors with status "error" and an HTTP 200
	if response.Status != "ok" {
		return models.AirQualityData{}, fmt.Errorf("WAQI error for %s: status %q", loc.Name, response.Status)
	}

	timestamp := time.Now()
	if parsed, err := time.Parse(time.RFC3339, response.Data.Time.ISO); err == nil {
		timestamp = parsed
	}

	return models.AirQualityData{
		Provider:  p.Name(),
		Location:  loc.Name,
		AQI:       response.Data.AQI,
		PM25:      response.Data.IAQI.PM25.V,
		PM10:      response.Data.IAQI.PM10.V,
		O3:        response.Data.IAQI.O3.V,
		NO2:       response.Data.IAQI.NO2.V,
		SO2:       response.Data.IAQI.SO2.V,
		CO:        response.Data.IAQI.CO.V,
		Timestamp: timestamp,
	}, nil
}

// Ensure WAQIProvider implements AirQualityProvider
var _ AirQualityProvider = (*WAQIProvider)(nil)
