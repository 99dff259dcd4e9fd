package api

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"airquality-service/datasource"
	"airquality-service/models"
	"airquality-service/risk"
)

// AirQualityStore holds the latest air quality readings by location
type AirQualityStore struct {
	data  map[string][]models.AirQualityData // key is location, value is array of provider data
	mutex sync.RWMutex
}

// NewAirQualityStore creates a new in-memory air quality data store
func NewAirQualityStore() *AirQualityStore {
	return &AirQualityStore{
		data: make(map[string][]models.AirQualityData),
	}
}

// UpdateAirQuality adds or updates a reading for a location
func (s *AirQualityStore) UpdateAirQuality(data models.AirQualityData) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	location := data.Location

	// Check if we already have data for this location
	if _, exists := s.data[location]; !exists {
		s.data[location] = []models.AirQualityData{}
	}

	// Find if we already have data from this provider
	found := false
	for i, existingData := range s.data[location] {
		if existingData.Provider == data.Provider {
			// Update existing entry
			s.data[location][i] = data
			found = true
			break
		}
	}

	// If no data from this provider exists, append it
	if !found {
		s.data[location] = append(s.data[location], data)
	}
}

// GetAirQualityByLocation retrieves readings for a specific location
func (s *AirQualityStore) GetAirQualityByLocation(location string) ([]models.AirQualityData, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	data, exists := s.data[location]
	return data, exists
}

// GetAllLocations returns a list of all available locations
func (s *AirQualityStore) GetAllLocations() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	locations := make([]string, 0, len(s.data))
	for loc := range s.data {
		locations = append(locations, loc)
	}
	return locations
}

// Server represents the API server
type Server struct {
	airQualityStore *AirQualityStore
	forecastStore   *ForecastStore
	server          *http.Server
	forecastSources []datasource.ForecastSource
}

// NewServer creates a new API server
func NewServer(airQualityStore *AirQualityStore, forecastStore *ForecastStore, port int) *Server {
	mux := http.NewServeMux()

	server := &Server{
		airQualityStore: airQualityStore,
		forecastStore:   forecastStore,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: mux,
		},
	}

	// Register handlers for health risk assessment
	mux.HandleFunc("/api/health-risk", server.handleHealthRisk)
	mux.HandleFunc("/api/vulnerable-groups", server.handleVulnerableGroups)
	mux.HandleFunc("/api/exposure", server.handleExposure)

	// Register handlers for current air quality
	mux.HandleFunc("/api/airquality/location/", server.handleGetAirQualityByLocation)
	mux.HandleFunc("/api/airquality/locations", server.handleGetAllLocations)

	// Register handlers for forecasts
	mux.HandleFunc("/api/forecast/location/", server.handleGetForecastByLocation)

	// Health check
	mux.HandleFunc("/api/health", server.handleHealthCheck)

	return server
}

// RegisterForecastSources adds forecast sources to the server
func (s *Server) RegisterForecastSources(sources []datasource.ForecastSource) {
	s.forecastSources = sources
}

// Start begins the API server
func (s *Server) Start() error {
	fmt.Printf("Starting API server on %s\n", s.server.Addr)
	return s.server.ListenAndServe()
}

// Handler returns the server's HTTP handler, for tests
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// writeJSONError writes a JSON error body with the given status code
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// healthRiskRequest is the body accepted by the health-risk endpoint
type healthRiskRequest struct {
	AQI              *float64 `json:"aqi"`
	VulnerableGroups []string `json:"vulnerable_groups"`
}

// handleHealthRisk returns a personalized health risk assessment for a
// given AQI value. The engine accepts any numeric input; the API contract
// additionally restricts AQI to [0, 500] and rejects the rest up front.
func (s *Server) handleHealthRisk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	var request healthRiskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if request.AQI == nil {
		writeJSONError(w, http.StatusBadRequest, "Field 'aqi' is required")
		return
	}

	aqiValue := *request.AQI
	if math.IsNaN(aqiValue) || math.IsInf(aqiValue, 0) || aqiValue < 0 || aqiValue > 500 {
		writeJSONError(w, http.StatusBadRequest, "Field 'aqi' must be between 0 and 500")
		return
	}

	groups := make([]risk.Group, 0, len(request.VulnerableGroups))
	for _, name := range request.VulnerableGroups {
		groups = append(groups, risk.Group(name))
	}

	assessment := risk.Assess(aqiValue, groups)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(assessment)
}

// handleVulnerableGroups returns the supported vulnerable groups
func (s *Server) handleVulnerableGroups(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	groups := risk.Groups()
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, string(g))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"vulnerable_groups": ids,
		"descriptions": map[string]string{
			"children":               "Children under 18 years",
			"elderly":                "People aged 65 and above",
			"pregnant_women":         "Pregnant women",
			"asthma_patients":        "People with asthma",
			"heart_disease_patients": "People with heart disease",
			"copd_patients":          "People with COPD",
			"athletes":               "Athletes and people who exercise outdoors",
		},
	})
}

// exposureRequest is the body accepted by the exposure endpoint
type exposureRequest struct {
	HourlyAQI    map[int]float64 `json:"hourly_aqi"`
	OutdoorHours []int           `json:"outdoor_hours"`
}

// handleExposure computes a daily pollution exposure summary from an
// hourly AQI series and the hours spent outdoors
func (s *Server) handleExposure(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	var request exposureRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	summary := risk.DailyExposure(request.HourlyAQI, request.OutdoorHours)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(summary)
}

// handleGetAirQualityByLocation handles requests for air quality data by location
func (s *Server) handleGetAirQualityByLocation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Extract location from URL path
	path := r.URL.Path
	if len(path) <= len("/api/airquality/location/") {
		http.Error(w, "Location not specified", http.StatusBadRequest)
		return
	}

	location := path[len("/api/airquality/location/"):]
	data, exists := s.airQualityStore.GetAirQualityByLocation(location)

	w.Header().Set("Content-Type", "application/json")

	if !exists {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("No air quality data found for location: %s", location))
		return
	}

	// Attach an assessment for the first available reading so dashboards
	// get category and advisory text without a second round trip
	var assessment *risk.Assessment
	if len(data) > 0 {
		a := risk.Assess(float64(data[0].AQI), nil)
		assessment = &a
	}

	response := map[string]interface{}{
		"location":   location,
		"data":       data,
		"assessment": assessment,
		"timestamp":  time.Now(),
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// handleGetAllLocations returns a list of all locations with air quality data
func (s *Server) handleGetAllLocations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	locations := s.airQualityStore.GetAllLocations()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"locations": locations,
		"count":     len(locations),
	})
}

// forecastPoint is a forecast entry enriched with risk information
type forecastPoint struct {
	Hour      int       `json:"hour"`
	Timestamp time.Time `json:"timestamp"`
	AQI       int       `json:"aqi"`
	Category  string    `json:"category"`
	RiskLevel string    `json:"risk_level"`
}

// enrichForecast converts raw forecast points into risk-annotated points
// and finds the best and worst hours by AQI
func enrichForecast(data models.ForecastData) (points []forecastPoint, bestHour, worstHour int) {
	points = make([]forecastPoint, 0, len(data.Forecasts))

	for i, f := range data.Forecasts {
		aqiValue := float64(f.AQI)
		category, _ := risk.Classify(aqiValue)
		points = append(points, forecastPoint{
			Hour:      i,
			Timestamp: f.Timestamp,
			AQI:       f.AQI,
			Category:  category.String(),
			RiskLevel: risk.LevelFor(aqiValue, false).String(),
		})

		if f.AQI < data.Forecasts[bestHour].AQI {
			bestHour = i
		}
		if f.AQI > data.Forecasts[worstHour].AQI {
			worstHour = i
		}
	}

	return points, bestHour, worstHour
}

// handleGetForecastByLocation handles requests for forecast data by location.
// Supported paths:
//
//	/api/forecast/location/{loc}                 all providers' forecasts
//	/api/forecast/location/{loc}/best-window     lowest-AQI outdoor window
//	/api/forecast/location/{loc}/{provider}      one provider, fetched on demand if absent
func (s *Server) handleGetForecastByLocation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Extract location from URL path
	path := r.URL.Path
	if len(path) <= len("/api/forecast/location/") {
		http.Error(w, "Location not specified", http.StatusBadRequest)
		return
	}

	// Extract hours parameter from query string (default to 24 hours)
	hoursStr := r.URL.Query().Get("hours")
	hours := 24
	if hoursStr != "" {
		if h, err := strconv.Atoi(hoursStr); err == nil && h > 0 {
			hours = h
			if hours > 96 {
				hours = 96 // The upstream forecast covers four days at most
			}
		}
	}

	// Extract any path parameters after location
	pathParts := strings.Split(path[len("/api/forecast/location/"):], "/")
	location := pathParts[0]

	var subpath string
	if len(pathParts) > 1 && pathParts[1] != "" {
		subpath = pathParts[1]
	}

	w.Header().Set("Content-Type", "application/json")

	if subpath == "best-window" {
		s.respondBestWindow(w, r, location)
		return
	}

	// If a provider is specified, return just that provider's forecast
	if subpath != "" {
		provider := subpath
		forecast, exists := s.forecastStore.GetForecastByProvider(location, provider)
		if !exists {
			// If we have forecast sources, try to fetch on-demand
			for _, source := range s.forecastSources {
				if strings.EqualFold(source.Name(), provider) {
					// This is an on-demand fetch for this provider
					ctx := r.Context()
					fetched, err := source.FetchForecast(ctx, datasource.Location{Name: location}, hours)
					if err != nil {
						writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to fetch forecast: %v", err))
						return
					}

					// Store the forecast for future use
					s.forecastStore.UpdateForecast(fetched)

					points, bestHour, worstHour := enrichForecast(fetched)
					w.WriteHeader(http.StatusOK)
					json.NewEncoder(w).Encode(map[string]interface{}{
						"location":   location,
						"provider":   provider,
						"forecast":   points,
						"best_hour":  bestHour,
						"worst_hour": worstHour,
						"timestamp":  time.Now(),
						"note":       "On-demand forecast fetch",
					})
					return
				}
			}

			// If we get here, we couldn't find or fetch the forecast
			writeJSONError(w, http.StatusNotFound,
				fmt.Sprintf("No forecast data found for location '%s' from provider '%s'", location, provider))
			return
		}

		points, bestHour, worstHour := enrichForecast(forecast)
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"location":   location,
			"provider":   provider,
			"forecast":   points,
			"best_hour":  bestHour,
			"worst_hour": worstHour,
			"timestamp":  time.Now(),
		})
		return
	}

	// Otherwise return all providers' forecasts for this location
	forecasts, exists := s.forecastStore.GetForecastByLocation(location)
	if !exists {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("No forecast data found for location: %s", location))
		return
	}

	response := map[string]interface{}{
		"location":  location,
		"forecasts": forecasts,
		"timestamp": time.Now(),
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// respondBestWindow finds the lowest-AQI contiguous window in the stored
// forecast for a location
func (s *Server) respondBestWindow(w http.ResponseWriter, r *http.Request, location string) {
	duration := 2
	if d := r.URL.Query().Get("hours"); d != "" {
		if parsed, err := strconv.Atoi(d); err == nil && parsed > 0 {
			duration = parsed
		}
	}

	forecasts, exists := s.forecastStore.GetForecastByLocation(location)
	if !exists || len(forecasts) == 0 {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("No forecast data found for location: %s", location))
		return
	}

	// Use the first provider's forecast, indexed by hour offset
	hourlyAQI := make(map[int]float64, len(forecasts[0].Forecasts))
	for i, f := range forecasts[0].Forecasts {
		hourlyAQI[i] = float64(f.AQI)
	}

	startHour, averageAQI, ok := risk.BestOutdoorWindow(hourlyAQI, duration)
	if !ok {
		writeJSONError(w, http.StatusNotFound,
			fmt.Sprintf("No complete %d-hour window available for location: %s", duration, location))
		return
	}

	category, _ := risk.Classify(averageAQI)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"location":       location,
		"provider":       forecasts[0].Provider,
		"start_hour":     startHour,
		"duration_hours": duration,
		"average_aqi":    averageAQI,
		"category":       category.String(),
	})
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":             "ok",
		"locations":          len(s.airQualityStore.GetAllLocations()),
		"forecast_locations": len(s.forecastStore.GetAllForecastLocations()),
		"timestamp":          time.Now().Format(time.RFC3339),
	})
}
