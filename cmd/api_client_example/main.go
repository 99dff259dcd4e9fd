package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	fmt.Println("Air Quality API Client Example")
	fmt.Println("==============================")

	// Base URL for the API
	baseURL := "http://localhost:8080"

	// Wait a moment for the server to fetch some data
	fmt.Println("Waiting for the service to collect initial data...")
	time.Sleep(5 * time.Second)

	// Get available locations
	fmt.Println("\nFetching available locations...")
	locationsURL := fmt.Sprintf("%s/api/airquality/locations", baseURL)
	locationsResp, err := http.Get(locationsURL)
	if err != nil {
		fmt.Printf("Error fetching locations: %v\n", err)
		os.Exit(1)
	}
	defer locationsResp.Body.Close()

	var locationsData map[string]interface{}
	locationsBody, _ := io.ReadAll(locationsResp.Body)
	json.Unmarshal(locationsBody, &locationsData)

	fmt.Printf("Available locations: %v\n\n", locationsData["locations"])

	// Choose a location to query (if available)
	var locations []interface{}
	if locs, ok := locationsData["locations"].([]interface{}); ok {
		locations = locs
	}

	if len(locations) == 0 {
		fmt.Println("No locations available yet. Try again later.")
		return
	}

	// Get the first location from the list
	location := locations[0].(string)
	fmt.Printf("Fetching air quality data for %s...\n", location)

	// Get current air quality for the selected location
	airQualityURL := fmt.Sprintf("%s/api/airquality/location/%s", baseURL, location)
	airQualityResp, err := http.Get(airQualityURL)
	if err != nil {
		fmt.Printf("Error fetching air quality: %v\n", err)
		os.Exit(1)
	}
	defer airQualityResp.Body.Close()

	// Read and pretty print the response
	airQualityBody, _ := io.ReadAll(airQualityResp.Body)

	var airQualityData map[string]interface{}
	json.Unmarshal(airQualityBody, &airQualityData)

	prettyJSON, _ := json.MarshalIndent(airQualityData, "", "  ")
	fmt.Printf("\nAir quality data for %s:\n%s\n", location, string(prettyJSON))

	// Request a personalized health risk assessment for an asthma patient
	fmt.Println("\nRequesting health risk assessment (AQI 165, asthma patient)...")
	requestBody, _ := json.Marshal(map[string]interface{}{
		"aqi":               165,
		"vulnerable_groups": []string{"asthma_patients"},
	})

	riskResp, err := http.Post(fmt.Sprintf("%s/api/health-risk", baseURL),
		"application/json", bytes.NewReader(requestBody))
	if err != nil {
		fmt.Printf("Error fetching health risk assessment: %v\n", err)
		os.Exit(1)
	}
	defer riskResp.Body.Close()

	riskBody, _ := io.ReadAll(riskResp.Body)

	var riskData map[string]interface{}
	json.Unmarshal(riskBody, &riskData)

	prettyRisk, _ := json.MarshalIndent(riskData, "", "  ")
	fmt.Printf("\nHealth risk assessment:\n%s\n", string(prettyRisk))
}
