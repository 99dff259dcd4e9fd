package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"airquality-service/api"
	"airquality-service/datasource"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	// Parse command line arguments
	port := flag.Int("port", 8080, "Port to run the server on")
	updateInterval := flag.Duration("update", 15*time.Minute, "Air quality data update interval")
	configFile := flag.String("config", "config.json", "Path to configuration file")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable API rate limiting")
	forecastHours := flag.Int("forecast-hours", 24, "Hours of forecast to fetch per update")
	flag.Parse()

	// Load configuration
	config, err := datasource.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create the providers based on configuration
	var providers []datasource.AirQualityProvider
	var forecastSources []datasource.ForecastSource

	if config.OpenWeatherMap.Enabled {
		if config.OpenWeatherMap.APIKey == "" {
			log.Fatal("OpenWeatherMap is enabled but no API key provided")
		}
		owmProvider := datasource.NewOpenWeatherMapProvider(config.OpenWeatherMap.APIKey)

		// Apply rate limiting if enabled
		if *enableRateLimiting {
			// OpenWeatherMap free tier allows 60 calls/minute = 1 call per second
			// Allow bursts of up to 5 requests
			rateLimitedProvider := datasource.NewRateLimitedProvider(owmProvider, 1.0, 1.0, 5)
			providers = append(providers, rateLimitedProvider)
			forecastSources = append(forecastSources, rateLimitedProvider)
			log.Println("Applied rate limiting to OpenWeatherMap provider")
		} else {
			providers = append(providers, owmProvider)
			forecastSources = append(forecastSources, owmProvider)
		}
	}

	if config.WAQI.Enabled {
		if config.WAQI.APIKey == "" {
			log.Fatal("WAQI is enabled but no API key provided")
		}
		waqiProvider := datasource.NewWAQIProvider(config.WAQI.APIKey)

		// Apply rate limiting if enabled
		if *enableRateLimiting {
			// WAQI quota is roughly 1000 calls/day, keep well under it
			rateLimitedProvider := datasource.NewRateLimitedAirQualityProvider(waqiProvider, 0.2, 2)
			providers = append(providers, rateLimitedProvider)
			log.Println("Applied rate limiting to WAQI provider")
		} else {
			providers = append(providers, waqiProvider)
		}
	}

	if len(providers) == 0 {
		log.Fatal("No air quality providers enabled in configuration")
	}

	// Create in-memory stores for current readings and forecast data
	airQualityStore := api.NewAirQualityStore()
	forecastStore := api.NewForecastStore()

	// Create API server
	server := api.NewServer(airQualityStore, forecastStore, *port)
	server.RegisterForecastSources(forecastSources)

	// Set up channels for graceful shutdown
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	updateChan := make(chan struct{})

	// Start data updater in a goroutine
	go func() {
		ticker := time.NewTicker(*updateInterval)
		defer ticker.Stop()

		// Update readings and forecast data immediately on startup
		updateData(providers, forecastSources, airQualityStore, forecastStore, config, *forecastHours)

		for {
			select {
			case <-ticker.C:
				updateData(providers, forecastSources, airQualityStore, forecastStore, config, *forecastHours)
			case <-updateChan:
				return
			}
		}
	}()

	// Periodically clean up old forecasts
	forecastPruneAge := 48 * time.Hour // Remove forecasts older than 2 days
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				pruned := forecastStore.PruneOldForecasts(forecastPruneAge)
				log.Printf("Pruned %d stale forecasts", pruned)
			case <-updateChan:
				return
			}
		}
	}()

	// Start the API server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdownChan
	fmt.Printf("Shutting down due to %s signal\n", sig)

	// Notify updater and pruner to stop
	close(updateChan)

	fmt.Println("Shutdown complete")
}

// updateData fetches the latest readings and forecast data from all providers
func updateData(
	providers []datasource.AirQualityProvider,
	forecastSources []datasource.ForecastSource,
	airQualityStore *api.AirQualityStore,
	forecastStore *api.ForecastStore,
	config *datasource.Config,
	forecastHours int,
) {
	fmt.Println("Updating air quality data...")

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Create wait group for concurrent updates
	var wg sync.WaitGroup

	// Update current readings
	for _, location := range config.Locations {
		for _, provider := range providers {
			wg.Add(1)
			go func(loc datasource.Location, prov datasource.AirQualityProvider) {
				defer wg.Done()

				// Get current air quality
				data, err := prov.GetAirQuality(ctx, loc)
				if err != nil {
					log.Printf("Error fetching air quality for %s from %s: %v", loc.Name, prov.Name(), err)
					return
				}

				// Store the data
				airQualityStore.UpdateAirQuality(data)
				log.Printf("Updated air quality for %s from %s (AQI %d)", loc.Name, prov.Name(), data.AQI)
			}(location, provider)
		}
	}

	// Update forecast data
	for _, location := range config.Locations {
		for _, source := range forecastSources {
			wg.Add(1)
			go func(loc datasource.Location, src datasource.ForecastSource) {
				defer wg.Done()

				// Get hourly forecast data
				forecast, err := src.FetchForecast(ctx, loc, forecastHours)
				if err != nil {
					log.Printf("Error fetching forecast for %s from %s: %v", loc.Name, src.Name(), err)
					return
				}

				// Store the forecast data
				forecastStore.UpdateForecast(forecast)
				log.Printf("Updated forecast data for %s from %s", loc.Name, src.Name())
			}(location, source)
		}
	}

	// Wait for all updates to complete
	wg.Wait()
	fmt.Println("Air quality and forecast data update complete")
}
