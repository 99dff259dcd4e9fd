package main

import (
	"context"
	"flag"
	"fmt"
	"sync"
	"time"

	"airquality-service/datasource"
	"airquality-service/models"
)

// MockAirQualityProvider is a simple mock that simulates latency and counts calls
type MockAirQualityProvider struct {
	callCount int
	mutex     sync.Mutex
	latency   time.Duration
}

func NewMockAirQualityProvider(latency time.Duration) *MockAirQualityProvider {
	return &MockAirQualityProvider{
		latency: latency,
	}
}

func (m *MockAirQualityProvider) GetAirQuality(ctx context.Context, loc datasource.Location) (models.AirQualityData, error) {
	m.mutex.Lock()
	m.callCount++
	currentCount := m.callCount
	m.mutex.Unlock()

	// Log request time
	now := time.Now()
	fmt.Printf("%s - Processing request #%d for %s\n", now.Format("15:04:05.000"), currentCount, loc.Name)

	// Simulate work/latency
	select {
	case <-time.After(m.latency):
		// Continue processing
	case <-ctx.Done():
		return models.AirQualityData{}, ctx.Err()
	}

	return models.AirQualityData{
		Location:  loc.Name,
		Provider:  m.Name(),
		AQI:       87,
		PM25:      28.6,
		Timestamp: time.Now(),
	}, nil
}

func (m *MockAirQualityProvider) Name() string {
	return "MockProvider"
}

func (m *MockAirQualityProvider) GetCallCount() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.callCount
}

func main() {
	// Parse command-line flags
	requestsPerSecond := flag.Float64("rps", 1.0, "Rate limit in requests per second")
	burstSize := flag.Int("burst", 3, "Maximum burst size")
	totalRequests := flag.Int("requests", 10, "Total number of requests to make")
	concurrentRequests := flag.Int("concurrent", 5, "Number of concurrent requests")
	flag.Parse()

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Create a mock provider with 200ms response time
	mockProvider := NewMockAirQualityProvider(200 * time.Millisecond)

	// Wrap with rate limiter
	rateLimitedProvider := datasource.NewRateLimitedAirQualityProvider(mockProvider, *requestsPerSecond, *burstSize)

	fmt.Printf("Testing rate limiter with:\n")
	fmt.Printf("- Rate limit: %.2f requests/second\n", *requestsPerSecond)
	fmt.Printf("- Burst size: %d\n", *burstSize)
	fmt.Printf("- Total requests: %d\n", *totalRequests)
	fmt.Printf("- Concurrent workers: %d\n", *concurrentRequests)
	fmt.Println("Starting test...")

	// Record start time
	startTime := time.Now()

	// Create wait group for concurrent requests
	var wg sync.WaitGroup

	loc := datasource.Location{Name: "Delhi", Lat: 28.6139, Lon: 77.2090}

	// Launch concurrent goroutines
	for i := 0; i < *concurrentRequests; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			// Calculate how many requests this worker should make
			requestsPerWorker := *totalRequests / *concurrentRequests
			if workerID < *totalRequests%*concurrentRequests {
				requestsPerWorker++
			}

			// Make requests
			for j := 0; j < requestsPerWorker; j++ {
				_, err := rateLimitedProvider.GetAirQuality(ctx, loc)
				if err != nil {
					fmt.Printf("Worker %d request %d failed: %v\n", workerID, j, err)
				}
			}
		}(i)
	}

	// Wait for all requests to complete
	wg.Wait()

	elapsed := time.Since(startTime)
	fmt.Printf("\nCompleted %d requests in %s\n", mockProvider.GetCallCount(), elapsed.Round(time.Millisecond))
	fmt.Printf("Effective rate: %.2f requests/second\n", float64(mockProvider.GetCallCount())/elapsed.Seconds())
}
