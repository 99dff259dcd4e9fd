package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"airquality-service/datasource"
	"airquality-service/models"
)

// CachedDataSource wraps a DataSource and adds caching functionality
type CachedDataSource struct {
	source         datasource.DataSource
	cache          map[string]cacheEntry // key is location name
	mutex          sync.RWMutex
	cacheDuration  time.Duration
	cacheHitCount  int
	cacheMissCount int
}

// cacheEntry represents a cached air quality reading with its timestamp
type cacheEntry struct {
	Data      models.AirQualityData
	Timestamp time.Time
}

// NewCachedDataSource creates a new cached wrapper around a data source
func NewCachedDataSource(source datasource.DataSource, cacheDuration time.Duration) *CachedDataSource {
	return &CachedDataSource{
		source:        source,
		cache:         make(map[string]cacheEntry),
		cacheDuration: cacheDuration,
	}
}

// Name returns the name of the underlying data source with [Cached] suffix
func (c *CachedDataSource) Name() string {
	return c.source.Name() + " [Cached]"
}

// FetchAirQuality fetches air quality data, using cache when available
func (c *CachedDataSource) FetchAirQuality(ctx context.Context, loc datasource.Location) (models.AirQualityData, error) {
	// First check if we have this data in the cache
	c.mutex.RLock()
	entry, found := c.cache[loc.Name]
	c.mutex.RUnlock()

	// If found and not expired, return the cached data
	if found && time.Since(entry.Timestamp) < c.cacheDuration {
		c.mutex.Lock()
		c.cacheHitCount++
		c.mutex.Unlock()

		fmt.Printf("Cache HIT for %s from %s (age: %s)\n",
			loc.Name, c.source.Name(), time.Since(entry.Timestamp).Round(time.Second))

		return entry.Data, nil
	}

	// Cache miss or expired, fetch fresh data
	c.mutex.Lock()
	c.cacheMissCount++
	c.mutex.Unlock()

	fmt.Printf("Cache MISS for %s from %s, fetching fresh data...\n",
		loc.Name, c.source.Name())

	data, err := c.source.FetchAirQuality(ctx, loc)
	if err != nil {
		return models.AirQualityData{}, err
	}

	// Store in cache
	c.mutex.Lock()
	c.cache[loc.Name] = cacheEntry{
		Data:      data,
		Timestamp: time.Now(),
	}
	c.mutex.Unlock()

	return data, nil
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedDataSource) CacheStats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cacheHitCount, c.cacheMissCount
}

// Ensure CachedDataSource implements the DataSource interface
var _ datasource.DataSource = (*CachedDataSource)(nil)
