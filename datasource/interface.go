package datasource

import (
	"context"

	"airquality-service/models"
)

// DataSource defines the interface for any air quality data provider
type DataSource interface {
	Name() string
	FetchAirQuality(ctx context.Context, loc Location) (models.AirQualityData, error)
}
