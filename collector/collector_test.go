package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"airquality-service/datasource"
	"airquality-service/models"
)

// stubSource returns a fixed reading, or an error when failing is set
type stubSource struct {
	failing bool
}

func (s *stubSource) Name() string { return "Stub" }

func (s *stubSource) FetchAirQuality(ctx context.Context, loc datasource.Location) (models.AirQualityData, error) {
	if s.failing {
		return models.AirQualityData{}, errors.New("upstream unavailable")
	}
	return models.AirQualityData{
		Provider:  s.Name(),
		Location:  loc.Name,
		AQI:       63,
		Timestamp: time.Now(),
	}, nil
}

func TestCollectorEmitsInitialFetch(t *testing.T) {
	locations := []datasource.Location{{Name: "Delhi"}, {Name: "Beijing"}}
	dc := NewDataCollector([]datasource.DataSource{&stubSource{}}, locations)

	stop := dc.Start(context.Background())
	defer stop()

	seen := make(map[string]bool)
	timeout := time.After(2 * time.Second)
	for len(seen) < len(locations) {
		select {
		case data := <-dc.OutputChannel():
			require.Equal(t, "Stub", data.Provider)
			require.Equal(t, 63, data.AQI)
			seen[data.Location] = true
		case <-timeout:
			t.Fatalf("timed out waiting for readings, got %d of %d", len(seen), len(locations))
		}
	}

	require.True(t, seen["Delhi"])
	require.True(t, seen["Beijing"])
}

func TestCollectorReportsErrors(t *testing.T) {
	dc := NewDataCollector(
		[]datasource.DataSource{&stubSource{failing: true}},
		[]datasource.Location{{Name: "Delhi"}},
	)

	stop := dc.Start(context.Background())
	defer stop()

	select {
	case err := <-dc.ErrorChannel():
		require.ErrorContains(t, err, "upstream unavailable")
		require.ErrorContains(t, err, "Delhi")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for error")
	}
}

func TestCollectorStopClosesChannels(t *testing.T) {
	dc := NewDataCollector(
		[]datasource.DataSource{&stubSource{}},
		[]datasource.Location{{Name: "Delhi"}},
	)

	stop := dc.Start(context.Background())

	// Drain the initial reading so the collector isn't blocked on send
	select {
	case <-dc.OutputChannel():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for initial reading")
	}

	stop()

	// After stop, both channels end up closed
	for range dc.OutputChannel() {
	}
	for range dc.ErrorChannel() {
	}
}
